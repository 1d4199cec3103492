package handler

import (
	"net/http"

	"github.com/FelipeF32/Articulacion/internal/dto"
	"github.com/FelipeF32/Articulacion/internal/middleware"
	"github.com/FelipeF32/Articulacion/internal/service"

	"github.com/gin-gonic/gin"
)

type CarritoHandler struct{ svc service.CarritoService }

func NewCarritoHandler(svc service.CarritoService) *CarritoHandler {
	return &CarritoHandler{svc: svc}
}

// Agregar godoc
// @Summary      Agregar producto al carrito
// @Description  Valida stock bajo lock y congela el precio unitario actual. Si el producto ya esta en el carrito, las cantidades se suman.
// @Tags         carrito
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.AgregarCarritoRequest true "Producto y cantidad"
// @Success      201  {object} dto.ItemCarritoResponse
// @Failure      409  {object} apierror.APIError "Stock insuficiente"
// @Router       /v1/carrito [post]
func (h *CarritoHandler) Agregar(c *gin.Context) {
	var req dto.AgregarCarritoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Agregar(c.Request.Context(), claims.UserID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Obtener GET /v1/carrito — items with derived subtotals and the grand total.
func (h *CarritoHandler) Obtener(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Obtener(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Total GET /v1/carrito/total
func (h *CarritoHandler) Total(c *gin.Context) {
	claims := middleware.GetClaims(c)
	total, err := h.svc.CalcularTotal(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total})
}

// ActualizarCantidad PUT /v1/carrito/:id — revalidates stock; the price
// snapshot stays as it was at insert time.
func (h *CarritoHandler) ActualizarCantidad(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarCantidadRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.ActualizarCantidad(c.Request.Context(), claims.UserID, id, req.Cantidad)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar DELETE /v1/carrito/:id
func (h *CarritoHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	if err := h.svc.Eliminar(c.Request.Context(), claims.UserID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Vaciar DELETE /v1/carrito — reports how many lines were removed.
func (h *CarritoHandler) Vaciar(c *gin.Context) {
	claims := middleware.GetClaims(c)
	eliminados, err := h.svc.Vaciar(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.VaciarCarritoResponse{Eliminados: eliminados})
}
