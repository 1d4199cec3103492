package handler

import (
	"net/http"
	"strconv"

	"github.com/FelipeF32/Articulacion/internal/apierror"
	"github.com/FelipeF32/Articulacion/internal/dto"
	"github.com/FelipeF32/Articulacion/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductosHandler struct{ svc service.ProductoService }

func NewProductosHandler(svc service.ProductoService) *ProductosHandler {
	return &ProductosHandler{svc: svc}
}

// Crear godoc
// @Summary      Crear producto
// @Description  Crea un producto dentro de una subcategoria activa que pertenezca a la categoria indicada.
// @Tags         productos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearProductoRequest true "Datos del producto"
// @Success      201  {object} dto.ProductoResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/productos [post]
func (h *ProductosHandler) Crear(c *gin.Context) {
	var req dto.CrearProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary      Listar productos
// @Tags         productos
// @Produce      json
// @Security     BearerAuth
// @Param        nombre          query string false "Filtro por nombre (ILIKE)"
// @Param        categoria_id    query int    false "Filtro por categoria"
// @Param        subcategoria_id query int    false "Filtro por subcategoria"
// @Param        activo          query string false "'' solo activos | false | all"
// @Param        page            query int    false "Pagina (default 1)"
// @Param        limit           query int    false "Registros por pagina (default 20)"
// @Success      200 {object} dto.ProductoListResponse
// @Router       /v1/productos [get]
func (h *ProductosHandler) Listar(c *gin.Context) {
	var filter dto.ProductoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener GET /v1/productos/:id
func (h *ProductosHandler) Obtener(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar PUT /v1/productos/:id — price changes never rewrite cart or
// order snapshots.
func (h *ProductosHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Desactivar DELETE /v1/productos/:id — soft delete.
func (h *ProductosHandler) Desactivar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reactivar PATCH /v1/productos/:id/reactivar
func (h *ProductosHandler) Reactivar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Reactivar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Stock godoc
// @Summary      Consultar disponibilidad
// @Description  Responde si hay stock suficiente para la cantidad pedida. Es un chequeo puntual: el carrito y el checkout revalidan bajo lock.
// @Tags         productos
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int true  "ID del producto"
// @Param        cantidad query int false "Cantidad deseada (default 1)"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} apierror.APIError
// @Router       /v1/productos/{id}/stock [get]
func (h *ProductosHandler) Stock(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	cantidad := 1
	if raw := c.Query("cantidad"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, apierror.New("cantidad invalida"))
			return
		}
		cantidad = parsed
	}
	disponible, err := h.svc.HayStock(c.Request.Context(), id, cantidad)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"producto_id": id, "cantidad": cantidad, "disponible": disponible})
}

// AjustarStock PATCH /v1/productos/:id/stock — manual delta with an audit
// trail entry.
func (h *ProductosHandler) AjustarStock(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.AjustarStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AjustarStock(c.Request.Context(), id, req.Delta, req.Motivo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Movimientos GET /v1/productos/:id/movimientos — audit trail of stock
// changes, newest first.
func (h *ProductosHandler) Movimientos(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, apierror.New("limit invalido"))
			return
		}
		limit = parsed
	}
	resp, err := h.svc.ListarMovimientos(c.Request.Context(), id, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
