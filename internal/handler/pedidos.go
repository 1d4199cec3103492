package handler

import (
	"net/http"
	"strconv"

	"github.com/FelipeF32/Articulacion/internal/apierror"
	"github.com/FelipeF32/Articulacion/internal/dto"
	"github.com/FelipeF32/Articulacion/internal/middleware"
	"github.com/FelipeF32/Articulacion/internal/model"
	"github.com/FelipeF32/Articulacion/internal/service"

	"github.com/gin-gonic/gin"
)

type PedidosHandler struct{ svc service.PedidoService }

func NewPedidosHandler(svc service.PedidoService) *PedidosHandler {
	return &PedidosHandler{svc: svc}
}

// Crear godoc
// @Summary      Checkout del carrito
// @Description  Convierte el carrito en un pedido ACID: valida stock bajo lock, descuenta exactamente una vez, copia los precios congelados y vacia el carrito.
// @Tags         pedidos
// @Produce      json
// @Security     BearerAuth
// @Success      201 {object} dto.PedidoResponse
// @Failure      400 {object} apierror.APIError "Carrito vacio"
// @Failure      409 {object} apierror.APIError "Stock insuficiente"
// @Router       /v1/pedidos [post]
func (h *PedidosHandler) Crear(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resp, err := h.svc.CrearDesdeCarrito(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar GET /v1/pedidos — the caller's own orders.
func (h *PedidosHandler) Listar(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resp, err := h.svc.ListarPorUsuario(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// obtenerVisible loads the pedido and enforces visibility: clientes only
// see their own orders and get 404 (never 403) for anyone else's, so order
// IDs cannot be probed. Staff roles see everything. Writes the error
// response on failure.
func (h *PedidosHandler) obtenerVisible(c *gin.Context, id uint) (*dto.PedidoResponse, bool) {
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	claims := middleware.GetClaims(c)
	if claims.Rol == model.RolCliente && resp.UsuarioID != claims.UserID {
		c.JSON(http.StatusNotFound, apierror.New("pedido no encontrado"))
		return nil, false
	}
	return resp, true
}

// Obtener GET /v1/pedidos/:id
func (h *PedidosHandler) Obtener(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, ok := h.obtenerVisible(c, id)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Total GET /v1/pedidos/:id/total — sum of the persisted line subtotals.
// Same visibility rule as Obtener.
func (h *PedidosHandler) Total(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if _, ok := h.obtenerVisible(c, id); !ok {
		return
	}
	total, err := h.svc.TotalPedido(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pedido_id": id, "total": total})
}

// MasVendidos godoc
// @Summary      Productos mas vendidos
// @Description  Agrega las lineas de pedido por producto y ordena por unidades vendidas descendente; empates por ID ascendente.
// @Tags         reportes
// @Produce      json
// @Security     BearerAuth
// @Param        limite query int false "Cantidad de filas (default 10)"
// @Success      200 {array} dto.ProductoMasVendido
// @Router       /v1/reportes/mas-vendidos [get]
func (h *PedidosHandler) MasVendidos(c *gin.Context) {
	limite := 10
	if raw := c.Query("limite"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, apierror.New("limite invalido"))
			return
		}
		limite = parsed
	}
	resp, err := h.svc.MasVendidos(c.Request.Context(), limite)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
