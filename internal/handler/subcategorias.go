package handler

import (
	"net/http"
	"strconv"

	"github.com/FelipeF32/Articulacion/internal/apierror"
	"github.com/FelipeF32/Articulacion/internal/dto"
	"github.com/FelipeF32/Articulacion/internal/service"

	"github.com/gin-gonic/gin"
)

type SubcategoriasHandler struct{ svc service.SubcategoriaService }

func NewSubcategoriasHandler(svc service.SubcategoriaService) *SubcategoriasHandler {
	return &SubcategoriasHandler{svc: svc}
}

// Crear godoc
// @Summary      Crear subcategoria
// @Description  Requiere una categoria padre existente y activa; el nombre es unico dentro de la categoria.
// @Tags         subcategorias
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearSubcategoriaRequest true "Datos de la subcategoria"
// @Success      201  {object} dto.SubcategoriaResponse
// @Failure      400  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/subcategorias [post]
func (h *SubcategoriasHandler) Crear(c *gin.Context) {
	var req dto.CrearSubcategoriaRequest
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

// Listar GET /v1/subcategorias?categoria_id=N&incluir_inactivas=true
func (h *SubcategoriasHandler) Listar(c *gin.Context) {
	var categoriaID uint
	if raw := c.Query("categoria_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("categoria_id invalido"))
			return
		}
		categoriaID = uint(parsed)
	}
	incluirInactivas := c.Query("incluir_inactivas") == "true"
	resp, err := h.svc.Listar(c.Request.Context(), categoriaID, incluirInactivas)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener GET /v1/subcategorias/:id
func (h *SubcategoriasHandler) Obtener(c *gin.Context) {
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

// Actualizar PUT /v1/subcategorias/:id
func (h *SubcategoriasHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarSubcategoriaRequest
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

// CambiarEstado PATCH /v1/subcategorias/:id/estado — deactivation sweeps
// the products underneath.
func (h *SubcategoriasHandler) CambiarEstado(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CambiarEstadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.CambiarEstado(c.Request.Context(), id, *req.Activo); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
