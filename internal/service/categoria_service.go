package service

import (
	"context"
	"errors"

	"github.com/FelipeF32/Articulacion/internal/apierror"
	"github.com/FelipeF32/Articulacion/internal/dto"
	"github.com/FelipeF32/Articulacion/internal/model"
	"github.com/FelipeF32/Articulacion/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CategoriaService owns the top of the catalog hierarchy, including the
// deactivation cascade: turning a category off sweeps activo=false over its
// subcategories and products inside one transaction. Activation never
// cascades — children deactivated earlier stay off until toggled one by one.
type CategoriaService interface {
	Crear(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error)
	Listar(ctx context.Context, incluirInactivas bool) ([]dto.CategoriaResponse, error)
	Obtener(ctx context.Context, id uint) (*dto.CategoriaDetalleResponse, error)
	Actualizar(ctx context.Context, id uint, req dto.ActualizarCategoriaRequest) (*dto.CategoriaResponse, error)
	CambiarEstado(ctx context.Context, id uint, activo bool) error
}

type categoriaService struct {
	repo     repository.CategoriaRepository
	subRepo  repository.SubcategoriaRepository
	prodRepo repository.ProductoRepository
}

func NewCategoriaService(
	repo repository.CategoriaRepository,
	subRepo repository.SubcategoriaRepository,
	prodRepo repository.ProductoRepository,
) CategoriaService {
	return &categoriaService{repo: repo, subRepo: subRepo, prodRepo: prodRepo}
}

func mapCategoria(c *model.Categoria) *dto.CategoriaResponse {
	return &dto.CategoriaResponse{
		ID:          c.ID,
		Nombre:      c.Nombre,
		Descripcion: c.Descripcion,
		Activo:      c.Activo,
	}
}

func (s *categoriaService) Crear(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error) {
	existing, err := s.repo.ObtenerPorNombre(ctx, req.Nombre)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.Internal("error al consultar categorias", err)
	}
	if existing != nil {
		return nil, apierror.Conflict("ya existe una categoria con ese nombre")
	}

	// New categories start inactive: an administrator activates them once
	// the subtree underneath is ready.
	c := &model.Categoria{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Activo:      false,
	}
	if err := s.repo.Crear(ctx, c); err != nil {
		return nil, apierror.Internal("error al crear la categoria", err)
	}
	return mapCategoria(c), nil
}

func (s *categoriaService) Listar(ctx context.Context, incluirInactivas bool) ([]dto.CategoriaResponse, error) {
	list, err := s.repo.Listar(ctx, incluirInactivas)
	if err != nil {
		return nil, apierror.Internal("error al listar categorias", err)
	}
	result := make([]dto.CategoriaResponse, 0, len(list))
	for i := range list {
		result = append(result, *mapCategoria(&list[i]))
	}
	return result, nil
}

func (s *categoriaService) Obtener(ctx context.Context, id uint) (*dto.CategoriaDetalleResponse, error) {
	c, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("categoria no encontrada")
		}
		return nil, apierror.Internal("error al obtener la categoria", err)
	}
	subs, err := s.repo.ContarSubcategorias(ctx, id)
	if err != nil {
		return nil, apierror.Internal("error al contar subcategorias", err)
	}
	prods, err := s.repo.ContarProductos(ctx, id)
	if err != nil {
		return nil, apierror.Internal("error al contar productos", err)
	}
	return &dto.CategoriaDetalleResponse{
		CategoriaResponse: *mapCategoria(c),
		Subcategorias:     subs,
		Productos:         prods,
	}, nil
}

func (s *categoriaService) Actualizar(ctx context.Context, id uint, req dto.ActualizarCategoriaRequest) (*dto.CategoriaResponse, error) {
	c, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("categoria no encontrada")
		}
		return nil, apierror.Internal("error al obtener la categoria", err)
	}

	if req.Nombre != nil && *req.Nombre != c.Nombre {
		existing, err := s.repo.ObtenerPorNombre(ctx, *req.Nombre)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Internal("error al consultar categorias", err)
		}
		if existing != nil && existing.ID != id {
			return nil, apierror.Conflict("ya existe una categoria con ese nombre")
		}
		c.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		c.Descripcion = req.Descripcion
	}

	if err := s.repo.Actualizar(ctx, c); err != nil {
		return nil, apierror.Internal("error al actualizar la categoria", err)
	}
	return mapCategoria(c), nil
}

// CambiarEstado toggles activo. Deactivation runs the full cascade in one
// transaction: the category row is locked first (FOR UPDATE) so two
// concurrent toggles serialize, then both child sweeps run. Either all
// three updates commit or none do — a reader never observes the category
// inactive with a child still active.
func (s *categoriaService) CambiarEstado(ctx context.Context, id uint, activo bool) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		c, err := s.repo.ObtenerPorIDForUpdateTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("categoria no encontrada")
			}
			return apierror.Internal("error al obtener la categoria", err)
		}
		if c.Activo == activo {
			return nil
		}

		if err := s.repo.ActualizarActivoTx(tx, id, activo); err != nil {
			return apierror.Internal("error al actualizar la categoria", err)
		}
		if !activo {
			if err := s.subRepo.DesactivarPorCategoriaTx(tx, id); err != nil {
				return apierror.Internal("error al desactivar subcategorias", err)
			}
			if err := s.prodRepo.DesactivarPorCategoriaTx(tx, id); err != nil {
				return apierror.Internal("error al desactivar productos", err)
			}
			log.Info().Uint("categoria_id", id).Str("nombre", c.Nombre).
				Msg("categoria desactivada en cascada")
		}
		return nil
	})
}
