package service

import (
	"context"
	"errors"

	"github.com/FelipeF32/Articulacion/internal/apierror"
	"github.com/FelipeF32/Articulacion/internal/dto"
	"github.com/FelipeF32/Articulacion/internal/model"
	"github.com/FelipeF32/Articulacion/internal/repository"

	"gorm.io/gorm"
)

// SubcategoriaService manages the middle level of the hierarchy. Creation
// reads the parent category inside the same transaction as the insert, so a
// concurrent category deactivation cannot slip a new subcategory under a
// just-disabled parent.
type SubcategoriaService interface {
	Crear(ctx context.Context, req dto.CrearSubcategoriaRequest) (*dto.SubcategoriaResponse, error)
	Listar(ctx context.Context, categoriaID uint, incluirInactivas bool) ([]dto.SubcategoriaResponse, error)
	Obtener(ctx context.Context, id uint) (*dto.SubcategoriaResponse, error)
	Actualizar(ctx context.Context, id uint, req dto.ActualizarSubcategoriaRequest) (*dto.SubcategoriaResponse, error)
	CambiarEstado(ctx context.Context, id uint, activo bool) error
}

type subcategoriaService struct {
	repo     repository.SubcategoriaRepository
	catRepo  repository.CategoriaRepository
	prodRepo repository.ProductoRepository
}

func NewSubcategoriaService(
	repo repository.SubcategoriaRepository,
	catRepo repository.CategoriaRepository,
	prodRepo repository.ProductoRepository,
) SubcategoriaService {
	return &subcategoriaService{repo: repo, catRepo: catRepo, prodRepo: prodRepo}
}

func mapSubcategoria(s *model.Subcategoria) *dto.SubcategoriaResponse {
	return &dto.SubcategoriaResponse{
		ID:          s.ID,
		Nombre:      s.Nombre,
		Descripcion: s.Descripcion,
		CategoriaID: s.CategoriaID,
		Activo:      s.Activo,
	}
}

func (s *subcategoriaService) Crear(ctx context.Context, req dto.CrearSubcategoriaRequest) (*dto.SubcategoriaResponse, error) {
	// Pre-flight duplicate check; the composite unique index
	// (nombre, categoria_id) is the backstop against a concurrent insert.
	existing, err := s.repo.ObtenerPorNombreYCategoria(ctx, req.Nombre, req.CategoriaID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.Internal("error al consultar subcategorias", err)
	}
	if existing != nil {
		return nil, apierror.Conflict("ya existe una subcategoria con ese nombre en la categoria")
	}

	sub := &model.Subcategoria{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		CategoriaID: req.CategoriaID,
		Activo:      false,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		parent, err := s.catRepo.ObtenerPorIDForUpdateTx(tx, req.CategoriaID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("la categoria seleccionada no existe")
			}
			return apierror.Internal("error al obtener la categoria", err)
		}
		if !parent.Activo {
			return apierror.ValidationField("categoria_id",
				"no se puede crear una subcategoria en una categoria inactiva")
		}
		if err := s.repo.CrearTx(tx, sub); err != nil {
			return apierror.Internal("error al crear la subcategoria", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return mapSubcategoria(sub), nil
}

func (s *subcategoriaService) Listar(ctx context.Context, categoriaID uint, incluirInactivas bool) ([]dto.SubcategoriaResponse, error) {
	list, err := s.repo.Listar(ctx, categoriaID, incluirInactivas)
	if err != nil {
		return nil, apierror.Internal("error al listar subcategorias", err)
	}
	result := make([]dto.SubcategoriaResponse, 0, len(list))
	for i := range list {
		result = append(result, *mapSubcategoria(&list[i]))
	}
	return result, nil
}

func (s *subcategoriaService) Obtener(ctx context.Context, id uint) (*dto.SubcategoriaResponse, error) {
	sub, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("subcategoria no encontrada")
		}
		return nil, apierror.Internal("error al obtener la subcategoria", err)
	}
	return mapSubcategoria(sub), nil
}

func (s *subcategoriaService) Actualizar(ctx context.Context, id uint, req dto.ActualizarSubcategoriaRequest) (*dto.SubcategoriaResponse, error) {
	sub, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("subcategoria no encontrada")
		}
		return nil, apierror.Internal("error al obtener la subcategoria", err)
	}

	if req.Nombre != nil && *req.Nombre != sub.Nombre {
		existing, err := s.repo.ObtenerPorNombreYCategoria(ctx, *req.Nombre, sub.CategoriaID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Internal("error al consultar subcategorias", err)
		}
		if existing != nil && existing.ID != id {
			return nil, apierror.Conflict("ya existe una subcategoria con ese nombre en la categoria")
		}
		sub.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		sub.Descripcion = req.Descripcion
	}

	if err := s.repo.Actualizar(ctx, sub); err != nil {
		return nil, apierror.Internal("error al actualizar la subcategoria", err)
	}
	return mapSubcategoria(sub), nil
}

// CambiarEstado toggles activo on the subcategory. Deactivation sweeps the
// products that hang from this subcategory; activation does not cascade and
// does not require the parent to be active (the catalog read path filters
// by the whole chain anyway).
func (s *subcategoriaService) CambiarEstado(ctx context.Context, id uint, activo bool) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		sub, err := s.repo.ObtenerPorIDForUpdateTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("subcategoria no encontrada")
			}
			return apierror.Internal("error al obtener la subcategoria", err)
		}
		if sub.Activo == activo {
			return nil
		}
		if err := s.repo.ActualizarActivoTx(tx, id, activo); err != nil {
			return apierror.Internal("error al actualizar la subcategoria", err)
		}
		if !activo {
			if err := s.prodRepo.DesactivarPorSubcategoriaTx(tx, id); err != nil {
				return apierror.Internal("error al desactivar productos", err)
			}
		}
		return nil
	})
}
