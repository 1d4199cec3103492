package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/FelipeF32/Articulacion/internal/apierror"
	"github.com/FelipeF32/Articulacion/internal/dto"
	"github.com/FelipeF32/Articulacion/internal/model"
	"github.com/FelipeF32/Articulacion/internal/repository"

	"gorm.io/gorm"
)

// ProductoService manages the catalog leaves plus the stock ledger reads.
type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Obtener(ctx context.Context, id uint) (*dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id uint, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Desactivar(ctx context.Context, id uint) error
	Reactivar(ctx context.Context, id uint) error

	// HayStock is the point-in-time availability check. Cart and checkout
	// never rely on it alone — they re-check under a row lock before writing.
	HayStock(ctx context.Context, productoID uint, cantidad int) (bool, error)
	// AjustarStock applies a manual delta and records the movement.
	AjustarStock(ctx context.Context, id uint, delta int, motivo string) (*dto.ProductoResponse, error)
	// ListarMovimientos returns the product's movement history, newest first.
	ListarMovimientos(ctx context.Context, productoID uint, limit int) ([]dto.MovimientoStockResponse, error)
}

type productoService struct {
	repo    repository.ProductoRepository
	subRepo repository.SubcategoriaRepository
	movRepo repository.MovimientoStockRepository
}

func NewProductoService(
	repo repository.ProductoRepository,
	subRepo repository.SubcategoriaRepository,
	movRepo repository.MovimientoStockRepository,
) ProductoService {
	return &productoService{repo: repo, subRepo: subRepo, movRepo: movRepo}
}

func mapProducto(p *model.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		ID:             p.ID,
		Nombre:         p.Nombre,
		Descripcion:    p.Descripcion,
		Precio:         p.Precio,
		Stock:          p.Stock,
		Activo:         p.Activo,
		CategoriaID:    p.CategoriaID,
		SubcategoriaID: p.SubcategoriaID,
		Imagen:         p.Imagen,
	}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if req.Precio.IsNegative() {
		return nil, apierror.ValidationField("precio", "el precio no puede ser negativo")
	}

	sub, err := s.subRepo.ObtenerPorID(ctx, req.SubcategoriaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("la subcategoria seleccionada no existe")
		}
		return nil, apierror.Internal("error al obtener la subcategoria", err)
	}
	if sub.CategoriaID != req.CategoriaID {
		return nil, apierror.ValidationField("subcategoria_id",
			"la subcategoria no pertenece a la categoria indicada")
	}
	if !sub.Activo {
		return nil, apierror.ValidationField("subcategoria_id",
			"no se puede crear un producto en una subcategoria inactiva")
	}

	p := &model.Producto{
		Nombre:         req.Nombre,
		Descripcion:    req.Descripcion,
		Precio:         req.Precio,
		Stock:          req.Stock,
		Activo:         true,
		CategoriaID:    req.CategoriaID,
		SubcategoriaID: req.SubcategoriaID,
		Imagen:         req.Imagen,
	}
	if err := s.repo.Crear(ctx, p); err != nil {
		return nil, apierror.Internal("error al crear el producto", err)
	}
	return mapProducto(p), nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	productos, total, err := s.repo.Listar(ctx, filter)
	if err != nil {
		return nil, apierror.Internal("error al listar productos", err)
	}
	data := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		data = append(data, *mapProducto(&productos[i]))
	}
	return &dto.ProductoListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productoService) Obtener(ctx context.Context, id uint) (*dto.ProductoResponse, error) {
	p, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("producto no encontrado")
		}
		return nil, apierror.Internal("error al obtener el producto", err)
	}
	return mapProducto(p), nil
}

func (s *productoService) Actualizar(ctx context.Context, id uint, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("producto no encontrado")
		}
		return nil, apierror.Internal("error al obtener el producto", err)
	}

	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		p.Descripcion = req.Descripcion
	}
	if req.Precio != nil {
		if req.Precio.IsNegative() {
			return nil, apierror.ValidationField("precio", "el precio no puede ser negativo")
		}
		// Price changes do NOT touch existing cart or order lines: both
		// carry their own snapshot.
		p.Precio = *req.Precio
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, apierror.ValidationField("stock", "el stock no puede ser negativo")
		}
		p.Stock = *req.Stock
	}
	if req.Imagen != nil {
		p.Imagen = req.Imagen
	}

	if err := s.repo.Actualizar(ctx, p); err != nil {
		return nil, apierror.Internal("error al actualizar el producto", err)
	}
	return mapProducto(p), nil
}

func (s *productoService) Desactivar(ctx context.Context, id uint) error {
	if _, err := s.repo.ObtenerPorID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("producto no encontrado")
		}
		return apierror.Internal("error al obtener el producto", err)
	}
	if err := s.repo.Desactivar(ctx, id); err != nil {
		return apierror.Internal("error al desactivar el producto", err)
	}
	return nil
}

func (s *productoService) Reactivar(ctx context.Context, id uint) error {
	if _, err := s.repo.ObtenerPorID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("producto no encontrado")
		}
		return apierror.Internal("error al obtener el producto", err)
	}
	if err := s.repo.Reactivar(ctx, id); err != nil {
		return apierror.Internal("error al reactivar el producto", err)
	}
	return nil
}

func (s *productoService) HayStock(ctx context.Context, productoID uint, cantidad int) (bool, error) {
	p, err := s.repo.ObtenerPorID(ctx, productoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apierror.NotFound("producto no encontrado")
		}
		return false, apierror.Internal("error al obtener el producto", err)
	}
	return p.HayStock(cantidad), nil
}

func (s *productoService) AjustarStock(ctx context.Context, id uint, delta int, motivo string) (*dto.ProductoResponse, error) {
	var out *dto.ProductoResponse
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		p, err := s.repo.ObtenerPorIDForUpdateTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("producto no encontrado")
			}
			return apierror.Internal("error al obtener el producto", err)
		}
		nuevo := p.Stock + delta
		if nuevo < 0 {
			return apierror.ValidationField("delta",
				fmt.Sprintf("el ajuste dejaria el stock en %d", nuevo))
		}
		if err := s.repo.DescontarStockTx(tx, id, -delta); err != nil {
			return apierror.Internal("error al ajustar el stock", err)
		}
		mov := &model.MovimientoStock{
			ProductoID:    id,
			Tipo:          "ajuste",
			Cantidad:      delta,
			StockAnterior: p.Stock,
			StockNuevo:    nuevo,
			Motivo:        motivo,
		}
		if err := s.movRepo.RegistrarTx(tx, mov); err != nil {
			return apierror.Internal("error al registrar el movimiento", err)
		}
		p.Stock = nuevo
		out = mapProducto(p)
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return out, nil
}

func (s *productoService) ListarMovimientos(ctx context.Context, productoID uint, limit int) ([]dto.MovimientoStockResponse, error) {
	if _, err := s.repo.ObtenerPorID(ctx, productoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("producto no encontrado")
		}
		return nil, apierror.Internal("error al obtener el producto", err)
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}
	movs, err := s.movRepo.ListarPorProducto(ctx, productoID, limit)
	if err != nil {
		return nil, apierror.Internal("error al listar los movimientos", err)
	}
	out := make([]dto.MovimientoStockResponse, 0, len(movs))
	for i := range movs {
		m := &movs[i]
		out = append(out, dto.MovimientoStockResponse{
			ID:            m.ID,
			ProductoID:    m.ProductoID,
			Tipo:          m.Tipo,
			Cantidad:      m.Cantidad,
			StockAnterior: m.StockAnterior,
			StockNuevo:    m.StockNuevo,
			Motivo:        m.Motivo,
			ReferenciaID:  m.ReferenciaID,
			CreatedAt:     m.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}
