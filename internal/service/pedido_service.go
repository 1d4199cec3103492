package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/FelipeF32/Articulacion/internal/apierror"
	"github.com/FelipeF32/Articulacion/internal/dto"
	"github.com/FelipeF32/Articulacion/internal/model"
	"github.com/FelipeF32/Articulacion/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	masVendidosCacheKey = "reportes:mas_vendidos"
	masVendidosCacheTTL = 5 * time.Minute
)

// PedidoService owns checkout and the order line items that result from it.
type PedidoService interface {
	// CrearDesdeCarrito converts every cart line of the user into an order
	// line, decrements stock exactly once per unit, and empties the cart —
	// all inside one transaction.
	CrearDesdeCarrito(ctx context.Context, usuarioID uint) (*dto.PedidoResponse, error)
	Obtener(ctx context.Context, id uint) (*dto.PedidoResponse, error)
	ListarPorUsuario(ctx context.Context, usuarioID uint) ([]dto.PedidoResponse, error)
	TotalPedido(ctx context.Context, pedidoID uint) (decimal.Decimal, error)
	MasVendidos(ctx context.Context, limite int) ([]dto.ProductoMasVendido, error)
}

type pedidoService struct {
	repo        repository.PedidoRepository
	carritoRepo repository.CarritoRepository
	prodRepo    repository.ProductoRepository
	movRepo     repository.MovimientoStockRepository
	rdb         *redis.Client // nil in unit tests — cache is skipped
}

func NewPedidoService(
	repo repository.PedidoRepository,
	carritoRepo repository.CarritoRepository,
	prodRepo repository.ProductoRepository,
	movRepo repository.MovimientoStockRepository,
	rdb *redis.Client,
) PedidoService {
	return &pedidoService{
		repo:        repo,
		carritoRepo: carritoRepo,
		prodRepo:    prodRepo,
		movRepo:     movRepo,
		rdb:         rdb,
	}
}

func mapPedido(p *model.Pedido, nombres map[uint]string) *dto.PedidoResponse {
	detalles := make([]dto.DetallePedidoResponse, 0, len(p.Detalles))
	for i := range p.Detalles {
		d := &p.Detalles[i]
		nombre := nombres[d.ProductoID]
		if nombre == "" && d.Producto != nil {
			nombre = d.Producto.Nombre
		}
		detalles = append(detalles, dto.DetallePedidoResponse{
			ProductoID:     d.ProductoID,
			Producto:       nombre,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			Subtotal:       d.Subtotal,
		})
	}
	return &dto.PedidoResponse{
		ID:        p.ID,
		UsuarioID: p.UsuarioID,
		Estado:    p.Estado,
		Total:     p.Total,
		Detalles:  detalles,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}

// CrearDesdeCarrito is the checkout transaction:
//  1. lock every product row (FOR UPDATE) in cart order
//  2. revalidate activo + stock against the locked rows
//  3. build detalles copying producto, cantidad and the cart's price
//     snapshot verbatim; subtotal = round(precio × cantidad, 2)
//  4. create pedido + detalles, decrement stock, record movimientos
//  5. empty the cart
//
// Any failure aborts the whole thing — stock is never decremented for an
// order that did not materialize.
func (s *pedidoService) CrearDesdeCarrito(ctx context.Context, usuarioID uint) (*dto.PedidoResponse, error) {
	items, err := s.carritoRepo.ListarPorUsuario(ctx, usuarioID)
	if err != nil {
		return nil, apierror.Internal("error al obtener el carrito", err)
	}
	if len(items) == 0 {
		return nil, apierror.Validation("el carrito esta vacio")
	}

	var pedido model.Pedido
	nombres := make(map[uint]string, len(items))

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		total := decimal.Zero
		detalles := make([]model.DetallePedido, 0, len(items))
		stockAntes := make(map[uint]int, len(items))

		for i := range items {
			item := &items[i]
			p, err := s.prodRepo.ObtenerPorIDForUpdateTx(tx, item.ProductoID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apierror.NotFound(fmt.Sprintf("producto %d no encontrado", item.ProductoID))
				}
				return apierror.Internal("error al obtener el producto", err)
			}
			if !p.Activo {
				return apierror.Validation(fmt.Sprintf("el producto %s esta inactivo", p.Nombre))
			}
			if !p.HayStock(item.Cantidad) {
				return apierror.InsufficientStock(item.Cantidad, p.Stock)
			}
			nombres[p.ID] = p.Nombre
			stockAntes[p.ID] = p.Stock

			detalle := model.DetallePedido{
				ProductoID:     item.ProductoID,
				Cantidad:       item.Cantidad,
				PrecioUnitario: item.PrecioUnitario,
			}
			detalle.CalcularSubtotal()
			total = total.Add(detalle.Subtotal)
			detalles = append(detalles, detalle)
		}

		pedido = model.Pedido{
			UsuarioID: usuarioID,
			Estado:    "pendiente",
			Total:     total,
			Detalles:  detalles,
		}
		if err := s.repo.CrearTx(tx, &pedido); err != nil {
			return apierror.Internal("error al crear el pedido", err)
		}

		for i := range pedido.Detalles {
			d := &pedido.Detalles[i]
			if err := s.prodRepo.DescontarStockTx(tx, d.ProductoID, d.Cantidad); err != nil {
				return apierror.Internal("error al descontar stock", err)
			}
			antes := stockAntes[d.ProductoID]
			ref := pedido.ID
			mov := &model.MovimientoStock{
				ProductoID:    d.ProductoID,
				Tipo:          "pedido",
				Cantidad:      -d.Cantidad,
				StockAnterior: antes,
				StockNuevo:    antes - d.Cantidad,
				Motivo:        fmt.Sprintf("Pedido #%d", pedido.ID),
				ReferenciaID:  &ref,
			}
			if err := s.movRepo.RegistrarTx(tx, mov); err != nil {
				return apierror.Internal("error al registrar el movimiento", err)
			}
		}

		if _, err := s.carritoRepo.VaciarTx(tx, usuarioID); err != nil {
			return apierror.Internal("error al vaciar el carrito", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.invalidarMasVendidos(ctx)

	log.Info().Uint("pedido_id", pedido.ID).Uint("usuario_id", usuarioID).
		Str("total", pedido.Total.String()).Msg("pedido creado")
	return mapPedido(&pedido, nombres), nil
}

func (s *pedidoService) Obtener(ctx context.Context, id uint) (*dto.PedidoResponse, error) {
	p, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("pedido no encontrado")
		}
		return nil, apierror.Internal("error al obtener el pedido", err)
	}
	return mapPedido(p, nil), nil
}

func (s *pedidoService) ListarPorUsuario(ctx context.Context, usuarioID uint) ([]dto.PedidoResponse, error) {
	pedidos, err := s.repo.ListarPorUsuario(ctx, usuarioID)
	if err != nil {
		return nil, apierror.Internal("error al listar pedidos", err)
	}
	result := make([]dto.PedidoResponse, 0, len(pedidos))
	for i := range pedidos {
		result = append(result, *mapPedido(&pedidos[i], nil))
	}
	return result, nil
}

// TotalPedido reads the persisted subtotals — it never recomputes from
// product prices, so the number is stable over later catalog changes.
func (s *pedidoService) TotalPedido(ctx context.Context, pedidoID uint) (decimal.Decimal, error) {
	if _, err := s.repo.ObtenerPorID(ctx, pedidoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, apierror.NotFound("pedido no encontrado")
		}
		return decimal.Zero, apierror.Internal("error al obtener el pedido", err)
	}
	total, err := s.repo.TotalPedido(ctx, pedidoID)
	if err != nil {
		return decimal.Zero, apierror.Internal("error al calcular el total", err)
	}
	return total, nil
}

// MasVendidos serves the best-seller report through a short Redis
// read-through cache; checkout invalidates it.
func (s *pedidoService) MasVendidos(ctx context.Context, limite int) ([]dto.ProductoMasVendido, error) {
	if limite < 1 {
		limite = 10
	}
	cacheKey := fmt.Sprintf("%s:%d", masVendidosCacheKey, limite)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var rows []dto.ProductoMasVendido
			if jsonErr := json.Unmarshal(cached, &rows); jsonErr == nil {
				return rows, nil
			}
		}
	}

	rows, err := s.repo.MasVendidos(ctx, limite)
	if err != nil {
		return nil, apierror.Internal("error al obtener el reporte", err)
	}

	if s.rdb != nil {
		if b, jsonErr := json.Marshal(rows); jsonErr == nil {
			_ = s.rdb.Set(ctx, cacheKey, b, masVendidosCacheTTL).Err()
		}
	}
	return rows, nil
}

func (s *pedidoService) invalidarMasVendidos(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	iter := s.rdb.Scan(ctx, 0, masVendidosCacheKey+":*", 100).Iterator()
	for iter.Next(ctx) {
		_ = s.rdb.Del(ctx, iter.Val()).Err()
	}
	if err := iter.Err(); err != nil {
		log.Warn().Err(err).Msg("no se pudo invalidar el cache de mas vendidos")
	}
}
