package service_test

import (
	"context"
	"testing"

	"github.com/FelipeF32/Articulacion/internal/apierror"
	"github.com/FelipeF32/Articulacion/internal/dto"
	"github.com/FelipeF32/Articulacion/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const usuarioID = uint(7)

func nuevoCarritoSvc() (service.CarritoService, *stubCarritoRepo, *stubProductoRepo) {
	carritoRepo := newStubCarritoRepo()
	prodRepo := newStubProductoRepo()
	return service.NewCarritoService(carritoRepo, prodRepo), carritoRepo, prodRepo
}

func TestAgregarCongelaPrecio(t *testing.T) {
	svc, _, prodRepo := nuevoCarritoSvc()
	p := seedProducto(prodRepo, "Teclado", 1, 1, 10, true)
	p.Precio = decimal.NewFromFloat(150.00)

	item, err := svc.Agregar(context.Background(), usuarioID, dto.AgregarCarritoRequest{
		ProductoID: p.ID, Cantidad: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "150", item.PrecioUnitario.String())

	// A later catalog price change must not touch the snapshot.
	p.Precio = decimal.NewFromFloat(999.99)
	carrito, err := svc.Obtener(context.Background(), usuarioID)
	require.NoError(t, err)
	require.Len(t, carrito.Items, 1)
	assert.Equal(t, "150", carrito.Items[0].PrecioUnitario.String())
	assert.Equal(t, "300", carrito.Total.String())
}

func TestAgregarStockJusto(t *testing.T) {
	svc, _, prodRepo := nuevoCarritoSvc()
	p := seedProducto(prodRepo, "Mouse", 1, 1, 5, true)

	// cantidad == stock passes; cart lines never decrement stock.
	_, err := svc.Agregar(context.Background(), usuarioID, dto.AgregarCarritoRequest{
		ProductoID: p.ID, Cantidad: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, prodRepo.productos[p.ID].Stock)
}

func TestAgregarStockInsuficiente(t *testing.T) {
	svc, _, prodRepo := nuevoCarritoSvc()
	p := seedProducto(prodRepo, "Mouse", 1, 1, 5, true)

	_, err := svc.Agregar(context.Background(), usuarioID, dto.AgregarCarritoRequest{
		ProductoID: p.ID, Cantidad: 6,
	})
	e, ok := apierror.As(err)
	require.True(t, ok)
	assert.Equal(t, apierror.KindInsufficientStock, e.Kind)
	assert.Equal(t, 6, e.Solicitado)
	assert.Equal(t, 5, e.Disponible)
}

func TestAgregarMismoProductoSumaCantidades(t *testing.T) {
	svc, carritoRepo, prodRepo := nuevoCarritoSvc()
	p := seedProducto(prodRepo, "Monitor", 1, 1, 10, true)

	_, err := svc.Agregar(context.Background(), usuarioID, dto.AgregarCarritoRequest{
		ProductoID: p.ID, Cantidad: 3,
	})
	require.NoError(t, err)

	item, err := svc.Agregar(context.Background(), usuarioID, dto.AgregarCarritoRequest{
		ProductoID: p.ID, Cantidad: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, item.Cantidad)
	// Merged, not duplicated — the unique (usuario, producto) pair holds.
	assert.Len(t, carritoRepo.items, 1)
}

func TestAgregarMergeValidaCantidadCombinada(t *testing.T) {
	svc, _, prodRepo := nuevoCarritoSvc()
	p := seedProducto(prodRepo, "Monitor", 1, 1, 5, true)

	_, err := svc.Agregar(context.Background(), usuarioID, dto.AgregarCarritoRequest{
		ProductoID: p.ID, Cantidad: 3,
	})
	require.NoError(t, err)

	_, err = svc.Agregar(context.Background(), usuarioID, dto.AgregarCarritoRequest{
		ProductoID: p.ID, Cantidad: 3,
	})
	e, ok := apierror.As(err)
	require.True(t, ok)
	assert.Equal(t, apierror.KindInsufficientStock, e.Kind)
	assert.Equal(t, 6, e.Solicitado)
	assert.Equal(t, 5, e.Disponible)
}

func TestAgregarProductoInactivo(t *testing.T) {
	svc, _, prodRepo := nuevoCarritoSvc()
	p := seedProducto(prodRepo, "Descontinuado", 1, 1, 10, false)

	_, err := svc.Agregar(context.Background(), usuarioID, dto.AgregarCarritoRequest{
		ProductoID: p.ID, Cantidad: 1,
	})
	e, ok := apierror.As(err)
	require.True(t, ok)
	assert.Equal(t, apierror.KindValidation, e.Kind)
}

func TestActualizarCantidadRevalidaStock(t *testing.T) {
	svc, _, prodRepo := nuevoCarritoSvc()
	p := seedProducto(prodRepo, "Teclado", 1, 1, 5, true)

	item, err := svc.Agregar(context.Background(), usuarioID, dto.AgregarCarritoRequest{
		ProductoID: p.ID, Cantidad: 2,
	})
	require.NoError(t, err)

	_, err = svc.ActualizarCantidad(context.Background(), usuarioID, item.ID, 9)
	e, ok := apierror.As(err)
	require.True(t, ok)
	assert.Equal(t, apierror.KindInsufficientStock, e.Kind)

	actualizado, err := svc.ActualizarCantidad(context.Background(), usuarioID, item.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, actualizado.Cantidad)
}

func TestActualizarCantidadDeOtroUsuario(t *testing.T) {
	svc, _, prodRepo := nuevoCarritoSvc()
	p := seedProducto(prodRepo, "Teclado", 1, 1, 5, true)

	item, err := svc.Agregar(context.Background(), usuarioID, dto.AgregarCarritoRequest{
		ProductoID: p.ID, Cantidad: 2,
	})
	require.NoError(t, err)

	// Another user probing this line id gets a 404, not a 403 — line
	// existence is not disclosed.
	_, err = svc.ActualizarCantidad(context.Background(), usuarioID+1, item.ID, 3)
	e, ok := apierror.As(err)
	require.True(t, ok)
	assert.Equal(t, apierror.KindNotFound, e.Kind)
}

func TestCalcularTotal(t *testing.T) {
	svc, _, prodRepo := nuevoCarritoSvc()
	p1 := seedProducto(prodRepo, "A", 1, 1, 10, true)
	p1.Precio = decimal.NewFromFloat(100.00)
	p2 := seedProducto(prodRepo, "B", 1, 1, 10, true)
	p2.Precio = decimal.NewFromFloat(50.00)

	_, err := svc.Agregar(context.Background(), usuarioID, dto.AgregarCarritoRequest{ProductoID: p1.ID, Cantidad: 2})
	require.NoError(t, err)
	_, err = svc.Agregar(context.Background(), usuarioID, dto.AgregarCarritoRequest{ProductoID: p2.ID, Cantidad: 2})
	require.NoError(t, err)

	total, err := svc.CalcularTotal(context.Background(), usuarioID)
	require.NoError(t, err)
	assert.Equal(t, "300", total.String())
}

func TestCalcularTotalCarritoVacio(t *testing.T) {
	svc, _, _ := nuevoCarritoSvc()

	total, err := svc.CalcularTotal(context.Background(), usuarioID)
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestVaciarReportaEliminados(t *testing.T) {
	svc, _, prodRepo := nuevoCarritoSvc()
	p1 := seedProducto(prodRepo, "A", 1, 1, 10, true)
	p2 := seedProducto(prodRepo, "B", 1, 1, 10, true)

	_, err := svc.Agregar(context.Background(), usuarioID, dto.AgregarCarritoRequest{ProductoID: p1.ID, Cantidad: 1})
	require.NoError(t, err)
	_, err = svc.Agregar(context.Background(), usuarioID, dto.AgregarCarritoRequest{ProductoID: p2.ID, Cantidad: 1})
	require.NoError(t, err)

	n, err := svc.Vaciar(context.Background(), usuarioID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	// Emptying an already-empty cart is not an error.
	n, err = svc.Vaciar(context.Background(), usuarioID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}
