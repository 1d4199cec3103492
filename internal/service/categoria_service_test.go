package service_test

import (
	"context"
	"testing"

	"github.com/FelipeF32/Articulacion/internal/apierror"
	"github.com/FelipeF32/Articulacion/internal/dto"
	"github.com/FelipeF32/Articulacion/internal/model"
	"github.com/FelipeF32/Articulacion/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCategoria(repo *stubCategoriaRepo, nombre string, activo bool) *model.Categoria {
	c := &model.Categoria{ID: repo.nextID, Nombre: nombre, Activo: activo}
	repo.nextID++
	repo.categorias[c.ID] = c
	return c
}

func seedSubcategoria(repo *stubSubcategoriaRepo, nombre string, categoriaID uint, activo bool) *model.Subcategoria {
	s := &model.Subcategoria{ID: repo.nextID, Nombre: nombre, CategoriaID: categoriaID, Activo: activo}
	repo.nextID++
	repo.subcategorias[s.ID] = s
	return s
}

func seedProducto(repo *stubProductoRepo, nombre string, categoriaID, subcategoriaID uint, stock int, activo bool) *model.Producto {
	p := &model.Producto{
		ID:             repo.nextID,
		Nombre:         nombre,
		Precio:         decimal.NewFromFloat(100.00),
		Stock:          stock,
		Activo:         activo,
		CategoriaID:    categoriaID,
		SubcategoriaID: subcategoriaID,
	}
	repo.nextID++
	repo.productos[p.ID] = p
	return p
}

func TestCrearCategoriaNaceInactiva(t *testing.T) {
	repo := newStubCategoriaRepo()
	svc := service.NewCategoriaService(repo, newStubSubcategoriaRepo(), newStubProductoRepo())

	resp, err := svc.Crear(context.Background(), dto.CrearCategoriaRequest{Nombre: "Electronica"})
	require.NoError(t, err)
	assert.False(t, resp.Activo)
}

func TestCrearCategoriaNombreDuplicado(t *testing.T) {
	repo := newStubCategoriaRepo()
	svc := service.NewCategoriaService(repo, newStubSubcategoriaRepo(), newStubProductoRepo())
	seedCategoria(repo, "Hogar", true)

	_, err := svc.Crear(context.Background(), dto.CrearCategoriaRequest{Nombre: "Hogar"})
	e, ok := apierror.As(err)
	require.True(t, ok)
	assert.Equal(t, apierror.KindConflict, e.Kind)
}

func TestDesactivarCategoriaArrastraHijos(t *testing.T) {
	catRepo := newStubCategoriaRepo()
	subRepo := newStubSubcategoriaRepo()
	prodRepo := newStubProductoRepo()
	svc := service.NewCategoriaService(catRepo, subRepo, prodRepo)

	cat := seedCategoria(catRepo, "Bebidas", true)
	sub1 := seedSubcategoria(subRepo, "Gaseosas", cat.ID, true)
	sub2 := seedSubcategoria(subRepo, "Aguas", cat.ID, true)
	p1 := seedProducto(prodRepo, "Cola 1.5L", cat.ID, sub1.ID, 10, true)
	p2 := seedProducto(prodRepo, "Agua 500ml", cat.ID, sub2.ID, 20, true)

	// A sibling category must not be touched by the sweep.
	otra := seedCategoria(catRepo, "Snacks", true)
	subOtra := seedSubcategoria(subRepo, "Papas", otra.ID, true)
	pOtra := seedProducto(prodRepo, "Papas 200g", otra.ID, subOtra.ID, 5, true)

	require.NoError(t, svc.CambiarEstado(context.Background(), cat.ID, false))

	assert.False(t, catRepo.categorias[cat.ID].Activo)
	assert.False(t, subRepo.subcategorias[sub1.ID].Activo)
	assert.False(t, subRepo.subcategorias[sub2.ID].Activo)
	assert.False(t, prodRepo.productos[p1.ID].Activo)
	assert.False(t, prodRepo.productos[p2.ID].Activo)

	assert.True(t, catRepo.categorias[otra.ID].Activo)
	assert.True(t, subRepo.subcategorias[subOtra.ID].Activo)
	assert.True(t, prodRepo.productos[pOtra.ID].Activo)
}

func TestActivarCategoriaNoPropaga(t *testing.T) {
	catRepo := newStubCategoriaRepo()
	subRepo := newStubSubcategoriaRepo()
	prodRepo := newStubProductoRepo()
	svc := service.NewCategoriaService(catRepo, subRepo, prodRepo)

	cat := seedCategoria(catRepo, "Limpieza", true)
	sub := seedSubcategoria(subRepo, "Detergentes", cat.ID, true)
	p := seedProducto(prodRepo, "Detergente 750ml", cat.ID, sub.ID, 10, true)

	require.NoError(t, svc.CambiarEstado(context.Background(), cat.ID, false))
	require.NoError(t, svc.CambiarEstado(context.Background(), cat.ID, true))

	// Reactivation is surgical: children stay off until toggled one by one.
	assert.True(t, catRepo.categorias[cat.ID].Activo)
	assert.False(t, subRepo.subcategorias[sub.ID].Activo)
	assert.False(t, prodRepo.productos[p.ID].Activo)
}

func TestCambiarEstadoMismoValorEsNoOp(t *testing.T) {
	catRepo := newStubCategoriaRepo()
	subRepo := newStubSubcategoriaRepo()
	prodRepo := newStubProductoRepo()
	svc := service.NewCategoriaService(catRepo, subRepo, prodRepo)

	cat := seedCategoria(catRepo, "Jardin", true)
	sub := seedSubcategoria(subRepo, "Macetas", cat.ID, true)

	// Asking to activate an already-active category must not run any sweep.
	require.NoError(t, svc.CambiarEstado(context.Background(), cat.ID, true))
	assert.True(t, subRepo.subcategorias[sub.ID].Activo)
}

func TestCambiarEstadoCategoriaInexistente(t *testing.T) {
	svc := service.NewCategoriaService(newStubCategoriaRepo(), newStubSubcategoriaRepo(), newStubProductoRepo())

	err := svc.CambiarEstado(context.Background(), 999, false)
	e, ok := apierror.As(err)
	require.True(t, ok)
	assert.Equal(t, apierror.KindNotFound, e.Kind)
}

func TestListarCategoriasFiltraInactivas(t *testing.T) {
	repo := newStubCategoriaRepo()
	svc := service.NewCategoriaService(repo, newStubSubcategoriaRepo(), newStubProductoRepo())
	seedCategoria(repo, "Activa", true)
	seedCategoria(repo, "Inactiva", false)

	visibles, err := svc.Listar(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, visibles, 1)

	todas, err := svc.Listar(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, todas, 2)
}
