package service_test

import (
	"context"
	"sort"

	"github.com/FelipeF32/Articulacion/internal/dto"
	"github.com/FelipeF32/Articulacion/internal/model"
	"github.com/FelipeF32/Articulacion/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository stubs. DB() returns nil so the service transaction
// helper invokes callbacks directly; the tx argument of the ...Tx methods is
// ignored.

// ── Categoria ─────────────────────────────────────────────────────────────────

type stubCategoriaRepo struct {
	categorias map[uint]*model.Categoria
	nextID     uint
}

func newStubCategoriaRepo() *stubCategoriaRepo {
	return &stubCategoriaRepo{categorias: make(map[uint]*model.Categoria), nextID: 1}
}

func (r *stubCategoriaRepo) Crear(_ context.Context, c *model.Categoria) error {
	c.ID = r.nextID
	r.nextID++
	r.categorias[c.ID] = c
	return nil
}

func (r *stubCategoriaRepo) Listar(_ context.Context, incluirInactivas bool) ([]model.Categoria, error) {
	var list []model.Categoria
	for _, c := range r.categorias {
		if !incluirInactivas && !c.Activo {
			continue
		}
		list = append(list, *c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Nombre < list[j].Nombre })
	return list, nil
}

func (r *stubCategoriaRepo) ObtenerPorID(_ context.Context, id uint) (*model.Categoria, error) {
	c, ok := r.categorias[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCategoriaRepo) ObtenerPorNombre(_ context.Context, nombre string) (*model.Categoria, error) {
	for _, c := range r.categorias {
		if c.Nombre == nombre {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCategoriaRepo) Actualizar(_ context.Context, c *model.Categoria) error {
	r.categorias[c.ID] = c
	return nil
}

func (r *stubCategoriaRepo) ObtenerPorIDForUpdateTx(_ *gorm.DB, id uint) (*model.Categoria, error) {
	return r.ObtenerPorID(context.Background(), id)
}

func (r *stubCategoriaRepo) ActualizarActivoTx(_ *gorm.DB, id uint, activo bool) error {
	c, ok := r.categorias[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Activo = activo
	return nil
}

func (r *stubCategoriaRepo) ContarSubcategorias(_ context.Context, _ uint) (int64, error) {
	return 0, nil
}

func (r *stubCategoriaRepo) ContarProductos(_ context.Context, _ uint) (int64, error) {
	return 0, nil
}

func (r *stubCategoriaRepo) DB() *gorm.DB { return nil }

var _ repository.CategoriaRepository = (*stubCategoriaRepo)(nil)

// ── Subcategoria ──────────────────────────────────────────────────────────────

type stubSubcategoriaRepo struct {
	subcategorias map[uint]*model.Subcategoria
	nextID        uint
}

func newStubSubcategoriaRepo() *stubSubcategoriaRepo {
	return &stubSubcategoriaRepo{subcategorias: make(map[uint]*model.Subcategoria), nextID: 1}
}

func (r *stubSubcategoriaRepo) CrearTx(_ *gorm.DB, s *model.Subcategoria) error {
	s.ID = r.nextID
	r.nextID++
	r.subcategorias[s.ID] = s
	return nil
}

func (r *stubSubcategoriaRepo) Listar(_ context.Context, categoriaID uint, incluirInactivas bool) ([]model.Subcategoria, error) {
	var list []model.Subcategoria
	for _, s := range r.subcategorias {
		if categoriaID != 0 && s.CategoriaID != categoriaID {
			continue
		}
		if !incluirInactivas && !s.Activo {
			continue
		}
		list = append(list, *s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Nombre < list[j].Nombre })
	return list, nil
}

func (r *stubSubcategoriaRepo) ObtenerPorID(_ context.Context, id uint) (*model.Subcategoria, error) {
	s, ok := r.subcategorias[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSubcategoriaRepo) ObtenerPorNombreYCategoria(_ context.Context, nombre string, categoriaID uint) (*model.Subcategoria, error) {
	for _, s := range r.subcategorias {
		if s.Nombre == nombre && s.CategoriaID == categoriaID {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSubcategoriaRepo) Actualizar(_ context.Context, s *model.Subcategoria) error {
	r.subcategorias[s.ID] = s
	return nil
}

func (r *stubSubcategoriaRepo) ObtenerPorIDForUpdateTx(_ *gorm.DB, id uint) (*model.Subcategoria, error) {
	return r.ObtenerPorID(context.Background(), id)
}

func (r *stubSubcategoriaRepo) ActualizarActivoTx(_ *gorm.DB, id uint, activo bool) error {
	s, ok := r.subcategorias[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Activo = activo
	return nil
}

func (r *stubSubcategoriaRepo) DesactivarPorCategoriaTx(_ *gorm.DB, categoriaID uint) error {
	for _, s := range r.subcategorias {
		if s.CategoriaID == categoriaID && s.Activo {
			s.Activo = false
		}
	}
	return nil
}

func (r *stubSubcategoriaRepo) ContarProductos(_ context.Context, _ uint) (int64, error) {
	return 0, nil
}

func (r *stubSubcategoriaRepo) DB() *gorm.DB { return nil }

var _ repository.SubcategoriaRepository = (*stubSubcategoriaRepo)(nil)

// ── Producto ──────────────────────────────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uint]*model.Producto
	nextID    uint
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uint]*model.Producto), nextID: 1}
}

func (r *stubProductoRepo) Crear(_ context.Context, p *model.Producto) error {
	p.ID = r.nextID
	r.nextID++
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) ObtenerPorID(_ context.Context, id uint) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) Listar(_ context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	var list []model.Producto
	for _, p := range r.productos {
		switch filter.Activo {
		case "false":
			if p.Activo {
				continue
			}
		case "all":
		default:
			if !p.Activo {
				continue
			}
		}
		if filter.CategoriaID != 0 && p.CategoriaID != filter.CategoriaID {
			continue
		}
		if filter.SubcategoriaID != 0 && p.SubcategoriaID != filter.SubcategoriaID {
			continue
		}
		list = append(list, *p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Nombre < list[j].Nombre })
	return list, int64(len(list)), nil
}

func (r *stubProductoRepo) Actualizar(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) Desactivar(_ context.Context, id uint) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = false
	return nil
}

func (r *stubProductoRepo) Reactivar(_ context.Context, id uint) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = true
	return nil
}

func (r *stubProductoRepo) ObtenerPorIDForUpdateTx(_ *gorm.DB, id uint) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	// Return a copy, like a real SELECT ... FOR UPDATE loads a fresh row;
	// the shared pointer would let later stub writes alias this snapshot.
	cp := *p
	return &cp, nil
}

func (r *stubProductoRepo) DescontarStockTx(_ *gorm.DB, id uint, cantidad int) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Stock -= cantidad
	return nil
}

func (r *stubProductoRepo) DesactivarPorCategoriaTx(_ *gorm.DB, categoriaID uint) error {
	for _, p := range r.productos {
		if p.CategoriaID == categoriaID && p.Activo {
			p.Activo = false
		}
	}
	return nil
}

func (r *stubProductoRepo) DesactivarPorSubcategoriaTx(_ *gorm.DB, subcategoriaID uint) error {
	for _, p := range r.productos {
		if p.SubcategoriaID == subcategoriaID && p.Activo {
			p.Activo = false
		}
	}
	return nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// ── Carrito ───────────────────────────────────────────────────────────────────

type stubCarritoRepo struct {
	items  map[uint]*model.Carrito
	nextID uint
}

func newStubCarritoRepo() *stubCarritoRepo {
	return &stubCarritoRepo{items: make(map[uint]*model.Carrito), nextID: 1}
}

func (r *stubCarritoRepo) ObtenerPorID(_ context.Context, id uint) (*model.Carrito, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCarritoRepo) ObtenerPorUsuarioYProductoTx(_ *gorm.DB, usuarioID, productoID uint) (*model.Carrito, error) {
	for _, c := range r.items {
		if c.UsuarioID == usuarioID && c.ProductoID == productoID {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCarritoRepo) ListarPorUsuario(_ context.Context, usuarioID uint) ([]model.Carrito, error) {
	var list []model.Carrito
	for _, c := range r.items {
		if c.UsuarioID == usuarioID {
			list = append(list, *c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *stubCarritoRepo) CrearTx(_ *gorm.DB, c *model.Carrito) error {
	c.ID = r.nextID
	r.nextID++
	r.items[c.ID] = c
	return nil
}

func (r *stubCarritoRepo) ActualizarCantidadTx(_ *gorm.DB, id uint, cantidad int) error {
	c, ok := r.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Cantidad = cantidad
	return nil
}

func (r *stubCarritoRepo) EliminarTx(_ *gorm.DB, id uint) error {
	delete(r.items, id)
	return nil
}

func (r *stubCarritoRepo) VaciarTx(_ *gorm.DB, usuarioID uint) (int64, error) {
	var n int64
	for id, c := range r.items {
		if c.UsuarioID == usuarioID {
			delete(r.items, id)
			n++
		}
	}
	return n, nil
}

func (r *stubCarritoRepo) DB() *gorm.DB { return nil }

var _ repository.CarritoRepository = (*stubCarritoRepo)(nil)

// ── Pedido ────────────────────────────────────────────────────────────────────

type stubPedidoRepo struct {
	pedidos map[uint]*model.Pedido
	nextID  uint
}

func newStubPedidoRepo() *stubPedidoRepo {
	return &stubPedidoRepo{pedidos: make(map[uint]*model.Pedido), nextID: 1}
}

func (r *stubPedidoRepo) CrearTx(_ *gorm.DB, p *model.Pedido) error {
	p.ID = r.nextID
	r.nextID++
	for i := range p.Detalles {
		p.Detalles[i].PedidoID = p.ID
	}
	r.pedidos[p.ID] = p
	return nil
}

func (r *stubPedidoRepo) ObtenerPorID(_ context.Context, id uint) (*model.Pedido, error) {
	p, ok := r.pedidos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubPedidoRepo) ListarPorUsuario(_ context.Context, usuarioID uint) ([]model.Pedido, error) {
	var list []model.Pedido
	for _, p := range r.pedidos {
		if p.UsuarioID == usuarioID {
			list = append(list, *p)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func (r *stubPedidoRepo) TotalPedido(_ context.Context, pedidoID uint) (decimal.Decimal, error) {
	p, ok := r.pedidos[pedidoID]
	if !ok {
		return decimal.Zero, nil
	}
	total := decimal.Zero
	for i := range p.Detalles {
		total = total.Add(p.Detalles[i].Subtotal)
	}
	return total, nil
}

func (r *stubPedidoRepo) MasVendidos(_ context.Context, limite int) ([]dto.ProductoMasVendido, error) {
	acum := make(map[uint]int64)
	for _, p := range r.pedidos {
		for i := range p.Detalles {
			acum[p.Detalles[i].ProductoID] += int64(p.Detalles[i].Cantidad)
		}
	}
	rows := make([]dto.ProductoMasVendido, 0, len(acum))
	for id, total := range acum {
		rows = append(rows, dto.ProductoMasVendido{ProductoID: id, TotalVendido: total})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalVendido != rows[j].TotalVendido {
			return rows[i].TotalVendido > rows[j].TotalVendido
		}
		return rows[i].ProductoID < rows[j].ProductoID
	})
	if len(rows) > limite {
		rows = rows[:limite]
	}
	return rows, nil
}

func (r *stubPedidoRepo) DB() *gorm.DB { return nil }

var _ repository.PedidoRepository = (*stubPedidoRepo)(nil)

// ── MovimientoStock ───────────────────────────────────────────────────────────

type stubMovimientoRepo struct {
	movimientos []*model.MovimientoStock
}

func newStubMovimientoRepo() *stubMovimientoRepo { return &stubMovimientoRepo{} }

func (r *stubMovimientoRepo) RegistrarTx(_ *gorm.DB, m *model.MovimientoStock) error {
	m.ID = uint(len(r.movimientos) + 1)
	r.movimientos = append(r.movimientos, m)
	return nil
}

func (r *stubMovimientoRepo) ListarPorProducto(_ context.Context, productoID uint, _ int) ([]model.MovimientoStock, error) {
	var list []model.MovimientoStock
	for _, m := range r.movimientos {
		if m.ProductoID == productoID {
			list = append(list, *m)
		}
	}
	return list, nil
}

var _ repository.MovimientoStockRepository = (*stubMovimientoRepo)(nil)

// ── Usuario ───────────────────────────────────────────────────────────────────

type stubUsuarioRepo struct {
	usuarios map[uint]*model.Usuario
	nextID   uint
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uint]*model.Usuario), nextID: 1}
}

func (r *stubUsuarioRepo) Crear(_ context.Context, u *model.Usuario) error {
	u.ID = r.nextID
	r.nextID++
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) ObtenerPorID(_ context.Context, id uint) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) ObtenerPorEmail(_ context.Context, email string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) Actualizar(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) Desactivar(_ context.Context, id uint) error {
	u, ok := r.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Activo = false
	return nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)
