package router

import (
	"time"

	"github.com/FelipeF32/Articulacion/internal/config"
	"github.com/FelipeF32/Articulacion/internal/handler"
	"github.com/FelipeF32/Articulacion/internal/middleware"
	"github.com/FelipeF32/Articulacion/internal/model"
	"github.com/FelipeF32/Articulacion/internal/repository"
	"github.com/FelipeF32/Articulacion/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	subcategoriaRepo := repository.NewSubcategoriaRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	carritoRepo := repository.NewCarritoRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)
	movimientoRepo := repository.NewMovimientoStockRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	categoriaSvc := service.NewCategoriaService(categoriaRepo, subcategoriaRepo, productoRepo)
	subcategoriaSvc := service.NewSubcategoriaService(subcategoriaRepo, categoriaRepo, productoRepo)
	productoSvc := service.NewProductoService(productoRepo, subcategoriaRepo, movimientoRepo)
	carritoSvc := service.NewCarritoService(carritoRepo, productoRepo)
	pedidoSvc := service.NewPedidoService(pedidoRepo, carritoRepo, productoRepo, movimientoRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)
	subcategoriasH := handler.NewSubcategoriasHandler(subcategoriaSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	carritoH := handler.NewCarritoHandler(carritoSvc)
	pedidosH := handler.NewPedidosHandler(pedidoSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/registro", authH.Registrar)
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	staff := middleware.RequireRole(model.RolAuxiliar, model.RolAdministrador)
	admin := middleware.RequireRole(model.RolAdministrador)

	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/auth/perfil", authH.Perfil)

		// Catalog reads — any authenticated user; the default listing only
		// shows active rows, staff can ask for inactive ones too.
		v1.GET("/categorias", categoriasH.Listar)
		v1.GET("/categorias/:id", categoriasH.Obtener)
		v1.GET("/subcategorias", subcategoriasH.Listar)
		v1.GET("/subcategorias/:id", subcategoriasH.Obtener)
		v1.GET("/productos", productosH.Listar)
		v1.GET("/productos/:id", productosH.Obtener)
		v1.GET("/productos/:id/stock", productosH.Stock)

		// Catalog writes — administrador only; estado toggles run the cascade.
		categorias := v1.Group("/categorias", admin)
		{
			categorias.POST("", categoriasH.Crear)
			categorias.PUT("/:id", categoriasH.Actualizar)
			categorias.PATCH("/:id/estado", categoriasH.CambiarEstado)
		}
		subcategorias := v1.Group("/subcategorias", admin)
		{
			subcategorias.POST("", subcategoriasH.Crear)
			subcategorias.PUT("/:id", subcategoriasH.Actualizar)
			subcategorias.PATCH("/:id/estado", subcategoriasH.CambiarEstado)
		}
		prods := v1.Group("/productos", admin)
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Desactivar)
			prods.PATCH("/:id/reactivar", productosH.Reactivar)
		}
		// Stock operations — auxiliar can operate the warehouse too.
		v1.PATCH("/productos/:id/stock", staff, productosH.AjustarStock)
		v1.GET("/productos/:id/movimientos", staff, productosH.Movimientos)

		// Cart — every authenticated user owns exactly one cart.
		carrito := v1.Group("/carrito")
		{
			carrito.POST("", carritoH.Agregar)
			carrito.GET("", carritoH.Obtener)
			carrito.GET("/total", carritoH.Total)
			carrito.PUT("/:id", carritoH.ActualizarCantidad)
			carrito.DELETE("/:id", carritoH.Eliminar)
			carrito.DELETE("", carritoH.Vaciar)
		}

		// Orders
		pedidos := v1.Group("/pedidos")
		{
			pedidos.POST("", pedidosH.Crear)
			pedidos.GET("", pedidosH.Listar)
			pedidos.GET("/:id", pedidosH.Obtener)
			pedidos.GET("/:id/total", pedidosH.Total)
		}

		// Reports — staff only
		v1.GET("/reportes/mas-vendidos", staff, pedidosH.MasVendidos)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
