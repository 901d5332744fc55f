package router

import (
	"time"

	"tiendaonline/internal/config"
	"tiendaonline/internal/handler"
	"tiendaonline/internal/middleware"
	"tiendaonline/internal/repository"
	"tiendaonline/internal/service"
	"tiendaonline/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
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

	loc := cfg.Location()

	// ── Repositories ─────────────────────────────────────────────────────────
	categoriaRepo := repository.NewCategoriaRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	insumoRepo := repository.NewInsumoRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	categoriaSvc := service.NewCategoriaService(categoriaRepo, log.Logger)
	productoSvc := service.NewProductoService(productoRepo, categoriaRepo, rdb, loc, log.Logger)
	insumoSvc := service.NewInsumoService(insumoRepo, log.Logger)
	pedidoSvc := service.NewPedidoService(pedidoRepo, productoRepo, dispatcher, cfg.Domain, loc, log.Logger)
	estadisticasSvc := service.NewEstadisticasService(pedidoRepo, loc, log.Logger)

	// ── Handlers ─────────────────────────────────────────────────────────────
	catalogoH := handler.NewCatalogoHandler(productoSvc)
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	insumosH := handler.NewInsumosHandler(insumoSvc)
	pedidosH := handler.NewPedidosHandler(pedidoSvc)
	estadisticasH := handler.NewEstadisticasHandler(estadisticasSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	v1 := r.Group("/v1")
	{
		// Público — vitrina y seguimiento
		v1.GET("/catalogo", catalogoH.Listar)
		v1.GET("/catalogo/:slug", catalogoH.Detalle)
		v1.GET("/categorias", categoriasH.Listar)
		v1.POST("/pedidos/solicitud", middleware.SolicitudRateLimiter(), pedidosH.Solicitar)
		v1.GET("/pedidos/seguimiento/:token", pedidosH.Seguimiento)

		// Gestión de pedidos
		v1.GET("/pedidos", pedidosH.Listar)
		v1.GET("/pedidos/fecha/:year", pedidosH.ListarPorFecha)
		v1.GET("/pedidos/fecha/:year/:month", pedidosH.ListarPorFecha)
		v1.GET("/pedidos/fecha/:year/:month/:day", pedidosH.ListarPorFecha)
		v1.GET("/pedidos/:id", pedidosH.Obtener)
		v1.PUT("/pedidos/:id", pedidosH.Actualizar)
		v1.POST("/pedidos/:id/estado", pedidosH.CambiarEstado)
		v1.POST("/pedidos/:id/pago", pedidosH.CambiarEstadoPago)
		v1.POST("/pedidos/:id/imagenes", pedidosH.AgregarImagen)

		// Catálogo — administración
		v1.POST("/productos", productosH.Crear)
		v1.GET("/productos/:id", productosH.Obtener)
		v1.PUT("/productos/:id", productosH.Actualizar)
		v1.DELETE("/productos/:id", productosH.Eliminar)
		v1.POST("/categorias", categoriasH.Crear)
		v1.PUT("/categorias/:id", categoriasH.Actualizar)
		v1.DELETE("/categorias/:id", categoriasH.Eliminar)

		// Insumos
		v1.POST("/insumos", insumosH.Crear)
		v1.GET("/insumos", insumosH.Listar)
		v1.GET("/insumos/:id", insumosH.Obtener)
		v1.PUT("/insumos/:id", insumosH.Actualizar)
		v1.DELETE("/insumos/:id", insumosH.Eliminar)
		v1.POST("/insumos/:id/stock", insumosH.AjustarStock)

		// Estadísticas
		v1.GET("/estadisticas", estadisticasH.Resumen)
		v1.GET("/estadisticas/dashboard", estadisticasH.Dashboard)
		v1.GET("/estadisticas/grafico", estadisticasH.Grafico)
		v1.GET("/estadisticas/inventario", estadisticasH.Inventario)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
