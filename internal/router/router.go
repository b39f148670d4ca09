package router

import (
	"time"

	"github.com/adornodavid/aybcosteo-sub000/internal/config"
	"github.com/adornodavid/aybcosteo-sub000/internal/handler"
	"github.com/adornodavid/aybcosteo-sub000/internal/middleware"
	"github.com/adornodavid/aybcosteo-sub000/internal/repository"
	"github.com/adornodavid/aybcosteo-sub000/internal/service"

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
	catalogoRepo := repository.NewCatalogoRepository(db)
	ingredienteRepo := repository.NewIngredienteRepository(db)
	recetaRepo := repository.NewRecetaRepository(db)
	platilloRepo := repository.NewPlatilloRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	configuracionRepo := repository.NewConfiguracionRepository(db)
	historicoRepo := repository.NewHistoricoRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	catalogoSvc := service.NewCatalogoService(catalogoRepo)
	recalculoSvc := service.NewRecalculoService(recetaRepo, platilloRepo, menuRepo)
	historicoSvc := service.NewHistoricoService(historicoRepo, platilloRepo, menuRepo)
	propagacionSvc := service.NewPropagacionService(
		configuracionRepo, recetaRepo, platilloRepo, menuRepo,
		recalculoSvc, historicoSvc, rdb,
	)
	ingredienteSvc := service.NewIngredienteService(ingredienteRepo, catalogoRepo, propagacionSvc)
	recetaSvc := service.NewRecetaService(recetaRepo, ingredienteRepo, platilloRepo, catalogoRepo, propagacionSvc)
	platilloSvc := service.NewPlatilloService(platilloRepo, ingredienteRepo, recetaRepo, propagacionSvc)
	menuSvc := service.NewMenuService(
		menuRepo, platilloRepo, catalogoRepo, propagacionSvc,
		rdb, time.Duration(cfg.PrecioCacheTTL)*time.Second,
	)
	configuracionSvc := service.NewConfiguracionService(configuracionRepo, propagacionSvc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	catalogoH := handler.NewCatalogoHandler(catalogoSvc)
	ingredientesH := handler.NewIngredientesHandler(ingredienteSvc)
	recetasH := handler.NewRecetasHandler(recetaSvc)
	platillosH := handler.NewPlatillosHandler(platilloSvc)
	menusH := handler.NewMenusHandler(menuSvc)
	configuracionH := handler.NewConfiguracionHandler(configuracionSvc)
	historicoH := handler.NewHistoricoHandler(historicoSvc)
	consultaH := handler.NewConsultaPreciosHandler(menuSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check — no auth required, served from cache when warm
	r.GET("/v1/precio/:platilloId", consultaH.GetPrecioPorPlatillo)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: analista, chef, administrador — declared per-endpoint
		lectura := middleware.RequireRole("analista", "chef", "administrador")
		edicion := middleware.RequireRole("chef", "administrador")
		admin := middleware.RequireRole("administrador")

		// Catálogos base — any authenticated role reads, administrador writes
		v1.GET("/hoteles", lectura, catalogoH.ListarHoteles)
		v1.POST("/hoteles", admin, catalogoH.CrearHotel)
		v1.GET("/restaurantes", lectura, catalogoH.ListarRestaurantes)
		v1.POST("/restaurantes", admin, catalogoH.CrearRestaurante)
		v1.GET("/unidades", lectura, catalogoH.ListarUnidades)
		v1.POST("/unidades", admin, catalogoH.CrearUnidad)

		v1.GET("/ingredientes", lectura, ingredientesH.Listar)
		v1.GET("/ingredientes/buscar", lectura, ingredientesH.Buscar)
		v1.GET("/ingredientes/:id", lectura, ingredientesH.ObtenerPorID)
		ing := v1.Group("/ingredientes", edicion)
		{
			ing.POST("", ingredientesH.Crear)
			ing.PUT("/:id", ingredientesH.Actualizar)
			ing.DELETE("/:id", ingredientesH.Desactivar)
		}

		v1.GET("/recetas", lectura, recetasH.Listar)
		v1.GET("/recetas/:id", lectura, recetasH.ObtenerPorID)
		rec := v1.Group("/recetas", edicion)
		{
			rec.POST("", recetasH.Crear)
			rec.PUT("/:id", recetasH.Actualizar)
			rec.DELETE("/:id", recetasH.Desactivar)
			rec.POST("/:id/lineas", recetasH.AgregarLinea)
			rec.PUT("/:id/lineas/:lineaId", recetasH.ActualizarLinea)
			rec.DELETE("/:id/lineas/:lineaId", recetasH.EliminarLinea)
		}

		v1.GET("/platillos", lectura, platillosH.Listar)
		v1.GET("/platillos/:id", lectura, platillosH.ObtenerPorID)
		pla := v1.Group("/platillos", edicion)
		{
			pla.POST("", platillosH.Crear)
			pla.PUT("/:id", platillosH.Actualizar)
			pla.DELETE("/:id", platillosH.Desactivar)
			pla.POST("/:id/lineas", platillosH.AgregarLinea)
			pla.PUT("/:id/lineas/:lineaId", platillosH.ActualizarLinea)
			pla.DELETE("/:id/lineas/:lineaId", platillosH.EliminarLinea)
		}

		v1.GET("/menus", lectura, menusH.Listar)
		v1.GET("/menus/:id", lectura, menusH.ObtenerPorID)
		men := v1.Group("/menus", edicion)
		{
			men.POST("", menusH.Crear)
			men.DELETE("/:id", menusH.Desactivar)
			men.POST("/:id/platillos", menusH.ListarPlatillo)
			men.PUT("/listados/:listadoId/precio", menusH.ActualizarPrecioVenta)
			men.DELETE("/listados/:listadoId", menusH.QuitarListado)
		}

		// Histórico — read-only trend queries plus XLSX export
		v1.GET("/historico", lectura, historicoH.Serie)
		v1.GET("/historico/export", lectura, historicoH.Export)

		// Global engine parameters — administrador only; a PUT triggers a
		// full recalculation of every active platillo
		v1.GET("/configuracion", lectura, configuracionH.Listar)
		v1.PUT("/configuracion/:clave", admin, configuracionH.Actualizar)

		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
		}
	}

	return r
}
