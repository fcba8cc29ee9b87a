package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"homegrid-backend/internal/config"
	"homegrid-backend/internal/handlers"
	"homegrid-backend/internal/middleware"
	"homegrid-backend/internal/remote"
	"homegrid-backend/internal/service"
	"homegrid-backend/internal/store"
	"homegrid-backend/pkg/cache"
	"homegrid-backend/pkg/logger"
)

type Application struct {
	cfg *config.Config

	warm        *cache.Cache
	configStore *store.Store
	guard       *service.MoveGuard

	services serviceContainer
	handlers handlerContainer

	router *gin.Engine
	server *http.Server
}

type serviceContainer struct {
	Navigation *service.NavigationService
	Relocation *service.RelocationService
	Prefetch   *service.PrefetchService
	Page       *service.PageService
}

type handlerContainer struct {
	Config     *handlers.ConfigHandler
	Layout     *handlers.LayoutHandler
	Navigation *handlers.NavigationHandler
	Item       *handlers.ItemHandler
	Page       *handlers.PageHandler
	Prefetch   *handlers.PrefetchHandler
}

func New(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	app := &Application{cfg: cfg}

	if err := app.initCache(); err != nil {
		return nil, err
	}

	app.initStore()
	app.initServices()
	app.initHandlers()
	app.initRouter()

	app.server = &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        app.router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return app, nil
}

func (a *Application) Run() error {
	logger.Info("Server starting", map[string]interface{}{
		"port":           a.cfg.Port,
		"environment":    a.cfg.Environment,
		"document_store": a.cfg.DocumentStoreURL,
	})

	return a.server.ListenAndServe()
}

func (a *Application) Shutdown(ctx context.Context) error {
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return err
		}
	}

	if a.warm != nil {
		if err := a.warm.Close(); err != nil {
			logger.Error(err, "Failed to close cache connection", nil)
		}
	}

	return nil
}

func (a *Application) Router() *gin.Engine {
	return a.router
}

func (a *Application) initCache() error {
	warm, err := cache.NewCache(a.cfg.RedisURL, a.cfg.EnableRedis)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	a.warm = warm
	return nil
}

func (a *Application) initStore() {
	documents := remote.NewDocumentClient(a.cfg.DocumentStoreURL, a.cfg.RemoteTimeout)
	a.configStore = store.New(documents, a.warm)
}

func (a *Application) initServices() {
	assets := remote.NewAssetClient(a.cfg.AssetResolverURL, a.cfg.RemoteTimeout)

	a.guard = service.NewMoveGuard()
	a.services = serviceContainer{
		Navigation: service.NewNavigationService(a.configStore, a.guard),
		Relocation: service.NewRelocationService(a.configStore, a.guard),
		Prefetch:   service.NewPrefetchService(assets),
		Page:       service.NewPageService(a.configStore),
	}
}

func (a *Application) initHandlers() {
	a.handlers = handlerContainer{
		Config:     handlers.NewConfigHandler(a.configStore),
		Layout:     handlers.NewLayoutHandler(a.configStore, a.services.Prefetch),
		Navigation: handlers.NewNavigationHandler(a.services.Navigation),
		Item:       handlers.NewItemHandler(a.services.Relocation),
		Page:       handlers.NewPageHandler(a.services.Page),
		Prefetch:   handlers.NewPrefetchHandler(a.configStore, a.services.Prefetch),
	}
}

func (a *Application) initRouter() {
	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinLogger())
	router.Use(middleware.RequestIDMiddleware())
	if a.cfg.EnableMetrics {
		router.Use(middleware.MetricsMiddleware())
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	if a.cfg.EnableMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/config", a.handlers.Config.Get)
		v1.POST("/config", a.handlers.Config.Save)
		v1.POST("/config/import", a.handlers.Config.Import)

		v1.GET("/layout", a.handlers.Layout.Resolve)

		v1.GET("/navigation/resolve", a.handlers.Navigation.Resolve)
		v1.POST("/navigation/switch", a.handlers.Navigation.Switch)

		v1.POST("/items/move", a.handlers.Item.Move)

		v1.GET("/pages", a.handlers.Page.List)
		v1.POST("/pages", a.handlers.Page.Create)
		v1.PUT("/pages/:id", a.handlers.Page.Rename)
		v1.DELETE("/pages/:id", a.handlers.Page.Delete)

		v1.POST("/prefetch", a.handlers.Prefetch.Prefetch)

		v1.DELETE("/cache", handlers.ClearCache(a.services.Prefetch, a.warm))
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Route not found",
			"path":  c.Request.URL.Path,
		})
	})

	a.router = router
}
