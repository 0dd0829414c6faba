package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/locvowork/orderdash/internal/config"
	"github.com/locvowork/orderdash/internal/consolidate"
	"github.com/locvowork/orderdash/internal/handler"
	"github.com/locvowork/orderdash/internal/logger"
	"github.com/locvowork/orderdash/internal/service"
	"github.com/locvowork/orderdash/internal/workbook"
	"github.com/locvowork/orderdash/pkg/simpleexcel"
)

type App struct {
	Echo    *echo.Echo
	Service *service.DashboardService
}

func NewApp() *App {
	e := echo.New()
	e.HideBanner = true
	return &App{Echo: e}
}

// NewDashboardService wires the consolidation pipeline and the dashboard service from DefaultEnvConfig.
func NewDashboardService(ctx context.Context) (*service.DashboardService, error) {
	cfg := config.DefaultEnvConfig

	rules := consolidate.DefaultRules()
	if cfg.RULES_FILE != "" {
		loaded, err := consolidate.LoadRules(cfg.RULES_FILE)
		if err != nil {
			return nil, fmt.Errorf("failed to load rules: %w", err)
		}
		rules = loaded
		logger.InfoLog(ctx, "Loaded %d column rules from %s", len(rules), cfg.RULES_FILE)
	}

	policy, err := consolidate.ParseCollisionPolicy(cfg.COLLISION_POLICY)
	if err != nil {
		return nil, err
	}

	opts := []service.DashboardOption{service.WithCSVDelimiter(cfg.Delimiter())}
	if cfg.REPORT_TEMPLATE != "" {
		tmpl, err := simpleexcel.LoadTemplate(cfg.REPORT_TEMPLATE)
		if err != nil {
			return nil, fmt.Errorf("failed to load report template: %w", err)
		}
		opts = append(opts, service.WithReportTemplate(tmpl))
	}

	pipeline := consolidate.NewPipeline(rules, policy, cfg.DATE_COLUMN)
	cache := service.NewDatasetCache(workbook.NewReader(), pipeline)
	return service.NewDashboardService(cache, cfg.INPUT_PATH, opts...)
}

func (a *App) Initialize(ctx context.Context) error {
	svc, err := NewDashboardService(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize dashboard service: %w", err)
	}
	a.Service = svc

	// Warm the cache; a bad input is reported but the server still starts so /api/reload can recover.
	if _, err := svc.Dataset(ctx); err != nil {
		logger.WarnLog(ctx, "Initial load of %s failed: %v", config.DefaultEnvConfig.INPUT_PATH, err)
	}

	a.RegisterMiddlewares()
	a.RegisterRoutes(handler.NewDashboardHandler(svc, config.DefaultEnvConfig.DETAIL_LIMIT))
	return nil
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.RequestID())
	if config.DefaultEnvConfig.LOG_REQUESTS {
		a.Echo.Use(requestLogger)
	}
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORS())
}

func (a *App) RegisterRoutes(h *handler.DashboardHandler) {
	api := a.Echo.Group("/api")
	api.GET("/dataset", h.DatasetHandler)
	api.GET("/options", h.OptionsHandler)
	api.GET("/summary", h.SummaryHandler)
	api.GET("/orders", h.OrdersHandler)
	api.GET("/aggregates/:dimension", h.AggregateHandler)
	api.POST("/reload", h.ReloadHandler)

	exportGroup := api.Group("/export")
	exportGroup.GET("/csv", h.ExportCSVHandler)
	exportGroup.GET("/xlsx", h.ExportXLSXHandler)
}

func (a *App) Run() error {
	return a.Echo.Start(":" + config.DefaultEnvConfig.APP_PORT)
}

func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

// requestLogger scopes a logger to the request and logs one line per request.
func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		ctx := logger.WithLogger(req.Context(), map[string]interface{}{
			"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
		})
		c.SetRequest(req.WithContext(ctx))

		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}
		logger.InfoLog(ctx, "%s %s -> %d (%s)", req.Method, req.URL.RequestURI(), c.Response().Status, time.Since(start))
		return nil
	}
}
