package router

import (
	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub003/internal/analytics"
	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub003/internal/config"
	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub003/internal/handler"
	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub003/internal/middleware"
	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub003/internal/search"
	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub003/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and all API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// ====== API ======
	api := r.Group("/api")

	// 所有接口都要求已登录（令牌由外部认证服务签发）
	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(cfg.JWT.Secret, db),
		middleware.AuditMiddleware(db),
	)

	protected.GET("/me", handler.GetMe)

	corpus := store.NewTransactionCorpus(db)
	logs := store.NewSearchLogStore(db)
	executor := search.NewExecutor(corpus)

	searchHandler := handler.NewSearchHandler(
		executor,
		search.NewSuggester(corpus),
		logs,
		cfg.Search.DefaultPageSize,
		cfg.Search.Timeout(),
	)
	protected.GET("/search", searchHandler.Search)
	protected.GET("/search/suggest", searchHandler.Suggest)

	exportHandler := handler.NewExportHandler(executor, cfg.Search.Timeout())
	protected.GET("/search/export/csv", exportHandler.ExportCSV)
	protected.GET("/search/export/xlsx", exportHandler.ExportXLSX)

	savedQueryHandler := handler.NewSavedQueryHandler(store.NewSavedQueryStore(db))
	protected.POST("/queries", savedQueryHandler.Create)
	protected.GET("/queries", savedQueryHandler.List)
	protected.DELETE("/queries/:id", savedQueryHandler.Delete)

	analyticsHandler := handler.NewAnalyticsHandler(analytics.NewAggregator(logs))
	protected.GET("/search/analytics", analyticsHandler.Report)
	protected.GET("/search/popular", analyticsHandler.Popular)

	return r
}
