package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sulayman101/puntrms/internal/config"
	"github.com/sulayman101/puntrms/internal/domain/entity"
	domainRepo "github.com/sulayman101/puntrms/internal/domain/repository"
	"github.com/sulayman101/puntrms/internal/presentation/http/handler"
	"github.com/sulayman101/puntrms/internal/presentation/http/middleware"
	"github.com/sulayman101/puntrms/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth    *handler.AuthHandler
	Order   *handler.OrderHandler
	Item    *handler.ItemHandler
	Loan    *handler.LoanHandler
	Report  *handler.ReportHandler
	Staff   *handler.StaffHandler
	Printer *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Logger          *zap.SugaredLogger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewStaffRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotency := middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo})

	orders := protected.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.POST("", idempotency, h.Order.Create)
		orders.GET("/number/:number", h.Order.GetByNumber)
		orders.GET("/:id", h.Order.Get)
		// Settlement is retry safe on its own, the idempotency layer just
		// spares the client a conflict response on a replay.
		orders.POST("/:id/settle", idempotency, h.Order.Settle)
		orders.POST("/:id/receipt", h.Printer.PrintReceipt)
	}

	items := protected.Group("/items")
	{
		items.GET("", h.Item.List)
		items.GET("/:id", h.Item.Get)
		items.POST("", middleware.RequireRole(entity.RoleAdmin), h.Item.Create)
		items.PUT("/:id", middleware.RequireRole(entity.RoleAdmin), h.Item.Update)
		items.DELETE("/:id", middleware.RequireRole(entity.RoleAdmin), h.Item.Delete)
	}

	loans := protected.Group("/loans")
	{
		loans.GET("/customers", h.Loan.ListCustomers)
		loans.POST("/customers", h.Loan.CreateCustomer)
		loans.GET("/customers/:id", h.Loan.GetCustomer)
	}

	reports := protected.Group("/reports")
	{
		reports.GET("", h.Report.Get)
		reports.GET("/export/csv", h.Report.ExportCSV)
		reports.GET("/export/xlsx", h.Report.ExportXLSX)
		reports.GET("/printable", h.Report.Printable)
		reports.GET("/summary", h.Report.Summary)
	}

	staff := protected.Group("/staff")
	staff.Use(middleware.RequireRole(entity.RoleAdmin))
	{
		staff.GET("", h.Staff.List)
		staff.POST("", h.Staff.Create)
		staff.GET("/:id", h.Staff.Get)
		staff.PUT("/:id/pin", h.Staff.ResetPIN)
	}

	printer := protected.Group("/printer")
	{
		printer.GET("/status", h.Printer.Status)
		printer.POST("/test", middleware.RequireRole(entity.RoleAdmin), h.Printer.PrintTest)
	}
}
