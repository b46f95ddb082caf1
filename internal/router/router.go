package router

import (
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/DvineConqueror/GroceryStorePOS/internal/config"
	"github.com/DvineConqueror/GroceryStorePOS/internal/handler"
	"github.com/DvineConqueror/GroceryStorePOS/internal/infra"
	"github.com/DvineConqueror/GroceryStorePOS/internal/middleware"
	"github.com/DvineConqueror/GroceryStorePOS/internal/model"
	"github.com/DvineConqueror/GroceryStorePOS/internal/pos"
	"github.com/DvineConqueror/GroceryStorePOS/internal/repository"
	"github.com/DvineConqueror/GroceryStorePOS/internal/service"
	"github.com/DvineConqueror/GroceryStorePOS/internal/session"
	"github.com/DvineConqueror/GroceryStorePOS/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(
	cfg *config.Config,
	db *gorm.DB,
	rdb *redis.Client,
	store *pos.Store,
	media *infra.MediaStore,
	dispatcher *worker.Dispatcher,
) *gin.Engine {
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
	r.Use(middleware.RateLimiter(cfg.APIRateLimit, time.Minute))

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	productRepo := repository.NewProductRepository(db)
	txRepo := repository.NewTransactionRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	notifier := session.NewNotifier(rdb)
	cashLimit, err := decimal.NewFromString(cfg.CashLimit)
	if err != nil {
		cashLimit = decimal.NewFromInt(10000)
	}

	authSvc := service.NewAuthService(userRepo, profileRepo, notifier, dispatcher, cfg)
	catalogSvc := service.NewCatalogService(productRepo, store, media)
	checkoutSvc := service.NewCheckoutService(store, txRepo, productRepo, profileRepo, dispatcher, cashLimit)
	txSvc := service.NewTransactionService(txRepo, profileRepo, store, cfg.StoreName, cfg.ReceiptStoragePath)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc, notifier)
	productsH := handler.NewProductsHandler(catalogSvc)
	cartH := handler.NewCartHandler(store, productRepo, checkoutSvc)
	txH := handler.NewTransactionsHandler(txSvc)
	analyticsH := handler.NewAnalyticsHandler(store)
	adminH := handler.NewAdminHandler(authSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, media))
	r.Static("/media", media.BasePath())

	// One limiter instance for both auth routes: sign-up and sign-in draw
	// from the same per-IP budget.
	loginLimiter := middleware.LoginRateLimiter(cfg.LoginRateLimit)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/signup", loginLimiter, authH.SignUp)
		auth.POST("/signin", loginLimiter, authH.SignIn)
	}

	// Protected routes — the session store gates everything else
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	authed := r.Group("/v1", jwtMW)
	{
		authed.POST("/auth/signout", authH.SignOut)
		authed.POST("/auth/refresh", authH.RefreshSession)
		authed.GET("/auth/events", authH.Events)

		anyRole := middleware.RequireRole(model.RoleCashier, model.RoleAdmin)

		authed.GET("/products", anyRole, productsH.List)
		prods := authed.Group("/products", middleware.RequireRole(model.RoleAdmin))
		{
			prods.POST("", productsH.Create)
			prods.PUT("/:id", productsH.Update)
			prods.DELETE("/:id", productsH.Delete)
		}

		cart := authed.Group("/cart", anyRole)
		{
			cart.GET("", cartH.Get)
			cart.POST("/items", cartH.AddItem)
			cart.PATCH("/items/:id", cartH.UpdateQuantity)
			cart.DELETE("/items/:id", cartH.RemoveItem)
			cart.DELETE("", cartH.Clear)
			cart.POST("/checkout", cartH.ToggleCheckout)
		}
		authed.POST("/checkout", anyRole, cartH.Complete)

		authed.GET("/transactions", anyRole, txH.List)
		authed.GET("/transactions/:id/receipt", anyRole, txH.Receipt)

		analyticsGrp := authed.Group("/analytics", anyRole)
		{
			analyticsGrp.GET("/summary", analyticsH.Summary)
			analyticsGrp.GET("/categories", analyticsH.ByCategory)
			analyticsGrp.GET("/daily", analyticsH.ByDate)
			analyticsGrp.GET("/cashiers", analyticsH.ByCashier)
		}

		admin := authed.Group("/admin", middleware.RequireRole(model.RoleAdmin))
		{
			admin.GET("/pending", adminH.ListPending)
			admin.POST("/approve/:id", adminH.Approve)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
