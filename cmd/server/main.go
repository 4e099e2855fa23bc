package main

import (
	"html/template"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"clout_store_echo/internal/handlers"
	storeMiddleware "clout_store_echo/internal/middleware"
	"clout_store_echo/internal/services"
)

// TemplateRenderer is a custom html/template renderer for Echo.
// The only server-rendered page is the gateway auto-submit form; the
// storefront itself is a separate frontend.
type TemplateRenderer struct {
	templates map[string]*template.Template
}

// NewTemplateRenderer parses all standalone templates under web/templates
func NewTemplateRenderer() *TemplateRenderer {
	templates := make(map[string]*template.Template)

	pages, err := filepath.Glob("web/templates/*.html")
	if err != nil {
		log.Fatal(err)
	}
	for _, page := range pages {
		templates[filepath.Base(page)] = template.Must(template.ParseFiles(page))
	}

	return &TemplateRenderer{templates: templates}
}

// Render renders a template document
func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := t.templates[name]
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "Template not found: "+name)
	}
	return tmpl.Execute(w, data)
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Initialize Database
	var db *gorm.DB
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL != "" {
		var err error
		db, err = services.InitDB(databaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}

		// Run auto-migration
		if err := services.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run database migrations: %v", err)
		}
	} else {
		log.Println("Warning: DATABASE_URL not set, database features disabled")
	}

	// Initialize Redis cache (optional)
	var cache *services.RedisCache
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		var err error
		cache, err = services.NewRedisCache(redisURL)
		if err != nil {
			log.Printf("Warning: Redis initialization failed: %v", err)
			cache = nil
		}
	} else {
		log.Println("Warning: REDIS_URL not set, caching disabled")
	}

	// Initialize PayU gateway service
	payuSvc, err := services.NewPayUServiceFromEnv()
	if err != nil {
		log.Printf("Warning: %v", err)
		log.Println("Payment features will not work until PAYU_KEY and PAYU_SALT are provided")
	}

	orderStore := services.NewOrderStore(db)
	paymentSvc := services.NewPaymentService(orderStore, payuSvc, db)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.HTTPErrorHandler = storeMiddleware.JSONErrorHandler

	// Template renderer for the gateway redirect form
	e.Renderer = NewTemplateRenderer()

	// Initialize handlers
	payuHandler := handlers.NewPayUHandler(payuSvc, paymentSvc)
	checkoutHandler := handlers.NewCheckoutHandler(paymentSvc)
	orderHandler := handlers.NewOrderHandler(orderStore)
	productHandler := handlers.NewProductHandler(db, cache)
	supportHandler := handlers.NewSupportHandler(db)
	configHandler := handlers.NewSiteConfigHandler(db, cache)
	userHandler := handlers.NewUserHandler(db)
	adminHandler := handlers.NewAdminHandler()

	// Payment gateway exchange
	e.POST("/api/payu/hash", payuHandler.GenerateHash)
	e.POST("/api/payu/success", payuHandler.SuccessCallback)
	e.POST("/api/payu/failure", payuHandler.FailureCallback)
	e.GET("/checkout/pay/:txnid", checkoutHandler.PayOrder)

	// Storefront API
	e.GET("/api/products", productHandler.ListProducts)
	e.GET("/api/config", configHandler.GetConfig)
	e.POST("/api/orders", orderHandler.CreateOrder)
	e.POST("/api/support", supportHandler.CreateRequest)
	e.GET("/api/users", userHandler.GetUsers)
	e.POST("/api/users", userHandler.UpdateUser)

	// Admin auth
	e.POST("/api/admin/login", adminHandler.Login)
	e.POST("/api/admin/logout", adminHandler.Logout)

	// Back-office routes
	admin := e.Group("/api", storeMiddleware.RequireAdmin())
	admin.GET("/orders", orderHandler.ListOrders)
	admin.PUT("/orders", orderHandler.UpdateOrder)
	admin.DELETE("/orders", orderHandler.DeleteOrder)
	admin.POST("/products", productHandler.CreateProduct)
	admin.PUT("/products", productHandler.UpdateProduct)
	admin.DELETE("/products", productHandler.DeleteProduct)
	admin.GET("/support", supportHandler.ListRequests)
	admin.DELETE("/support", supportHandler.DeleteRequest)
	admin.POST("/config", configHandler.UpdateConfig)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	e.Logger.Fatal(e.Start(":" + port))
}
