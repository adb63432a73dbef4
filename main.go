package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/murali55525/erode-local-sub000/auth"
	"github.com/murali55525/erode-local-sub000/cache"
	orderControllers "github.com/murali55525/erode-local-sub000/controllers/order"
	"github.com/murali55525/erode-local-sub000/models"
	"github.com/murali55525/erode-local-sub000/payment"
	"github.com/murali55525/erode-local-sub000/routes"
	"github.com/murali55525/erode-local-sub000/services"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.GuestUser{},
		&models.Product{},
		&models.Category{},
		&models.Admin{},
		&models.Cart{},
		&models.CartItem{},
		&models.GuestCart{},
		&models.GuestCartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Coupon{},
		&models.WishlistItem{},
		&models.Review{},
		&models.Banner{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	seedCoupons(db)

	// Firebase is only needed for Google sign-in; password and guest auth
	// keep working without it.
	if err := auth.InitFirebase(context.Background()); err != nil {
		log.Printf("⚠️ Firebase disabled: %v", err)
	}

	// Product cache: Redis when configured, otherwise a no-op.
	productCache := cache.NewNoop()
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		productCache = cache.NewRedisProductCache(rdb, 10*time.Minute)
		log.Printf("✅ Redis product cache enabled (%s)", addr)
	}

	// Payment gateway: card checkout is rejected when unconfigured.
	var gateway services.PaymentGateway
	client, err := payment.NewClientFromEnv()
	if err != nil {
		log.Printf("⚠️ Card payments disabled: %v", err)
		gateway = payment.Disabled()
	} else {
		gateway = client
	}

	// Wire services
	catalog := services.NewProductCatalog(db)
	userRepo := services.NewUserCartRepository(db)
	guestRepo := services.NewGuestCartRepository(db)

	deps := routes.Deps{
		DB:         db,
		UserCarts:  services.NewCartService(userRepo, catalog),
		GuestCarts: services.NewCartService(guestRepo, catalog),
		GuestRepo:  guestRepo,
		Checkout: services.NewCheckoutService(
			services.NewCheckoutStore(db),
			gateway,
			os.Getenv("CURRENCY"),
			orderControllers.BroadcastNewOrder,
		),
		Products: productCache,
	}

	// Gin setup
	r := gin.Default()

	// Allow large file uploads (1 GB)
	r.MaxMultipartMemory = 1 << 30 // 1GB

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Serve uploaded images
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	r.Static("/uploads", uploadDir)

	// Setup routes
	routes.SetupRoutes(r, deps)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}

// seedCoupons inserts the default storefront coupon codes if missing.
func seedCoupons(db *gorm.DB) {
	defaults := []models.Coupon{
		{Code: "DISCOUNT10", Percent: 10, Active: true},
		{Code: "DISCOUNT20", Percent: 20, Active: true},
	}
	for _, coupon := range defaults {
		var existing models.Coupon
		err := db.Where("code = ?", coupon.Code).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&coupon).Error; err != nil {
				log.Printf("❌ Failed to seed coupon %s: %v", coupon.Code, err)
			}
		}
	}
}
