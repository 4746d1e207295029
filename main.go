package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/checkout"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/fraud"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/orders"
	"storefront/internal/storage"
)

func main() {
	config.Load()

	kv, err := buildStorage()
	if err != nil {
		log.Fatal(err)
	}

	manager := cart.NewManager(kv)
	fraudClient := fraud.NewClient(config.AppEnv.FraudAPIURL, config.AppEnv.FraudAPIKey, config.AppEnv.FraudTimeout)
	orderClient := orders.NewClient(config.AppEnv.OrderServiceURL)
	flow := checkout.NewFlow(manager, fraudClient, orderClient)
	catalogClient := catalog.NewClient(config.AppEnv.CatalogAPIURL, kv, config.AppEnv.CatalogCacheTTL)

	r := gin.Default()
	r.Use(middleware.Session(config.AppEnv.SessionSecret))

	r.GET("/health", handlers.Health())
	r.GET("/products", handlers.GetProducts(catalogClient))

	r.GET("/cart", handlers.GetCart(manager))
	r.POST("/cart/items", handlers.AddCartItem(manager))
	r.PATCH("/cart/items/:cartId", handlers.UpdateCartItem(manager))
	r.DELETE("/cart/items/:cartId", handlers.RemoveCartItem(manager))
	r.DELETE("/cart", handlers.ClearCart(manager))
	r.POST("/cart/buy-now", handlers.BuyNow(manager))
	r.POST("/cart/checkout", handlers.StageCheckout(manager))

	r.POST("/checkout", handlers.PlaceOrder(flow))

	r.GET("/theme", handlers.GetTheme(kv))
	r.PUT("/theme", handlers.SaveTheme(kv))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}

func buildStorage() (storage.Store, error) {
	switch config.AppEnv.StorageBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: config.AppEnv.RedisAddr})
		log.Println("using redis storage at", config.AppEnv.RedisAddr)
		return storage.NewRedisStore(client, config.AppEnv.CartTTL), nil
	case "mongo":
		client, err := database.Connect(config.AppEnv.MongoURI)
		if err != nil {
			return nil, err
		}
		db := client.Database(config.AppEnv.DBName)
		log.Println("MongoDB connected to:", db.Name())
		if err := database.EnsureStorageIndexes(db, config.AppEnv.CartTTL); err != nil {
			log.Println("⚠️ storage index warning:", err)
		}
		return storage.NewMongoStore(db), nil
	default:
		log.Println("using in-memory storage")
		return storage.NewMemoryStore(), nil
	}
}
