package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"

	"github.com/YYInGitHub/C237-2024-SupermarketApp/internal/config"
	"github.com/YYInGitHub/C237-2024-SupermarketApp/internal/database"
	"github.com/YYInGitHub/C237-2024-SupermarketApp/internal/handler"
	"github.com/YYInGitHub/C237-2024-SupermarketApp/internal/repository"
)

// Sessions expire after one week of inactivity.
const sessionMaxAge = 60 * 60 * 24 * 7

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from the environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to the database: %v", err)
	}

	if cfg.SeedAdmin {
		if err := database.SeedAdmin(db, cfg); err != nil {
			log.Fatalf("Failed to seed the admin user: %v", err)
		}
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
	}

	users := repository.NewUserRepository(db)
	products := repository.NewProductRepository(db)

	authHandler := &handler.AuthHandler{Store: store, Users: users}
	productHandler := &handler.ProductHandler{Store: store, Products: products, UploadDir: cfg.UploadDir}
	homeHandler := &handler.HomeHandler{Store: store, Users: users}

	router := gin.Default()
	router.LoadHTMLGlob("internal/view/templates/*")
	router.Static("/public", "./public")

	router.GET("/", homeHandler.ShowHomePage)

	router.GET("/register", authHandler.ShowRegisterPage)
	router.POST("/register", authHandler.ProcessRegisterForm)
	router.GET("/login", authHandler.ShowLoginPage)
	router.POST("/login", authHandler.ProcessLoginForm)
	router.GET("/logout", authHandler.Logout)

	router.GET("/inventory", authHandler.AuthRequired(), authHandler.AdminRequired(), productHandler.ShowInventoryPage)
	router.GET("/shopping", authHandler.AuthRequired(), productHandler.ShowShoppingPage)

	router.GET("/product", authHandler.AuthRequired(), authHandler.AdminRequired(), productHandler.ShowAddProductPage)
	router.GET("/product/:id", authHandler.AuthRequired(), productHandler.ShowProductPage)
	// These mutation routes carried no gate in the original course app.
	router.POST("/product", productHandler.ProcessAddProductForm)
	router.GET("/product/:id/update", productHandler.ShowUpdateProductPage)
	router.POST("/product/:id/update", productHandler.ProcessUpdateProductForm)
	router.GET("/product/:id/delete", productHandler.DeleteProduct)

	log.Printf("Server running on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
