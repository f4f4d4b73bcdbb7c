package main

import (
	"log"

	"github.com/adithyapradeep05/kibi-cruz-sub000/config"
	"github.com/adithyapradeep05/kibi-cruz-sub000/helpers"
	"github.com/adithyapradeep05/kibi-cruz-sub000/routes"
	"github.com/adithyapradeep05/kibi-cruz-sub000/services"
	"github.com/adithyapradeep05/kibi-cruz-sub000/store"

	"github.com/gin-gonic/gin"
)

func main() {

	log.Println("Starting kibi...")

	cfg := config.Load()

	// Local storage is the durability backstop and must exist; the remote
	// store is optional and the app degrades to local-only without it.
	if err := store.Init(cfg.DataDir); err != nil {
		log.Fatalf("Failed to initialize local storage: %v", err)
	}
	if err := config.ConnectDB(cfg.MongoURI); err != nil {
		log.Printf("MongoDB unavailable, continuing in local-only mode: %v", err)
	}

	helpers.SetJWTKey(cfg.JWTSecret)

	insight := services.NewAnthropicClient(cfg.AnthropicKey)

	//Init gin router
	r := gin.Default()
	api := r.Group("/api")
	routes.SetupRoutes(api, insight)

	log.Printf("Listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
