package main

import (
	"context"
	"log"

	"ast-fleet-console-api-server/config"
	"ast-fleet-console-api-server/internal/api/routes"
	"ast-fleet-console-api-server/internal/database"
	"ast-fleet-console-api-server/internal/socket"
	"ast-fleet-console-api-server/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load .env (optional) and configuration
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}
	if cfg.JWT.Secret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	ctx := context.Background()

	// 2. Connect to DynamoDB and make sure every table exists
	st, err := store.NewDynamo(ctx, cfg.AWS)
	if err != nil {
		log.Fatalf("Failed to initialize DynamoDB client: %v", err)
	}
	tables := map[string]string{
		cfg.Tables.Users:    "username",
		cfg.Tables.Trucks:   "truck_id",
		cfg.Tables.Alerts:   "alert_id",
		cfg.Tables.Routes:   "route_id",
		cfg.Tables.Sessions: "token_id",
	}
	if err := st.EnsureTables(ctx, tables); err != nil {
		log.Fatalf("Failed to ensure DynamoDB tables: %v", err)
	}
	// Revocation records expire with the tokens they revoke.
	if err := st.EnableTTL(ctx, cfg.Tables.Sessions, "expires_at"); err != nil {
		log.Fatalf("Failed to enable session expiry: %v", err)
	}

	// 3. Seed the admin account on first boot
	if err := database.SeedAdmin(ctx, st, cfg); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	// 4. Websocket hub for the live alert feed
	wsHub := socket.NewHub()

	// 5. Build the router and start serving
	router := routes.SetupRouter(cfg, st, wsHub)

	log.Printf("Starting API server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
