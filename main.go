package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"auction-house/internal/accountService"
	"auction-house/internal/auctionService"
	"auction-house/internal/registry"
	"auction-house/internal/server"
	"auction-house/utils"
)

func main() {
	// Optional .env for local runs; real deployments set the environment.
	_ = godotenv.Load()

	reg := registry.NewRegistry()

	accounts := accountService.NewAccountService(reg)
	auctions := auctionService.NewAuctionService(reg)
	tokens := server.NewTokenIssuer(jwtSecret())

	router := server.SetupRouter(accounts, auctions, tokens)

	port := getPort()
	utils.Info("starting auction server", map[string]any{"addr": port})
	if err := router.Run(port); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// getPort returns the server port from env or defaults to ":8080"
func getPort() string {
	if p := os.Getenv("PORT"); p != "" {
		return fmt.Sprintf(":%s", p)
	}
	return ":8080"
}

// jwtSecret reads the token signing secret, warning loudly when the dev
// fallback is in use.
func jwtSecret() string {
	if s := os.Getenv("AUCTION_JWT_SECRET"); s != "" {
		return s
	}
	utils.Warn("AUCTION_JWT_SECRET not set, using insecure development secret", nil)
	return "dev-only-secret"
}
