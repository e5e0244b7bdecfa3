package server

import (
	"auction-house/internal/accountService"
	"auction-house/internal/auctionService"
	handler "auction-house/services/auction/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(accounts *accountService.AccountService, auctions *auctionService.AuctionService, tokens *TokenIssuer) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	accountHandler := handler.NewAccountHandler(accounts, tokens)
	auctionHandler := handler.NewAuctionHandler(auctions)

	auth := router.Group("/auth")
	{
		auth.POST("/register", accountHandler.RegisterHandler)
		auth.POST("/login", accountHandler.LoginHandler)
	}

	catalog := router.Group("/auctions")
	{
		catalog.GET("", auctionHandler.ListAuctionsHandler)
		catalog.GET("/:auction_id", auctionHandler.GetAuctionHandler)
		catalog.GET("/:auction_id/bids", auctionHandler.GetBidsHandler)
	}

	authed := router.Group("/", AuthRequired(tokens))
	{
		authed.POST("/auctions", auctionHandler.CreateAuctionHandler)
		authed.POST("/auctions/:auction_id/bids", auctionHandler.PlaceBidHandler)
		authed.POST("/auctions/:auction_id/end", auctionHandler.EndAuctionHandler)

		authed.GET("/users/me", accountHandler.ProfileHandler)
		authed.GET("/users/me/bids", accountHandler.MyBidsHandler)
		authed.GET("/users/me/auctions", auctionHandler.MyAuctionsHandler)
	}

	admin := router.Group("/admin", AuthRequired(tokens), AdminRequired)
	{
		admin.DELETE("/auctions/:auction_id", auctionHandler.RemoveAuctionHandler)
		admin.GET("/users", accountHandler.ListUsersHandler)
		admin.GET("/stats", auctionHandler.StatsHandler)
		admin.GET("/catalog", auctionHandler.DumpCatalogHandler)
	}

	return router
}
