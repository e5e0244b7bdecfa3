package handler

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"auction-house/internal/auction"
	"auction-house/internal/auctionService"
	"auction-house/internal/models"
	"auction-house/services/auction/helpers"
	"auction-house/utils"
)

type AuctionServiceInterface interface {
	CreateAuction(sellerUsername string, p auctionService.CreateParams) (string, error)
	PlaceBid(auctionID, bidderUsername string, amount float64) (models.Bid, error)
	EndAuction(auctionID, actorUsername string) error
	RemoveAuction(auctionID, actorUsername string) error
	GetAuction(auctionID string) (auction.Snapshot, error)
	GetBids(auctionID string) ([]models.Bid, error)
	ListAuctions(keyword string, activeOnly bool) []auction.Snapshot
	ListBySeller(sellerUsername string) ([]auction.Snapshot, error)
	AdminStats(actorUsername string) (auctionService.Stats, error)
	DumpCatalog(actorUsername string, w io.Writer) error
}

type AuctionHandler struct {
	service AuctionServiceInterface
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// CreateAuctionHandler handles POST /auctions
func (h *AuctionHandler) CreateAuctionHandler(c *gin.Context) {
	var req helpers.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	seller := helpers.CurrentUsername(c)
	id, err := h.service.CreateAuction(seller, auctionService.CreateParams{
		Title:           req.Title,
		Description:     req.Description,
		StartingPrice:   req.StartingPrice,
		ReservePrice:    req.ReservePrice,
		Category:        req.Category,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("CreateAuctionHandler: failed to create auction", map[string]any{
			"seller": seller,
			"title":  req.Title,
			"error":  err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.CreateAuctionResponse{AuctionID: id}, "auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{
		"auction_id": utils.ShortID(id),
		"seller":     seller,
		"title":      req.Title,
	})
}

// ListAuctionsHandler handles GET /auctions with optional ?q= and ?active=
func (h *AuctionHandler) ListAuctionsHandler(c *gin.Context) {
	keyword := c.Query("q")
	activeOnly := c.Query("active") == "true"

	snaps := h.service.ListAuctions(keyword, activeOnly)
	utils.JSONResponse(c, http.StatusOK, snaps, "auctions retrieved successfully")
}

// GetAuctionHandler handles GET /auctions/:auction_id
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	snap, err := h.service.GetAuction(auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}

	utils.JSONResponse(c, http.StatusOK, snap, "auction retrieved successfully")
}

// PlaceBidHandler handles POST /auctions/:auction_id/bids
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	auctionID := c.Param("auction_id")
	bidder := helpers.CurrentUsername(c)

	bid, err := h.service.PlaceBid(auctionID, bidder, req.Amount)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("PlaceBidHandler: bid rejected", map[string]any{
			"auction_id": utils.ShortID(auctionID),
			"bidder":     bidder,
			"amount":     req.Amount,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewBidResponse(bid), "bid recorded successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid recorded successfully", map[string]any{
		"bid_id":     bid.BidID,
		"auction_id": utils.ShortID(bid.AuctionID),
		"bidder":     bidder,
		"amount":     bid.Amount,
	})
}

// GetBidsHandler handles GET /auctions/:auction_id/bids
func (h *AuctionHandler) GetBidsHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	bids, err := h.service.GetBids(auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}

	out := make([]helpers.BidResponse, 0, len(bids))
	for _, b := range bids {
		out = append(out, helpers.NewBidResponse(b))
	}

	utils.JSONResponse(c, http.StatusOK, out, "bids retrieved successfully")
}

// EndAuctionHandler handles POST /auctions/:auction_id/end
func (h *AuctionHandler) EndAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	actor := helpers.CurrentUsername(c)

	if err := h.service.EndAuction(auctionID, actor); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("EndAuctionHandler: failed to end auction", map[string]any{
			"auction_id": utils.ShortID(auctionID),
			"actor":      actor,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "auction ended successfully")
	helpers.LogSuccess("EndAuctionHandler", "auction ended successfully", map[string]any{
		"auction_id": utils.ShortID(auctionID),
		"actor":      actor,
	})
}

// MyAuctionsHandler handles GET /users/me/auctions
func (h *AuctionHandler) MyAuctionsHandler(c *gin.Context) {
	seller := helpers.CurrentUsername(c)

	snaps, err := h.service.ListBySeller(seller)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}

	utils.JSONResponse(c, http.StatusOK, snaps, "auctions retrieved successfully")
}

// RemoveAuctionHandler handles DELETE /admin/auctions/:auction_id
func (h *AuctionHandler) RemoveAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	actor := helpers.CurrentUsername(c)

	if err := h.service.RemoveAuction(auctionID, actor); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("RemoveAuctionHandler: failed to remove auction", map[string]any{
			"auction_id": utils.ShortID(auctionID),
			"actor":      actor,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "auction removed successfully")
	helpers.LogSuccess("RemoveAuctionHandler", "auction removed successfully", map[string]any{
		"auction_id": utils.ShortID(auctionID),
		"actor":      actor,
	})
}

// StatsHandler handles GET /admin/stats
func (h *AuctionHandler) StatsHandler(c *gin.Context) {
	actor := helpers.CurrentUsername(c)

	stats, err := h.service.AdminStats(actor)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}

	utils.JSONResponse(c, http.StatusOK, stats, "stats retrieved successfully")
}

// DumpCatalogHandler handles GET /admin/catalog. The dump is rendered into
// a buffer first so authorization failures still map to a clean error
// response.
func (h *AuctionHandler) DumpCatalogHandler(c *gin.Context) {
	actor := helpers.CurrentUsername(c)

	var buf bytes.Buffer
	if err := h.service.DumpCatalog(actor, &buf); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("DumpCatalogHandler: dump failed", map[string]any{
			"actor": actor,
			"error": err.Error(),
		})
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
}
