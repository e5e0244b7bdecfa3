package auctionService

import (
	"fmt"
	"io"

	"auction-house/internal/auction"
	"auction-house/internal/auctionerrors"
	"auction-house/internal/models"
	"auction-house/internal/registry"
)

// AuctionService defines the business logic for listing, bidding on, and
// administering auctions. All callers are identified by username; the
// service resolves identity and role through the registry.
type AuctionService struct {
	reg *registry.Registry
}

// NewAuctionService creates a new AuctionService instance
func NewAuctionService(reg *registry.Registry) *AuctionService {
	return &AuctionService{reg: reg}
}

// CreateParams carries a new listing from the presentation layer.
type CreateParams struct {
	Title           string
	Description     string
	StartingPrice   float64
	ReservePrice    float64
	Category        string
	DurationMinutes int
}

// CreateAuction lists a new auction for the given seller and returns its id.
func (s *AuctionService) CreateAuction(sellerUsername string, p CreateParams) (string, error) {
	seller, err := s.reg.GetUser(sellerUsername)
	if err != nil {
		return "", fmt.Errorf("service: %w", err)
	}

	id, err := s.reg.CreateAuction(p.Title, p.Description, p.StartingPrice, p.ReservePrice,
		seller, models.Category(p.Category), p.DurationMinutes)
	if err != nil {
		return "", fmt.Errorf("service: failed to create auction for %s: %w", sellerUsername, err)
	}
	return id, nil
}

// PlaceBid validates and records a bid by the given user.
func (s *AuctionService) PlaceBid(auctionID, bidderUsername string, amount float64) (models.Bid, error) {
	if auctionID == "" {
		return models.Bid{}, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidInput)
	}
	if amount <= 0 {
		return models.Bid{}, fmt.Errorf("service: %w - non-positive bid amount", auctionerrors.ErrInvalidInput)
	}
	bidder, err := s.reg.GetUser(bidderUsername)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: %w", err)
	}

	bid, err := s.reg.PlaceBid(auctionID, bidder, amount)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to place bid on %s by %s: %w", auctionID, bidderUsername, err)
	}
	return bid, nil
}

// EndAuction closes an active auction early. Sellers may end their own
// auctions; admins may end any.
func (s *AuctionService) EndAuction(auctionID, actorUsername string) error {
	actor, err := s.reg.GetUser(actorUsername)
	if err != nil {
		return fmt.Errorf("service: %w", err)
	}
	if err := s.reg.EndAuction(auctionID, actor); err != nil {
		return fmt.Errorf("service: failed to end auction %s: %w", auctionID, err)
	}
	return nil
}

// RemoveAuction deletes an auction from the catalog in any state. Admin only.
func (s *AuctionService) RemoveAuction(auctionID, actorUsername string) error {
	actor, err := s.reg.GetUser(actorUsername)
	if err != nil {
		return fmt.Errorf("service: %w", err)
	}
	if err := s.reg.RemoveAuction(auctionID, actor); err != nil {
		return fmt.Errorf("service: failed to remove auction %s: %w", auctionID, err)
	}
	return nil
}

// GetAuction returns the snapshot of one auction.
func (s *AuctionService) GetAuction(auctionID string) (auction.Snapshot, error) {
	item, err := s.reg.GetAuction(auctionID)
	if err != nil {
		return auction.Snapshot{}, fmt.Errorf("service: %w", err)
	}
	return item.Snapshot(), nil
}

// GetBids returns the bid ledger of one auction in acceptance order.
func (s *AuctionService) GetBids(auctionID string) ([]models.Bid, error) {
	item, err := s.reg.GetAuction(auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	return item.History(), nil
}

// ListAuctions returns snapshots in catalog order. With activeOnly set, only
// auctions still accepting bids are returned; with a keyword, the catalog is
// filtered by case-insensitive substring match.
func (s *AuctionService) ListAuctions(keyword string, activeOnly bool) []auction.Snapshot {
	var items []*auction.Item
	switch {
	case keyword != "":
		items = s.reg.SearchAuctions(keyword)
	case activeOnly:
		items = s.reg.GetActiveAuctions()
	default:
		items = s.reg.GetAllAuctions()
	}

	out := make([]auction.Snapshot, 0, len(items))
	for _, item := range items {
		snap := item.Snapshot()
		if activeOnly && snap.State != models.StateActive {
			continue
		}
		out = append(out, snap)
	}
	return out
}

// ListBySeller returns the auctions listed by the given user.
func (s *AuctionService) ListBySeller(sellerUsername string) ([]auction.Snapshot, error) {
	seller, err := s.reg.GetUser(sellerUsername)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}

	items := s.reg.GetAuctionsBySeller(seller)
	out := make([]auction.Snapshot, 0, len(items))
	for _, item := range items {
		out = append(out, item.Snapshot())
	}
	return out, nil
}

// Stats is the admin dashboard breakdown.
type Stats struct {
	TotalUsers            int     `json:"total_users"`
	RegularUsers          int     `json:"regular_users"`
	Admins                int     `json:"admins"`
	TotalAuctions         int     `json:"total_auctions"`
	ActiveAuctions        int     `json:"active_auctions"`
	ClosedAuctions        int     `json:"closed_auctions"`
	PendingAuctions       int     `json:"pending_auctions"`
	TotalBids             int     `json:"total_bids"`
	ReserveMetCount       int     `json:"reserve_met_count"`
	AverageBidsPerAuction float64 `json:"average_bids_per_auction"`
}

// AdminStats computes catalog-wide statistics. Admin only.
func (s *AuctionService) AdminStats(actorUsername string) (Stats, error) {
	if err := s.requireAdmin(actorUsername); err != nil {
		return Stats{}, err
	}

	var stats Stats
	for _, u := range s.reg.GetAllUsers() {
		stats.TotalUsers++
		if u.IsAdmin() {
			stats.Admins++
		} else {
			stats.RegularUsers++
		}
	}
	for _, item := range s.reg.GetAllAuctions() {
		snap := item.Snapshot()
		stats.TotalAuctions++
		switch snap.State {
		case models.StateActive:
			stats.ActiveAuctions++
		case models.StateClosed:
			stats.ClosedAuctions++
		case models.StatePending:
			stats.PendingAuctions++
		}
		stats.TotalBids += snap.BidCount
		if snap.ReserveMet {
			stats.ReserveMetCount++
		}
	}
	if stats.TotalAuctions > 0 {
		stats.AverageBidsPerAuction = float64(stats.TotalBids) / float64(stats.TotalAuctions)
	}
	return stats, nil
}

// DumpCatalog writes the diagnostic full-catalog dump to the sink. Admin only.
func (s *AuctionService) DumpCatalog(actorUsername string, w io.Writer) error {
	if err := s.requireAdmin(actorUsername); err != nil {
		return err
	}
	if err := s.reg.DumpCatalog(w); err != nil {
		return fmt.Errorf("service: %w", err)
	}
	return nil
}

func (s *AuctionService) requireAdmin(username string) error {
	actor, err := s.reg.GetUser(username)
	if err != nil {
		return fmt.Errorf("service: %w", err)
	}
	if !actor.IsAdmin() {
		return fmt.Errorf("service: %w", auctionerrors.ErrNotAuthorized)
	}
	return nil
}
