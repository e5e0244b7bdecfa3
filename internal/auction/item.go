package auction

import (
	"strings"
	"sync"
	"time"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/models"
	"auction-house/utils"
)

// Params carries the immutable fields of a new auction item. The registry
// validates them before construction.
type Params struct {
	ID            string
	Title         string
	Description   string
	Category      models.Category
	SellerID      string
	SellerName    string
	StartingPrice float64
	ReservePrice  float64
	MinIncrement  float64
	EndsAt        time.Time
}

// Item is the per-auction state machine and bid ledger. Static fields are
// fixed at creation; the dynamic fields (state, current bid, highest bidder,
// history) are guarded by one mutex so every bid is an indivisible
// check-and-mutate against the latest price.
type Item struct {
	id            string
	title         string
	description   string
	category      models.Category
	sellerID      string
	sellerName    string
	startingPrice float64
	reservePrice  float64
	minIncrement  float64
	createdAt     time.Time
	endsAt        time.Time

	mu              sync.Mutex
	state           models.AuctionState
	currentBid      float64
	highestBidderID string
	history         []models.Bid
}

// NewItem creates an auction in the ACTIVE state with the current bid seeded
// at the starting price.
func NewItem(p Params) *Item {
	return &Item{
		id:            p.ID,
		title:         p.Title,
		description:   p.Description,
		category:      p.Category,
		sellerID:      p.SellerID,
		sellerName:    p.SellerName,
		startingPrice: p.StartingPrice,
		reservePrice:  p.ReservePrice,
		minIncrement:  p.MinIncrement,
		createdAt:     time.Now().UTC(),
		endsAt:        p.EndsAt,
		state:         models.StateActive,
		currentBid:    p.StartingPrice,
	}
}

// expireLocked flips ACTIVE to CLOSED once the deadline has passed. Every
// accessor or mutator that depends on state calls it first, under the item
// lock, so no caller ever observes a live auction past its deadline. The
// lazy check is authoritative; no background sweep is required.
func (it *Item) expireLocked(now time.Time) {
	if it.state == models.StateActive && !now.Before(it.endsAt) {
		it.state = models.StateClosed
	}
}

// PlaceBid attempts to record a bid. The read of the current price, the
// floor comparison, and the mutation happen under the item lock as one
// operation; a rejection leaves every field untouched.
func (it *Item) PlaceBid(bidder *models.User, amount float64) (models.Bid, error) {
	now := time.Now().UTC()

	it.mu.Lock()
	defer it.mu.Unlock()

	it.expireLocked(now)
	if it.state != models.StateActive {
		return models.Bid{}, auctionerrors.ErrAuctionNotActive
	}
	if bidder.UserID == it.sellerID {
		return models.Bid{}, auctionerrors.ErrSelfBid
	}
	if amount < it.currentBid+it.minIncrement {
		return models.Bid{}, auctionerrors.ErrBidTooLow
	}

	bid := models.Bid{
		BidID:      utils.GenerateID(),
		AuctionID:  it.id,
		BidderID:   bidder.UserID,
		BidderName: bidder.Username,
		Amount:     amount,
		CreatedAt:  now,
	}
	it.currentBid = amount
	it.highestBidderID = bidder.UserID
	it.history = append(it.history, bid)
	return bid, nil
}

// End forces an early close. A no-op on an already closed item.
func (it *Item) End() {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.expireLocked(time.Now().UTC())
	if it.state == models.StateActive {
		it.state = models.StateClosed
	}
}

// State returns the lifecycle state after applying the lazy expiry check.
func (it *Item) State() models.AuctionState {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.expireLocked(time.Now().UTC())
	return it.state
}

// ReserveMet reports whether the hidden reserve has been reached. Recomputed
// from the current fields on every call, never cached.
func (it *Item) ReserveMet() bool {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.currentBid >= it.reservePrice
}

// TimeRemainingMinutes returns whole minutes until the deadline; zero for
// any closed or expired item.
func (it *Item) TimeRemainingMinutes() int64 {
	now := time.Now().UTC()

	it.mu.Lock()
	defer it.mu.Unlock()
	it.expireLocked(now)
	if it.state != models.StateActive {
		return 0
	}
	return int64(it.endsAt.Sub(now) / time.Minute)
}

// CurrentBid returns the highest accepted amount, or the starting price if
// no bid has been accepted yet.
func (it *Item) CurrentBid() float64 {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.currentBid
}

// History returns a copy of the append-only bid ledger in acceptance order.
func (it *Item) History() []models.Bid {
	it.mu.Lock()
	defer it.mu.Unlock()
	return append([]models.Bid(nil), it.history...)
}

// ID returns the auction id.
func (it *Item) ID() string { return it.id }

// SellerID returns the id of the user who listed the auction.
func (it *Item) SellerID() string { return it.sellerID }

// MatchesKeyword reports whether the keyword occurs, case-insensitively, in
// the title, description, or category.
func (it *Item) MatchesKeyword(keyword string) bool {
	kw := strings.ToLower(keyword)
	return strings.Contains(strings.ToLower(it.title), kw) ||
		strings.Contains(strings.ToLower(it.description), kw) ||
		strings.Contains(strings.ToLower(string(it.category)), kw)
}

// Snapshot is a plain, presentation-safe view of the item at one instant.
type Snapshot struct {
	AuctionID            string              `json:"auction_id"`
	Title                string              `json:"title"`
	Description          string              `json:"description"`
	Category             models.Category     `json:"category"`
	SellerID             string              `json:"seller_id"`
	SellerName           string              `json:"seller_name"`
	StartingPrice        float64             `json:"starting_price"`
	ReservePrice         float64             `json:"reserve_price"`
	MinIncrement         float64             `json:"min_increment"`
	CurrentBid           float64             `json:"current_bid"`
	HighestBidderID      string              `json:"highest_bidder_id,omitempty"`
	State                models.AuctionState `json:"state"`
	ReserveMet           bool                `json:"reserve_met"`
	BidCount             int                 `json:"bid_count"`
	TimeRemainingMinutes int64               `json:"time_remaining_minutes"`
	CreatedAt            time.Time           `json:"created_at"`
	EndsAt               time.Time           `json:"ends_at"`
}

// Snapshot captures the full item state under one lock acquisition.
func (it *Item) Snapshot() Snapshot {
	now := time.Now().UTC()

	it.mu.Lock()
	defer it.mu.Unlock()
	it.expireLocked(now)

	remaining := int64(0)
	if it.state == models.StateActive {
		remaining = int64(it.endsAt.Sub(now) / time.Minute)
	}
	return Snapshot{
		AuctionID:            it.id,
		Title:                it.title,
		Description:          it.description,
		Category:             it.category,
		SellerID:             it.sellerID,
		SellerName:           it.sellerName,
		StartingPrice:        it.startingPrice,
		ReservePrice:         it.reservePrice,
		MinIncrement:         it.minIncrement,
		CurrentBid:           it.currentBid,
		HighestBidderID:      it.highestBidderID,
		State:                it.state,
		ReserveMet:           it.currentBid >= it.reservePrice,
		BidCount:             len(it.history),
		TimeRemainingMinutes: remaining,
		CreatedAt:            it.createdAt,
		EndsAt:               it.endsAt,
	}
}
