package registry

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"auction-house/internal/auction"
	"auction-house/internal/auctionerrors"
	"auction-house/internal/models"
	"auction-house/utils"
)

// DefaultMinIncrement is the bid increment assigned to every new auction.
const DefaultMinIncrement = 1.0

// MaxDurationMinutes caps auction duration at one week.
const MaxDurationMinutes = 10080

// Registry is the process-wide coordinator owning the user directory and the
// auction catalog. It is the only entry point collaborators use: it resolves
// identity and role, locates the target item, and delegates mutations to it.
// Construct one instance at process start and inject it everywhere; state
// lives only for the lifetime of the process.
type Registry struct {
	mu           sync.RWMutex
	users        map[string]*models.User // key: username
	userOrder    []string                // usernames in registration order
	auctions     map[string]*auction.Item
	auctionOrder []string // auction ids in catalog order
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		users:    make(map[string]*models.User),
		auctions: make(map[string]*auction.Item),
	}
}

// Register creates a new user. Fails if the username is taken; concurrent
// registrations of the same username yield exactly one success. The hash is
// computed outside the lock so the directory is never held across bcrypt.
func (r *Registry) Register(username, password, email string, role models.Role) (*models.User, error) {
	if strings.TrimSpace(username) == "" || password == "" || strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("register: %w - username, password and email are required", auctionerrors.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash credential: %w", err)
	}
	user := models.NewUser(utils.GenerateID(), username, string(hash), email, role)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[username]; exists {
		return nil, fmt.Errorf("register %s: %w", username, auctionerrors.ErrDuplicateUsername)
	}
	r.users[username] = user
	r.userOrder = append(r.userOrder, username)
	return user, nil
}

// Login checks credentials and returns the user. Unknown usernames and
// mismatched passwords fail identically, with no side effects.
func (r *Registry) Login(username, password string) (*models.User, error) {
	r.mu.RLock()
	user, ok := r.users[username]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("login %s: %w", username, auctionerrors.ErrBadCredentials)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, fmt.Errorf("login %s: %w", username, auctionerrors.ErrBadCredentials)
	}
	return user, nil
}

// CreateAuction validates the listing, allocates a fresh id, and inserts the
// new ACTIVE item into the catalog atomically. Nothing is created on a
// validation failure.
func (r *Registry) CreateAuction(title, description string, startingPrice, reservePrice float64,
	seller *models.User, category models.Category, durationMinutes int) (string, error) {

	switch {
	case strings.TrimSpace(title) == "":
		return "", fmt.Errorf("create auction: %w - title is required", auctionerrors.ErrInvalidAuction)
	case strings.TrimSpace(description) == "":
		return "", fmt.Errorf("create auction: %w - description is required", auctionerrors.ErrInvalidAuction)
	case startingPrice <= 0:
		return "", fmt.Errorf("create auction: %w - starting price must be greater than 0", auctionerrors.ErrInvalidAuction)
	case reservePrice < startingPrice:
		return "", fmt.Errorf("create auction: %w - reserve price must be at least the starting price", auctionerrors.ErrInvalidAuction)
	case durationMinutes <= 0 || durationMinutes > MaxDurationMinutes:
		return "", fmt.Errorf("create auction: %w - duration must be between 1 and %d minutes", auctionerrors.ErrInvalidAuction, MaxDurationMinutes)
	}
	if _, ok := models.ParseCategory(string(category)); !ok {
		return "", fmt.Errorf("create auction: %w - unknown category %q", auctionerrors.ErrInvalidAuction, category)
	}
	if seller == nil {
		return "", fmt.Errorf("create auction: %w", auctionerrors.ErrUserNotFound)
	}

	item := auction.NewItem(auction.Params{
		ID:            utils.GenerateID(),
		Title:         title,
		Description:   description,
		Category:      category,
		SellerID:      seller.UserID,
		SellerName:    seller.Username,
		StartingPrice: startingPrice,
		ReservePrice:  reservePrice,
		MinIncrement:  DefaultMinIncrement,
		EndsAt:        time.Now().UTC().Add(time.Duration(durationMinutes) * time.Minute),
	})

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.auctions[item.ID()]; exists {
		// Id collision is an internal invariant violation, not a retryable condition.
		utils.Fatal("auction id collision", map[string]any{"auction_id": item.ID()})
	}
	r.auctions[item.ID()] = item
	r.auctionOrder = append(r.auctionOrder, item.ID())
	return item.ID(), nil
}

// RemoveAuction deletes an auction from the catalog unconditionally,
// regardless of its state. Admin only.
func (r *Registry) RemoveAuction(auctionID string, actor *models.User) error {
	if actor == nil || !actor.IsAdmin() {
		return fmt.Errorf("remove auction %s: %w", auctionID, auctionerrors.ErrNotAuthorized)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.auctions[auctionID]; !ok {
		return fmt.Errorf("remove auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	delete(r.auctions, auctionID)
	for i, id := range r.auctionOrder {
		if id == auctionID {
			r.auctionOrder = append(r.auctionOrder[:i], r.auctionOrder[i+1:]...)
			break
		}
	}
	return nil
}

// EndAuction forces an ACTIVE auction to CLOSED early. Permitted for the
// seller and for admins; a no-op if the auction is already closed.
func (r *Registry) EndAuction(auctionID string, actor *models.User) error {
	item, err := r.GetAuction(auctionID)
	if err != nil {
		return err
	}
	if actor == nil || (!actor.IsAdmin() && actor.UserID != item.SellerID()) {
		return fmt.Errorf("end auction %s: %w", auctionID, auctionerrors.ErrNotAuthorized)
	}
	item.End()
	return nil
}

// PlaceBid delegates the bid to the item's exclusive region and, on
// acceptance, records the bid id on the bidder's personal list. The item
// lock is released before the user ledger is touched, so the two locks are
// never held together.
func (r *Registry) PlaceBid(auctionID string, bidder *models.User, amount float64) (models.Bid, error) {
	if bidder == nil {
		return models.Bid{}, fmt.Errorf("place bid on %s: %w", auctionID, auctionerrors.ErrUserNotFound)
	}
	item, err := r.GetAuction(auctionID)
	if err != nil {
		return models.Bid{}, err
	}

	bid, err := item.PlaceBid(bidder, amount)
	if err != nil {
		return models.Bid{}, fmt.Errorf("place bid on %s: %w", auctionID, err)
	}
	bidder.RecordBid(bid.BidID)
	return bid, nil
}

// GetUser looks up a user by username.
func (r *Registry) GetUser(username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[username]
	if !ok {
		return nil, fmt.Errorf("get user %s: %w", username, auctionerrors.ErrUserNotFound)
	}
	return user, nil
}

// GetAuction looks up an auction by id.
func (r *Registry) GetAuction(auctionID string) (*auction.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.auctions[auctionID]
	if !ok {
		return nil, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return item, nil
}

// GetAllUsers returns every registered user in registration order.
func (r *Registry) GetAllUsers() []*models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.User, 0, len(r.userOrder))
	for _, name := range r.userOrder {
		out = append(out, r.users[name])
	}
	return out
}

// GetAllAuctions returns the full catalog in insertion order.
func (r *Registry) GetAllAuctions() []*auction.Item {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.catalogLocked()
}

// catalogLocked copies the catalog slice; callers hold at least a read lock.
func (r *Registry) catalogLocked() []*auction.Item {
	out := make([]*auction.Item, 0, len(r.auctionOrder))
	for _, id := range r.auctionOrder {
		out = append(out, r.auctions[id])
	}
	return out
}

// GetActiveAuctions returns auctions still accepting bids, in catalog order.
// The state check runs after the catalog snapshot is taken so the registry
// lock is never held across per-item locks.
func (r *Registry) GetActiveAuctions() []*auction.Item {
	all := r.GetAllAuctions()
	out := make([]*auction.Item, 0, len(all))
	for _, item := range all {
		if item.State() == models.StateActive {
			out = append(out, item)
		}
	}
	return out
}

// GetAuctionsBySeller returns the auctions listed by the given user, in
// catalog order.
func (r *Registry) GetAuctionsBySeller(seller *models.User) []*auction.Item {
	if seller == nil {
		return nil
	}
	all := r.GetAllAuctions()
	out := make([]*auction.Item, 0)
	for _, item := range all {
		if item.SellerID() == seller.UserID {
			out = append(out, item)
		}
	}
	return out
}

// SearchAuctions returns auctions whose title, description, or category
// contains the keyword (case-insensitive), in catalog order.
func (r *Registry) SearchAuctions(keyword string) []*auction.Item {
	all := r.GetAllAuctions()
	out := make([]*auction.Item, 0)
	for _, item := range all {
		if item.MatchesKeyword(keyword) {
			out = append(out, item)
		}
	}
	return out
}

// DumpCatalog writes a plain-text diagnostic listing of every auction to the
// given sink. The dump is a read-only projection; it is not part of engine
// state.
func (r *Registry) DumpCatalog(w io.Writer) error {
	items := r.GetAllAuctions()
	if _, err := fmt.Fprintf(w, "auction catalog: %d item(s)\n", len(items)); err != nil {
		return fmt.Errorf("dump catalog: %w", err)
	}
	for _, item := range items {
		s := item.Snapshot()
		_, err := fmt.Fprintf(w, "[%s] %-30s state=%-7s bid=%.2f reserve_met=%-5t bids=%-3d seller=%s remaining=%dm\n",
			utils.ShortID(s.AuctionID), s.Title, s.State, s.CurrentBid, s.ReserveMet, s.BidCount, s.SellerName, s.TimeRemainingMinutes)
		if err != nil {
			return fmt.Errorf("dump catalog: %w", err)
		}
	}
	return nil
}
