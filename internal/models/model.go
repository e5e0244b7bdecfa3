package models

import (
	"sync"
	"time"
)

// Role tags a user with its capability set. Admins may additionally remove
// any auction and dump the full catalog.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole maps an input string to a Role, defaulting to RoleUser.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, "":
		return RoleUser, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return RoleUser, false
}

// AuctionState is the lifecycle state of an auction item.
//
// StatePending is a reserved value for scheduled-start auctions; the current
// creation path never produces it, but it is kept so catalog dumps and stats
// can report it.
type AuctionState string

const (
	StatePending AuctionState = "PENDING"
	StateActive  AuctionState = "ACTIVE"
	StateClosed  AuctionState = "CLOSED"
)

// Category classifies an auction item.
type Category string

const (
	CategoryElectronics  Category = "ELECTRONICS"
	CategoryFashion      Category = "FASHION"
	CategoryCollectibles Category = "COLLECTIBLES"
	CategoryArt          Category = "ART"
	CategoryBooks        Category = "BOOKS"
	CategorySports       Category = "SPORTS"
	CategoryHomeGarden   Category = "HOME_GARDEN"
	CategoryVehicles     Category = "VEHICLES"
	CategoryOther        Category = "OTHER"
)

// Categories lists every valid category in display order.
func Categories() []Category {
	return []Category{
		CategoryElectronics, CategoryFashion, CategoryCollectibles,
		CategoryArt, CategoryBooks, CategorySports,
		CategoryHomeGarden, CategoryVehicles, CategoryOther,
	}
}

// ParseCategory validates a category string.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories() {
		if Category(s) == c {
			return c, true
		}
	}
	return "", false
}

// Bid is an immutable ledger entry for one accepted bid.
type Bid struct {
	BidID      string    `json:"bid_id"`
	AuctionID  string    `json:"auction_id"`
	BidderID   string    `json:"bidder_id"`
	BidderName string    `json:"bidder_name"`
	Amount     float64   `json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
}

// User is an identity record. UserID and Username are immutable after
// registration. The bid-id list is append-only and guarded by its own mutex
// so recording a bid never requires holding an auction lock and a user lock
// at the same time.
type User struct {
	UserID       string
	Username     string
	PasswordHash string
	Email        string
	Role         Role
	CreatedAt    time.Time

	mu     sync.Mutex
	bidIDs []string
}

// NewUser builds a registered user. The password hash is computed by the
// registry; users are never constructed with a plaintext secret.
func NewUser(id, username, passwordHash, email string, role Role) *User {
	return &User{
		UserID:       id,
		Username:     username,
		PasswordHash: passwordHash,
		Email:        email,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// RecordBid appends a bid id to the user's personal ledger.
func (u *User) RecordBid(bidID string) {
	u.mu.Lock()
	u.bidIDs = append(u.bidIDs, bidID)
	u.mu.Unlock()
}

// MyBidIDs returns a copy of the user's bid ids in placement order.
func (u *User) MyBidIDs() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.bidIDs...)
}

// BidCount returns how many bids the user has placed.
func (u *User) BidCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.bidIDs)
}

// UserView is the presentation-safe projection of a User.
type UserView struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	BidCount  int       `json:"bid_count"`
	CreatedAt time.Time `json:"created_at"`
}

// View projects the user for presentation; the credential hash never leaves
// the engine.
func (u *User) View() UserView {
	return UserView{
		UserID:    u.UserID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		BidCount:  u.BidCount(),
		CreatedAt: u.CreatedAt,
	}
}
