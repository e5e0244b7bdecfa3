package accountService

import (
	"fmt"

	"auction-house/internal/auction"
	"auction-house/internal/auctionerrors"
	"auction-house/internal/models"
	"auction-house/internal/registry"
)

// AccountService exposes identity operations to the presentation layer.
type AccountService struct {
	reg *registry.Registry
}

// NewAccountService creates a new AccountService instance
func NewAccountService(reg *registry.Registry) *AccountService {
	return &AccountService{reg: reg}
}

// Register creates a new account with the given role ("USER" or "ADMIN").
func (s *AccountService) Register(username, password, email, role string) (models.UserView, error) {
	parsed, ok := models.ParseRole(role)
	if !ok {
		return models.UserView{}, fmt.Errorf("service: %w - unknown role %q", auctionerrors.ErrInvalidInput, role)
	}

	user, err := s.reg.Register(username, password, email, parsed)
	if err != nil {
		return models.UserView{}, fmt.Errorf("service: failed to register %s: %w", username, err)
	}
	return user.View(), nil
}

// Login authenticates a user and returns its view. Credential failures carry
// no detail about which part was wrong.
func (s *AccountService) Login(username, password string) (models.UserView, error) {
	user, err := s.reg.Login(username, password)
	if err != nil {
		return models.UserView{}, fmt.Errorf("service: login failed: %w", err)
	}
	return user.View(), nil
}

// Profile returns the view of an existing user.
func (s *AccountService) Profile(username string) (models.UserView, error) {
	user, err := s.reg.GetUser(username)
	if err != nil {
		return models.UserView{}, fmt.Errorf("service: %w", err)
	}
	return user.View(), nil
}

// AuctionBids groups a user's bids under the auction they were placed on.
type AuctionBids struct {
	Auction auction.Snapshot `json:"auction"`
	Bids    []models.Bid     `json:"bids"`
}

// MyBids joins the user's personal bid-id list against the bid ledgers of
// the catalog, grouped per auction in catalog order. Bids on auctions that
// an admin has since removed are not reported.
func (s *AccountService) MyBids(username string) ([]AuctionBids, error) {
	user, err := s.reg.GetUser(username)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}

	mine := make(map[string]struct{})
	for _, id := range user.MyBidIDs() {
		mine[id] = struct{}{}
	}

	out := make([]AuctionBids, 0)
	for _, item := range s.reg.GetAllAuctions() {
		var bids []models.Bid
		for _, b := range item.History() {
			if _, ok := mine[b.BidID]; ok {
				bids = append(bids, b)
			}
		}
		if len(bids) > 0 {
			out = append(out, AuctionBids{Auction: item.Snapshot(), Bids: bids})
		}
	}
	return out, nil
}

// ListUsers returns every registered user, admin only.
func (s *AccountService) ListUsers(actorUsername string) ([]models.UserView, error) {
	actor, err := s.reg.GetUser(actorUsername)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("service: list users: %w", auctionerrors.ErrNotAuthorized)
	}

	users := s.reg.GetAllUsers()
	out := make([]models.UserView, 0, len(users))
	for _, u := range users {
		out = append(out, u.View())
	}
	return out, nil
}
