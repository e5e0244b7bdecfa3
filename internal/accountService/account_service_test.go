package accountService

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/models"
	"auction-house/internal/registry"
)

func newService(t *testing.T) (*AccountService, *registry.Registry) {
	t.Helper()
	reg := registry.NewRegistry()
	return NewAccountService(reg), reg
}

func TestAccountService_Register(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)

	tests := []struct {
		name          string
		username      string
		role          string
		expectedRole  models.Role
		expectedError error
	}{
		{name: "default_role", username: "alice", role: "", expectedRole: models.RoleUser},
		{name: "explicit_user", username: "bob", role: "USER", expectedRole: models.RoleUser},
		{name: "admin", username: "carol", role: "ADMIN", expectedRole: models.RoleAdmin},
		{name: "unknown_role", username: "dave", role: "SUPERUSER", expectedError: auctionerrors.ErrInvalidInput},
		{name: "duplicate", username: "alice", role: "", expectedError: auctionerrors.ErrDuplicateUsername},
	}

	for _, tc := range tests {
		// Sequential on purpose: the duplicate case depends on the first.
		t.Run(tc.name, func(t *testing.T) {
			user, err := svc.Register(tc.username, "s3cret", tc.username+"@example.com", tc.role)
			if tc.expectedError != nil {
				require.Error(t, err)
				require.True(t, errors.Is(err, tc.expectedError), "expected %v, got %v", tc.expectedError, err)
			} else {
				require.NoError(t, err)
				require.Equal(t, tc.username, user.Username)
				require.Equal(t, tc.expectedRole, user.Role)
			}
		})
	}
}

func TestAccountService_Login(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)
	_, err := svc.Register("alice", "s3cret", "alice@example.com", "USER")
	require.NoError(t, err)

	user, err := svc.Login("alice", "s3cret")
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)

	_, err = svc.Login("alice", "wrong")
	require.True(t, errors.Is(err, auctionerrors.ErrBadCredentials))

	_, err = svc.Login("ghost", "s3cret")
	require.True(t, errors.Is(err, auctionerrors.ErrBadCredentials))
}

func TestAccountService_MyBids(t *testing.T) {
	t.Parallel()

	svc, reg := newService(t)

	seller, err := reg.Register("seller", "s3cret", "seller@example.com", models.RoleUser)
	require.NoError(t, err)
	bidder, err := reg.Register("bidder", "s3cret", "bidder@example.com", models.RoleUser)
	require.NoError(t, err)
	rival, err := reg.Register("rival", "s3cret", "rival@example.com", models.RoleUser)
	require.NoError(t, err)

	lampID, err := reg.CreateAuction("Vintage Lamp", "brass lamp", 10, 20, seller, models.CategoryCollectibles, 30)
	require.NoError(t, err)
	deskID, err := reg.CreateAuction("Writing Desk", "oak desk", 50, 80, seller, models.CategoryHomeGarden, 30)
	require.NoError(t, err)

	_, err = reg.PlaceBid(lampID, bidder, 11)
	require.NoError(t, err)
	_, err = reg.PlaceBid(lampID, rival, 12)
	require.NoError(t, err)
	_, err = reg.PlaceBid(lampID, bidder, 13)
	require.NoError(t, err)
	_, err = reg.PlaceBid(deskID, bidder, 51)
	require.NoError(t, err)

	groups, err := svc.MyBids("bidder")
	require.NoError(t, err)
	require.Len(t, groups, 2)

	// Groups come back in catalog order with only the caller's bids.
	require.Equal(t, lampID, groups[0].Auction.AuctionID)
	require.Len(t, groups[0].Bids, 2)
	require.Equal(t, 11.0, groups[0].Bids[0].Amount)
	require.Equal(t, 13.0, groups[0].Bids[1].Amount)

	require.Equal(t, deskID, groups[1].Auction.AuctionID)
	require.Len(t, groups[1].Bids, 1)

	// Users with no bids get an empty, non-nil result.
	groups, err = svc.MyBids("seller")
	require.NoError(t, err)
	require.Empty(t, groups)

	_, err = svc.MyBids("ghost")
	require.True(t, errors.Is(err, auctionerrors.ErrUserNotFound))
}

func TestAccountService_ListUsers(t *testing.T) {
	t.Parallel()

	svc, reg := newService(t)
	_, err := reg.Register("alice", "s3cret", "alice@example.com", models.RoleUser)
	require.NoError(t, err)
	_, err = reg.Register("root", "s3cret", "root@example.com", models.RoleAdmin)
	require.NoError(t, err)

	users, err := svc.ListUsers("root")
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "alice", users[0].Username)
	require.Equal(t, "root", users[1].Username)

	_, err = svc.ListUsers("alice")
	require.True(t, errors.Is(err, auctionerrors.ErrNotAuthorized))
}
