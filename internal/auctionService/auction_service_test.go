package auctionService

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/models"
	"auction-house/internal/registry"
)

func newService(t *testing.T) (*AuctionService, *registry.Registry) {
	t.Helper()
	reg := registry.NewRegistry()
	return NewAuctionService(reg), reg
}

func registerUser(t *testing.T, reg *registry.Registry, username string, role models.Role) *models.User {
	t.Helper()
	user, err := reg.Register(username, "s3cret", username+"@example.com", role)
	require.NoError(t, err)
	return user
}

func validParams() CreateParams {
	return CreateParams{
		Title:           "Vintage Lamp",
		Description:     "brass lamp",
		StartingPrice:   10,
		ReservePrice:    20,
		Category:        "COLLECTIBLES",
		DurationMinutes: 30,
	}
}

func TestAuctionService_CreateAuction(t *testing.T) {
	t.Parallel()

	svc, reg := newService(t)
	registerUser(t, reg, "seller", models.RoleUser)

	id, err := svc.CreateAuction("seller", validParams())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	snap, err := svc.GetAuction(id)
	require.NoError(t, err)
	require.Equal(t, "Vintage Lamp", snap.Title)
	require.Equal(t, models.StateActive, snap.State)

	_, err = svc.CreateAuction("ghost", validParams())
	require.True(t, errors.Is(err, auctionerrors.ErrUserNotFound))

	bad := validParams()
	bad.ReservePrice = 5
	_, err = svc.CreateAuction("seller", bad)
	require.True(t, errors.Is(err, auctionerrors.ErrInvalidAuction))
}

func TestAuctionService_PlaceBid(t *testing.T) {
	t.Parallel()

	svc, reg := newService(t)
	registerUser(t, reg, "seller", models.RoleUser)
	registerUser(t, reg, "bidder", models.RoleUser)

	id, err := svc.CreateAuction("seller", validParams())
	require.NoError(t, err)

	tests := []struct {
		name          string
		auctionID     string
		bidder        string
		amount        float64
		expectedError error
	}{
		{name: "empty_auction_id", auctionID: "", bidder: "bidder", amount: 11, expectedError: auctionerrors.ErrInvalidInput},
		{name: "zero_amount", auctionID: id, bidder: "bidder", amount: 0, expectedError: auctionerrors.ErrInvalidInput},
		{name: "negative_amount", auctionID: id, bidder: "bidder", amount: -10, expectedError: auctionerrors.ErrInvalidInput},
		{name: "unknown_bidder", auctionID: id, bidder: "ghost", amount: 11, expectedError: auctionerrors.ErrUserNotFound},
		{name: "unknown_auction", auctionID: "missing", bidder: "bidder", amount: 11, expectedError: auctionerrors.ErrAuctionNotFound},
		{name: "self_bid", auctionID: id, bidder: "seller", amount: 11, expectedError: auctionerrors.ErrSelfBid},
		{name: "below_floor", auctionID: id, bidder: "bidder", amount: 10.5, expectedError: auctionerrors.ErrBidTooLow},
		{name: "accepted", auctionID: id, bidder: "bidder", amount: 11},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bid, err := svc.PlaceBid(tc.auctionID, tc.bidder, tc.amount)
			if tc.expectedError != nil {
				require.Error(t, err)
				require.True(t, errors.Is(err, tc.expectedError), "expected %v, got %v", tc.expectedError, err)
			} else {
				require.NoError(t, err)
				require.Equal(t, tc.amount, bid.Amount)
				require.Equal(t, "bidder", bid.BidderName)
			}
		})
	}
}

func TestAuctionService_EndAndRemove(t *testing.T) {
	t.Parallel()

	svc, reg := newService(t)
	registerUser(t, reg, "seller", models.RoleUser)
	registerUser(t, reg, "root", models.RoleAdmin)

	id, err := svc.CreateAuction("seller", validParams())
	require.NoError(t, err)

	require.NoError(t, svc.EndAuction(id, "seller"))
	snap, err := svc.GetAuction(id)
	require.NoError(t, err)
	require.Equal(t, models.StateClosed, snap.State)

	err = svc.RemoveAuction(id, "seller")
	require.True(t, errors.Is(err, auctionerrors.ErrNotAuthorized))

	require.NoError(t, svc.RemoveAuction(id, "root"))
	_, err = svc.GetAuction(id)
	require.True(t, errors.Is(err, auctionerrors.ErrAuctionNotFound))
}

func TestAuctionService_ListAuctions(t *testing.T) {
	t.Parallel()

	svc, reg := newService(t)
	registerUser(t, reg, "seller", models.RoleUser)

	lamp := validParams()
	lampID, err := svc.CreateAuction("seller", lamp)
	require.NoError(t, err)

	desk := validParams()
	desk.Title = "Writing Desk"
	desk.Description = "oak desk"
	desk.Category = "HOME_GARDEN"
	desk.StartingPrice = 50
	desk.ReservePrice = 80
	deskID, err := svc.CreateAuction("seller", desk)
	require.NoError(t, err)

	require.NoError(t, svc.EndAuction(deskID, "seller"))

	all := svc.ListAuctions("", false)
	require.Len(t, all, 2)
	require.Equal(t, lampID, all[0].AuctionID)
	require.Equal(t, deskID, all[1].AuctionID)

	active := svc.ListAuctions("", true)
	require.Len(t, active, 1)
	require.Equal(t, lampID, active[0].AuctionID)

	found := svc.ListAuctions("desk", false)
	require.Len(t, found, 1)
	require.Equal(t, deskID, found[0].AuctionID)

	// A keyword combined with active filtering drops closed matches.
	require.Empty(t, svc.ListAuctions("desk", true))

	mine, err := svc.ListBySeller("seller")
	require.NoError(t, err)
	require.Len(t, mine, 2)
}

func TestAuctionService_AdminStats(t *testing.T) {
	t.Parallel()

	svc, reg := newService(t)
	registerUser(t, reg, "seller", models.RoleUser)
	bidder := registerUser(t, reg, "bidder", models.RoleUser)
	registerUser(t, reg, "root", models.RoleAdmin)

	lampID, err := svc.CreateAuction("seller", validParams())
	require.NoError(t, err)
	desk := validParams()
	desk.Title = "Writing Desk"
	deskID, err := svc.CreateAuction("seller", desk)
	require.NoError(t, err)

	_, err = reg.PlaceBid(lampID, bidder, 25) // meets the 20 reserve
	require.NoError(t, err)
	_, err = reg.PlaceBid(deskID, bidder, 11)
	require.NoError(t, err)
	_, err = reg.PlaceBid(deskID, bidder, 12)
	require.NoError(t, err)
	require.NoError(t, svc.EndAuction(deskID, "seller"))

	stats, err := svc.AdminStats("root")
	require.NoError(t, err)
	require.Equal(t, 3, stats.TotalUsers)
	require.Equal(t, 2, stats.RegularUsers)
	require.Equal(t, 1, stats.Admins)
	require.Equal(t, 2, stats.TotalAuctions)
	require.Equal(t, 1, stats.ActiveAuctions)
	require.Equal(t, 1, stats.ClosedAuctions)
	require.Zero(t, stats.PendingAuctions)
	require.Equal(t, 3, stats.TotalBids)
	require.Equal(t, 1, stats.ReserveMetCount)
	require.InDelta(t, 1.5, stats.AverageBidsPerAuction, 1e-9)

	_, err = svc.AdminStats("bidder")
	require.True(t, errors.Is(err, auctionerrors.ErrNotAuthorized))
}

func TestAuctionService_DumpCatalog(t *testing.T) {
	t.Parallel()

	svc, reg := newService(t)
	registerUser(t, reg, "seller", models.RoleUser)
	registerUser(t, reg, "root", models.RoleAdmin)

	_, err := svc.CreateAuction("seller", validParams())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.DumpCatalog("root", &buf))
	require.Contains(t, buf.String(), "Vintage Lamp")

	err = svc.DumpCatalog("seller", &buf)
	require.True(t, errors.Is(err, auctionerrors.ErrNotAuthorized))
}
