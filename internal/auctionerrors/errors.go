package auctionerrors

import "errors"

// Registry-level errors
var (
	ErrAuctionNotFound   = errors.New("auction not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrBadCredentials    = errors.New("invalid username or password")
	ErrNotAuthorized     = errors.New("operation not permitted for this user")
)

// Validation errors
var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrInvalidAuction = errors.New("invalid auction parameters")
)

// Bid rejection reasons. A rejected bid has zero side effects on the item.
var (
	ErrAuctionNotActive = errors.New("auction is not accepting bids")
	ErrSelfBid          = errors.New("seller cannot bid on own auction")
	ErrBidTooLow        = errors.New("bid below current price plus minimum increment")
)
