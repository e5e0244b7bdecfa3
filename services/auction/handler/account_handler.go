package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"auction-house/internal/accountService"
	"auction-house/internal/models"
	"auction-house/services/auction/helpers"
	"auction-house/utils"
)

type AccountServiceInterface interface {
	Register(username, password, email, role string) (models.UserView, error)
	Login(username, password string) (models.UserView, error)
	Profile(username string) (models.UserView, error)
	MyBids(username string) ([]accountService.AuctionBids, error)
	ListUsers(actorUsername string) ([]models.UserView, error)
}

// TokenIssuer signs session tokens for successful logins.
type TokenIssuer interface {
	Issue(user models.UserView) (string, error)
}

type AccountHandler struct {
	service AccountServiceInterface
	tokens  TokenIssuer
}

func NewAccountHandler(service AccountServiceInterface, tokens TokenIssuer) *AccountHandler {
	return &AccountHandler{service: service, tokens: tokens}
}

// RegisterHandler handles POST /auth/register
func (h *AccountHandler) RegisterHandler(c *gin.Context) {
	var req helpers.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RegisterHandler", err)
		return
	}

	user, err := h.service.Register(req.Username, req.Password, req.Email, req.Role)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("RegisterHandler: registration failed", map[string]any{
			"username": req.Username,
			"error":    err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, user, "user registered successfully")
	helpers.LogSuccess("RegisterHandler", "user registered successfully", map[string]any{
		"user_id":  user.UserID,
		"username": user.Username,
		"role":     user.Role,
	})
}

// LoginHandler handles POST /auth/login
func (h *AccountHandler) LoginHandler(c *gin.Context) {
	var req helpers.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "LoginHandler", err)
		return
	}

	user, err := h.service.Login(req.Username, req.Password)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("LoginHandler: login failed", map[string]any{
			"username": req.Username,
			"error":    err.Error(),
		})
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err, "internal server error")
		utils.Error("LoginHandler: token issue failed", map[string]any{
			"username": req.Username,
			"error":    err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.LoginResponse{Token: token, User: user}, "login successful")
	helpers.LogSuccess("LoginHandler", "login successful", map[string]any{
		"username": user.Username,
		"role":     user.Role,
	})
}

// ProfileHandler handles GET /users/me
func (h *AccountHandler) ProfileHandler(c *gin.Context) {
	username := helpers.CurrentUsername(c)

	user, err := h.service.Profile(username)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}

	utils.JSONResponse(c, http.StatusOK, user, "profile retrieved successfully")
}

// MyBidsHandler handles GET /users/me/bids
func (h *AccountHandler) MyBidsHandler(c *gin.Context) {
	username := helpers.CurrentUsername(c)

	groups, err := h.service.MyBids(username)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("MyBidsHandler: error retrieving bids", map[string]any{
			"username": username,
			"error":    err.Error(),
		})
		return
	}

	if groups == nil {
		groups = []accountService.AuctionBids{}
	}

	utils.JSONResponse(c, http.StatusOK, groups, "bids retrieved successfully")
	helpers.LogSuccess("MyBidsHandler", "bids retrieved successfully", map[string]any{
		"username":      username,
		"auction_count": len(groups),
	})
}

// ListUsersHandler handles GET /admin/users
func (h *AccountHandler) ListUsersHandler(c *gin.Context) {
	username := helpers.CurrentUsername(c)

	users, err := h.service.ListUsers(username)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListUsersHandler: error listing users", map[string]any{
			"actor": username,
			"error": err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, users, "users retrieved successfully")
	helpers.LogSuccess("ListUsersHandler", "users retrieved successfully", map[string]any{
		"actor": username,
		"count": len(users),
	})
}
