package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"auction-house/internal/accountService"
	"auction-house/internal/auctionService"
	"auction-house/internal/registry"
	"auction-house/internal/server"
	"auction-house/services/auction/helpers"
)

// SetupTestRouter builds the full application router against a fresh
// in-memory registry for integration testing.
func SetupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	reg := registry.NewRegistry()
	accounts := accountService.NewAccountService(reg)
	auctions := auctionService.NewAuctionService(reg)
	tokens := server.NewTokenIssuer("integration-test-secret")
	return server.SetupRouter(accounts, auctions, tokens)
}

// ExecuteRequestAndParse executes an HTTP request on the given router and
// parses the JSON envelope. An optional bearer token is attached when non-empty.
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any, token string) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 && w.Header().Get("Content-Type") != "text/plain; charset=utf-8" {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}

	return resp, w
}

// RegisterAndLogin registers a user through the API and returns a session token.
func RegisterAndLogin(t *testing.T, router *gin.Engine, username, password, role string) string {
	t.Helper()

	_, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/auth/register", helpers.RegisterRequest{
		Username: username,
		Password: password,
		Email:    username + "@example.com",
		Role:     role,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/auth/login", helpers.LoginRequest{
		Username: username,
		Password: password,
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	data := resp["data"].(map[string]any)
	token := data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// CreateAuctionViaAPI creates an auction through the API and returns its id.
func CreateAuctionViaAPI(t *testing.T, router *gin.Engine, token string, req helpers.CreateAuctionRequest) string {
	t.Helper()

	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/auctions", req, token)
	require.Equal(t, http.StatusCreated, w.Code)

	data := resp["data"].(map[string]any)
	id := data["auction_id"].(string)
	require.NotEmpty(t, id)
	return id
}
