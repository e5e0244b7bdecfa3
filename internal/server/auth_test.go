package server

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"auction-house/internal/models"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	signed, err := issuer.Issue(models.UserView{Username: "alice", Role: models.RoleAdmin})
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := issuer.Parse(signed)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Subject)
	require.Equal(t, models.RoleAdmin, claims.Role)
}

func TestTokenIssuer_RejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")
	other := NewTokenIssuer("different-secret")

	signed, err := issuer.Issue(models.UserView{Username: "alice", Role: models.RoleUser})
	require.NoError(t, err)

	_, err = other.Parse(signed)
	require.Error(t, err)
}

func TestTokenIssuer_RejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")
	issuer.ttl = -time.Minute

	signed, err := issuer.Issue(models.UserView{Username: "alice", Role: models.RoleUser})
	require.NoError(t, err)

	_, err = issuer.Parse(signed)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenIssuer_RejectsNonHMAC(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	// alg=none tokens must never verify.
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "alice"})
	signed, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = issuer.Parse(signed)
	require.Error(t, err)
}
