package credential

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/carrental/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateShape(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"aaa.bbb.ccc", true},
		{"eyJhbGciOiJIUzI1NiJ9.eyJpZCI6IjEifQ.sig", true},
		{"", false},
		{"abc", false},
		{"a.b", false},
		{"a.b.c.d", false},
		{"..", false},
		{"a..c", false},
		{".b.c", false},
		{"a.b.", false},
		{"Bearer a.b.c", true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateShape(tt.raw))
		})
	}
}

func TestCredential_PresentAndRedacted(t *testing.T) {
	assert.False(t, Credential("").Present())
	assert.True(t, Credential("a.b.c").Present())

	assert.Equal(t, "*****", Credential("a.b.c").Redacted())
	assert.Equal(t, "…456789", Credential("abc.def.123456789").Redacted())
}

func signed(t *testing.T, claims jwt.Claims) Credential {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return Credential(s)
}

func TestInspect_RegisteredClaims(t *testing.T) {
	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	iat := exp.Add(-24 * time.Hour)
	c := signed(t, jwt.RegisteredClaims{
		Subject:   "user-42",
		IssuedAt:  jwt.NewNumericDate(iat),
		ExpiresAt: jwt.NewNumericDate(exp),
	})

	claims, err := Inspect(c)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.Subject)
	assert.True(t, exp.Equal(claims.ExpiresAt))
	assert.True(t, iat.Equal(claims.IssuedAt))
	assert.False(t, claims.Expired(exp.Add(-time.Second)))
	assert.True(t, claims.Expired(exp.Add(time.Second)))
}

func TestInspect_BareIDPayload(t *testing.T) {
	c := signed(t, jwt.MapClaims{"id": "66b0f1"})

	claims, err := Inspect(c)
	require.NoError(t, err)
	assert.Equal(t, "66b0f1", claims.Subject)
	assert.True(t, claims.ExpiresAt.IsZero())
	assert.False(t, claims.Expired(time.Now()), "no expiry means never expired")
}

func TestInspect_DoesNotVerifySignature(t *testing.T) {
	c := signed(t, jwt.RegisteredClaims{Subject: "u"})
	tampered := Credential(string(c[:len(c)-4]) + "AAAA")

	claims, err := Inspect(tampered)
	require.NoError(t, err)
	assert.Equal(t, "u", claims.Subject)
}

func TestInspect_Malformed(t *testing.T) {
	for _, raw := range []Credential{"", "abc", "a.b.c"} {
		_, err := Inspect(raw)
		require.Error(t, err)
		assert.True(t, errors.Is(err, common.ErrMalformedCredential), "raw %q: %v", raw, err)
	}
}
