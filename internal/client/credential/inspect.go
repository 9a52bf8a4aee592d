package credential

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/carrental/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the subset of token claims shown to the user.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that lies before now.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// Inspect decodes the claims of c WITHOUT verifying its signature. The result
// is informational and must not drive authentication decisions.
func Inspect(c Credential) (Claims, error) {
	if !ValidateShape(string(c)) {
		return Claims{}, common.ErrMalformedCredential
	}

	tok, _, err := jwt.NewParser().ParseUnverified(string(c), jwt.MapClaims{})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", common.ErrMalformedCredential, err)
	}
	rc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, common.ErrMalformedCredential
	}

	var out Claims
	if sub, err := rc.GetSubject(); err == nil {
		out.Subject = sub
	}
	if out.Subject == "" {
		// the marketplace server signs the bare user id as the payload
		if id, ok := rc["id"].(string); ok {
			out.Subject = id
		}
	}
	if iat, err := rc.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	if exp, err := rc.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}
