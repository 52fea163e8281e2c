package service

import (
	"time"

	"github.com/kamelin22/user-api/internal/userapi/domain"
	"github.com/kamelin22/user-api/pkg/jwtx"
)

// TokenService issues bearer tokens for authenticated users. The claims are
// exactly the identity pair {id, username}; nothing sensitive leaves the
// server inside a token.
type TokenService struct {
	Signer jwtx.Signer
	Issuer string
	TTL    time.Duration
}

// Issue signs a token for the user.
func (s *TokenService) Issue(u domain.User) (string, error) {
	claims := jwtx.NewUserClaims(u.ID, u.Username, s.Issuer, s.TTL, time.Now().UTC())
	return s.Signer.Sign(claims)
}
