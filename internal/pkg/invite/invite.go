package invite

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidInvite = errors.New("invalid invite token")
	ErrExpiredInvite = errors.New("invite token expired")
)

// Claims binds an invite token to the entitlement it grants. The token
// expires exactly when the entitlement does, so a leaked invite is worthless
// once the pass runs out.
type Claims struct {
	EntitlementID uuid.UUID `json:"entitlement_id"`
	BuyerID       string    `json:"buyer_id"`
	jwt.RegisteredClaims
}

type Service struct {
	secretKey []byte
}

func NewService(secretKey string) *Service {
	return &Service{secretKey: []byte(secretKey)}
}

func (s *Service) Mint(entitlementID uuid.UUID, buyerID string, issuedAt, expiresAt time.Time) (string, error) {
	claims := Claims{
		EntitlementID: entitlementID,
		BuyerID:       buyerID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

func (s *Service) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidInvite
		}
		return s.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredInvite
		}
		return nil, ErrInvalidInvite
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidInvite
	}

	return claims, nil
}
