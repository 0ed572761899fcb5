package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/wb-service/portal/backend/internal/models"
	"github.com/wb-service/portal/backend/internal/types"
	"gorm.io/gorm"
)

// AuthService resolves bearer tokens to employee ids
type AuthService struct {
	db        *gorm.DB
	jwtSecret []byte
	now       func() time.Time
}

// Ensure AuthService implements IAuthService
var _ IAuthService = (*AuthService)(nil)

// NewAuthService creates a new AuthService. With an empty jwtSecret only
// tokens stored in auth_tokens are accepted.
func NewAuthService(db *gorm.DB, jwtSecret string, now func() time.Time) *AuthService {
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		db:        db,
		jwtSecret: []byte(jwtSecret),
		now:       now,
	}
}

// ValidateToken accepts a valid HS256 token carrying an eid claim, or a
// stored unexpired token.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, Unauthorized("missing token")
	}
	if len(s.jwtSecret) > 0 && strings.Count(token, ".") == 2 {
		if eid, err := s.parseSigned(token); err == nil {
			return eid, nil
		}
	}

	var stored models.AuthToken
	err := s.db.WithContext(ctx).Where("token = ?", token).Take(&stored).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, Unauthorized("invalid token")
	}
	if err != nil {
		return 0, fmt.Errorf("lookup token: %w", err)
	}
	if stored.ExpiresAt != nil && !stored.ExpiresAt.After(s.now()) {
		return 0, Unauthorized("token has expired")
	}
	return stored.EmployeeEID, nil
}

func (s *AuthService) parseSigned(token string) (int64, error) {
	claims := &types.TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return 0, err
	}
	if !parsed.Valid || claims.EID <= 0 {
		return 0, errors.New("token carries no employee")
	}
	return claims.EID, nil
}

// GenerateToken signs a token for eid valid for ttl
func (s *AuthService) GenerateToken(eid int64, ttl time.Duration) (string, error) {
	if len(s.jwtSecret) == 0 {
		return "", errors.New("jwt secret is not configured")
	}
	now := s.now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", eid),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		EID: eid,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}
