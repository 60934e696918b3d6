package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andsetyobudi/ban-bengkel/shared/cqrs"
	"github.com/andsetyobudi/ban-bengkel/shared/middleware"
	"github.com/andsetyobudi/ban-bengkel/shared/models"
	"github.com/andsetyobudi/ban-bengkel/shared/utils"
	"github.com/golang-jwt/jwt/v5"
)

const DefaultTokenTTL = 24 * time.Hour

// AdminFinder looks up admin accounts by username.
type AdminFinder interface {
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
}

// AuthQueryService handles admin login. There's no CommandService for auth
// because login doesn't mutate application state.
type AuthQueryService struct {
	admins AdminFinder
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthQueryService(admins AdminFinder, secret []byte, ttl time.Duration) *AuthQueryService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &AuthQueryService{admins: admins, secret: secret, ttl: ttl, now: time.Now}
}

func (s *AuthQueryService) Login(ctx context.Context, cmd cqrs.LoginCommand) (string, error) {
	admin, err := s.admins.GetByUsername(ctx, cmd.Username)
	if err != nil {
		if errors.Is(err, models.ErrAdminNotFound) {
			return "", models.ErrInvalidCredentials
		}
		return "", err
	}
	if !utils.CheckPassword(cmd.Password, admin.PasswordHash) {
		return "", models.ErrInvalidCredentials
	}
	return s.generateToken(admin)
}

func (s *AuthQueryService) generateToken(admin *models.Admin) (string, error) {
	now := s.now()
	claims := middleware.Claims{
		AdminID:  admin.ID,
		Username: admin.Username,
		Role:     middleware.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   admin.Username,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return signed, nil
}
