package command

import (
	"context"
	"fmt"

	"github.com/andsetyobudi/ban-bengkel/shared/models"
	"github.com/andsetyobudi/ban-bengkel/shared/utils"
	"github.com/rs/zerolog/log"
)

type AdminCreator interface {
	CreateIfMissing(ctx context.Context, admin *models.Admin) (bool, error)
}

type AdminCommandService struct {
	admins AdminCreator
}

func NewAdminCommandService(admins AdminCreator) *AdminCommandService {
	return &AdminCommandService{admins: admins}
}

// EnsureAdmin creates the admin account unless the username is already taken.
// An existing account keeps its current password.
func (s *AdminCommandService) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	created, err := s.admins.CreateIfMissing(ctx, &models.Admin{
		Username:     username,
		Nama:         username,
		PasswordHash: hash,
	})
	if err != nil {
		return fmt.Errorf("failed to bootstrap admin: %w", err)
	}
	if created {
		log.Info().Str("username", username).Msg("bootstrap admin created")
	}
	return nil
}
