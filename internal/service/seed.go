package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/bruinrecruit/recruitment-service/internal/auth"
	"github.com/bruinrecruit/recruitment-service/internal/domain"
	"github.com/bruinrecruit/recruitment-service/internal/repository"
)

// seedSeasonLength matches the window the development fixture has always used.
const seedSeasonLength = 2000000 * time.Second

// SeedDevData creates an admin, a standard user and an open season. Records
// that already exist are left alone.
func SeedDevData(ctx context.Context, users repository.UserRepository, seasons repository.SeasonRepository, password string, bcryptCost int, logger *zap.Logger) error {
	hash, err := auth.HashPassword(password, bcryptCost)
	if err != nil {
		return err
	}

	for email, access := range map[string]domain.AccessType{
		"admin@ucla.edu":  domain.AccessTypeAdmin,
		"normal@ucla.edu": domain.AccessTypeStandard,
	} {
		err := users.Create(ctx, &domain.User{
			Email:        email,
			PasswordHash: hash,
			AccessType:   access,
			State:        domain.UserStateActive,
		})
		if err != nil && !errors.Is(err, repository.ErrDuplicateEmail) {
			return err
		}
	}

	now := time.Now().UTC()
	err = seasons.Create(ctx, &domain.Season{
		Name:      "Test Season",
		StartDate: now.Add(-time.Minute),
		EndDate:   now.Add(seedSeasonLength),
	})
	if err != nil && !errors.Is(err, repository.ErrSeasonOverlap) {
		return err
	}

	logger.Info("development data seeded")
	return nil
}
