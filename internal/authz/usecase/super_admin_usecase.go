package usecase

import (
	"context"

	"github.com/google/uuid"

	apperrors "github.com/attractionops/platform/internal/errors"
)

// superAdminUseCase implements SuperAdminUseCase.
type superAdminUseCase struct {
	superAdminRepo SuperAdminRepository
}

// Grant adds userID to the platform super admin list.
func (s *superAdminUseCase) Grant(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "user id is required")
	}
	return s.superAdminRepo.Grant(ctx, userID)
}

// Revoke removes userID from the platform super admin list.
func (s *superAdminUseCase) Revoke(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "user id is required")
	}
	return s.superAdminRepo.Revoke(ctx, userID)
}

// NewSuperAdminUseCase creates a new SuperAdminUseCase.
func NewSuperAdminUseCase(superAdminRepo SuperAdminRepository) SuperAdminUseCase {
	return &superAdminUseCase{superAdminRepo: superAdminRepo}
}
