package usecase

import (
	"context"
	"strings"

	authzDomain "github.com/attractionops/platform/internal/authz/domain"
	authzService "github.com/attractionops/platform/internal/authz/service"
	apperrors "github.com/attractionops/platform/internal/errors"
)

// authenticationUseCase implements AuthenticationUseCase.
type authenticationUseCase struct {
	tokenService   authzService.TokenService
	superAdminRepo SuperAdminRepository
}

// Authenticate validates the token and loads the super admin flag. A failed super
// admin lookup rejects the request instead of downgrading the principal.
func (a *authenticationUseCase) Authenticate(ctx context.Context, token string) (*authzDomain.Principal, error) {
	if strings.TrimSpace(token) == "" {
		return nil, authzDomain.ErrAuthTokenMissing()
	}

	userID, err := a.tokenService.ValidateToken(token)
	if err != nil {
		return nil, authzDomain.ErrAuthTokenInvalid()
	}

	isSuperAdmin, err := a.superAdminRepo.IsSuperAdmin(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load super admin status")
	}

	return &authzDomain.Principal{
		ID:              userID,
		IsAuthenticated: true,
		IsSuperAdmin:    isSuperAdmin,
	}, nil
}

// NewAuthenticationUseCase creates a new AuthenticationUseCase.
func NewAuthenticationUseCase(
	tokenService authzService.TokenService,
	superAdminRepo SuperAdminRepository,
) AuthenticationUseCase {
	return &authenticationUseCase{
		tokenService:   tokenService,
		superAdminRepo: superAdminRepo,
	}
}
