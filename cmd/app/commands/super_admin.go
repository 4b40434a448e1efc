package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	authzUseCase "github.com/attractionops/platform/internal/authz/usecase"
)

// RunGrantSuperAdmin adds userID to the platform super admin list.
// Granting an existing super admin is a no-op.
//
// Requirements: Database must be migrated and accessible.
func RunGrantSuperAdmin(
	ctx context.Context,
	superAdminUseCase authzUseCase.SuperAdminUseCase,
	logger *slog.Logger,
	writer io.Writer,
	userID string,
	format string,
) error {
	return runSuperAdminChange(ctx, superAdminUseCase.Grant, logger, writer, userID, format, "granted")
}

// RunRevokeSuperAdmin removes userID from the platform super admin list.
// Revoking a user that is not a super admin is a no-op.
//
// Requirements: Database must be migrated and accessible.
func RunRevokeSuperAdmin(
	ctx context.Context,
	superAdminUseCase authzUseCase.SuperAdminUseCase,
	logger *slog.Logger,
	writer io.Writer,
	userID string,
	format string,
) error {
	return runSuperAdminChange(ctx, superAdminUseCase.Revoke, logger, writer, userID, format, "revoked")
}

func runSuperAdminChange(
	ctx context.Context,
	change func(context.Context, uuid.UUID) error,
	logger *slog.Logger,
	writer io.Writer,
	userID string,
	format string,
	action string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", userID, err)
	}

	if err := change(ctx, id); err != nil {
		return fmt.Errorf("failed to update super admin: %w", err)
	}

	logger.Info("super admin "+action, slog.String("user_id", id.String()))

	if format == "json" {
		return writeJSON(writer, map[string]string{
			"user_id": id.String(),
			"status":  action,
		})
	}

	_, _ = fmt.Fprintf(writer, "Super admin %s for user %s\n", action, id)
	return nil
}
