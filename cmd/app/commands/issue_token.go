package commands

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	authzService "github.com/attractionops/platform/internal/authz/service"
)

// RunIssueToken signs a bearer token for userID valid for ttl. It is meant for local
// development and operational access; production tokens come from the identity provider.
func RunIssueToken(
	tokenService authzService.TokenService,
	logger *slog.Logger,
	writer io.Writer,
	userID string,
	ttl time.Duration,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", userID, err)
	}

	if ttl <= 0 {
		return fmt.Errorf("token lifetime must be positive, got %s", ttl)
	}

	token, err := tokenService.IssueToken(id, ttl)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	expiresAt := time.Now().UTC().Add(ttl)
	logger.Info("token issued",
		slog.String("user_id", id.String()),
		slog.Time("expires_at", expiresAt),
	)

	if format == "json" {
		return writeJSON(writer, map[string]string{
			"access_token": token,
			"token_type":   "Bearer",
			"expires_at":   expiresAt.Format(time.RFC3339),
		})
	}

	_, _ = fmt.Fprintf(writer, "Token: %s\n", token)
	_, _ = fmt.Fprintf(writer, "Expires at: %s\n", expiresAt.Format(time.RFC3339))
	return nil
}
