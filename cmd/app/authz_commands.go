package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/attractionops/platform/cmd/app/commands"
	"github.com/attractionops/platform/internal/app"
	"github.com/attractionops/platform/internal/config"
)

func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}

func userIDFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "user-id",
		Aliases:  []string{"u"},
		Required: true,
		Usage:    "User ID (UUID) as issued by the identity provider",
	}
}

func getAuthzCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "grant-super-admin",
			Usage: "Grant platform super admin access to a user",
			Flags: []cli.Flag{userIDFlag(), formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				superAdminUseCase, err := container.SuperAdminUseCase()
				if err != nil {
					return err
				}

				return commands.RunGrantSuperAdmin(
					ctx,
					superAdminUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("user-id"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "revoke-super-admin",
			Usage: "Revoke platform super admin access from a user",
			Flags: []cli.Flag{userIDFlag(), formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				superAdminUseCase, err := container.SuperAdminUseCase()
				if err != nil {
					return err
				}

				return commands.RunRevokeSuperAdmin(
					ctx,
					superAdminUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("user-id"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "issue-token",
			Usage: "Issue a signed bearer token for a user (development and operations)",
			Flags: []cli.Flag{
				userIDFlag(),
				&cli.DurationFlag{
					Name:    "ttl",
					Aliases: []string{"t"},
					Usage:   "Token lifetime (defaults to AUTH_TOKEN_EXPIRATION_SECONDS)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				tokenService, err := container.TokenService()
				if err != nil {
					return err
				}

				ttl := cmd.Duration("ttl")
				if ttl == 0 {
					ttl = cfg.AuthTokenExpiration
				}

				return commands.RunIssueToken(
					tokenService,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("user-id"),
					ttl,
					cmd.String("format"),
				)
			},
		},
	}
}
