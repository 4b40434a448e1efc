package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/attractionops/platform/cmd/app/commands"
	"github.com/attractionops/platform/internal/app"
	"github.com/attractionops/platform/internal/config"
)

func getFeatureFlagCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "set-feature-flag",
			Usage: "Create or replace a feature flag definition",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "key",
					Aliases:  []string{"k"},
					Required: true,
					Usage:    "Flag key (lowercase letters, digits, '-', '_' and '.')",
				},
				&cli.StringFlag{
					Name:  "name",
					Usage: "Human-readable flag name",
				},
				&cli.StringFlag{
					Name:  "description",
					Usage: "Flag description",
				},
				&cli.BoolFlag{
					Name:  "enabled",
					Value: false,
					Usage: "Global switch; nothing is unlocked while disabled",
				},
				&cli.IntFlag{
					Name:    "rollout",
					Aliases: []string{"r"},
					Value:   0,
					Usage:   "Rollout percentage (0-100)",
				},
				&cli.StringSliceFlag{
					Name:  "org",
					Usage: "Organization ID to allowlist (repeatable or comma-separated)",
				},
				&cli.StringSliceFlag{
					Name:  "user",
					Usage: "User ID to allowlist (repeatable or comma-separated)",
				},
				&cli.StringFlag{
					Name:    "metadata",
					Aliases: []string{"m"},
					Usage:   `JSON object, e.g. '{"tier":"pro","module":true}'`,
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				flagUseCase, err := container.FeatureFlagUseCase()
				if err != nil {
					return err
				}

				return commands.RunSetFeatureFlag(
					ctx,
					flagUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					commands.SetFeatureFlagOptions{
						Key:               cmd.String("key"),
						Name:              cmd.String("name"),
						Description:       cmd.String("description"),
						Enabled:           cmd.Bool("enabled"),
						RolloutPercentage: int(cmd.Int("rollout")),
						OrgAllowlist:      cmd.StringSlice("org"),
						UserAllowlist:     cmd.StringSlice("user"),
						MetadataJSON:      cmd.String("metadata"),
					},
					cmd.String("format"),
				)
			},
		},
	}
}
