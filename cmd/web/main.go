package main

import (
	"fmt"
	"net"
	"os"

	"github.com/de-tools/fin-atlas/pkg/server"
	"github.com/de-tools/fin-atlas/pkg/services/config"
	"github.com/de-tools/fin-atlas/pkg/services/ingest"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Fin Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a YAML config file (settings can also come from FINATLAS_* variables)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.LoadAppConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	registry, err := config.NewRegistry(cfg.ProfilesPath)
	if err != nil {
		return fmt.Errorf("failed to create profile registry: %w", err)
	}

	profiles, err := registry.GetProfiles(ctx)
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}
	if _, err := registry.GetSettings(ctx, cfg.DefaultProfile); err != nil {
		return fmt.Errorf("default profile: %w", err)
	}
	logger.Info().Strs("profiles", profiles).Str("default", cfg.DefaultProfile).Msg("scoring profiles loaded")

	api := server.NewWebAPI(server.Config{
		Addr:            net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		MaxUploadBytes:  cfg.MaxUploadBytes(),
		DefaultProfile:  cfg.DefaultProfile,
		RateLimit:       cfg.RateLimit,
		Dependencies: server.Dependencies{
			Profiles: registry,
			Decoders: ingest.DefaultRegistry(),
			Logger:   logger,
		},
	})

	return api.Start()
}
