package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wrmarte/MuscleRHB/pkg/channels"
	"github.com/wrmarte/MuscleRHB/pkg/config"
	"github.com/wrmarte/MuscleRHB/pkg/logger"
	"github.com/wrmarte/MuscleRHB/pkg/moralis"
	"github.com/wrmarte/MuscleRHB/pkg/pimps"
	"github.com/wrmarte/MuscleRHB/pkg/ratelimit"
	"github.com/wrmarte/MuscleRHB/pkg/wallet"
)

var (
	version   = "dev"
	gitCommit string
)

const logo = "💪"

var configPath string

func main() {
	root := &cobra.Command{
		Use:           "musclerhb",
		Short:         "Discord community bot for the CryptoPimps collection",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runBot,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "musclerhb.json", "Path to config file")
	root.AddCommand(newRunCmd(), newVersionCmd(), newConfigCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the bot",
		RunE:  runBot,
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			v := version
			if gitCommit != "" {
				v += fmt.Sprintf(" (git: %s)", gitCommit)
			}
			fmt.Printf("%s musclerhb %s\n", logo, v)
			fmt.Printf("  Go: %s\n", runtime.Version())
		},
	}
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(configPath); err == nil {
				return fmt.Errorf("config already exists at %s", configPath)
			}
			if err := config.SaveConfig(configPath, config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("%s Wrote default config to %s\n", logo, configPath)
			return nil
		},
	})
	return cmd
}

func runBot(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger.SetLevel(logger.ParseLevel(cfg.Logging.Level))
	if cfg.Logging.File != "" {
		if err := logger.EnableFileLogging(cfg.Logging.File); err != nil {
			return fmt.Errorf("enable file logging: %w", err)
		}
	}

	logger.InfoCF("main", "Starting MuscleRHB", map[string]any{
		"version":    version,
		"collection": cfg.Collection.Name,
	})

	store, err := wallet.NewSQLiteStore(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("open wallet store: %w", err)
	}
	defer store.Close()

	directory := wallet.NewDirectory(store)

	nft := moralis.NewClient(moralis.Options{
		APIKey:           cfg.Moralis.APIKey,
		BaseURL:          cfg.Moralis.BaseURL,
		Chain:            cfg.Moralis.Chain,
		PageSize:         cfg.Moralis.PageSize,
		Timeout:          time.Duration(cfg.Moralis.TimeoutSeconds) * time.Second,
		IPFSGateway:      cfg.Collection.IPFSGateway,
		PlaceholderImage: cfg.Collection.PlaceholderImage,
	})

	discord, err := channels.NewDiscordChannel(cfg.Discord, channels.DiscordDeps{
		Directory:  directory,
		Pimps:      pimps.NewService(directory, nft, cfg.Collection.Contract),
		Limiter:    ratelimit.NewLimiter(cfg.RateLimits.CommandsPerMinute),
		Collection: cfg.Collection,
	})
	if err != nil {
		return fmt.Errorf("create discord channel: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := discord.Start(ctx); err != nil {
		return fmt.Errorf("start discord channel: %w", err)
	}

	<-ctx.Done()
	logger.InfoC("main", "Shutting down")

	shutdownCtx := context.Background()
	if err := discord.Stop(shutdownCtx); err != nil {
		logger.ErrorCF("main", "Error stopping discord channel", map[string]any{
			"error": err.Error(),
		})
	}

	return nil
}
