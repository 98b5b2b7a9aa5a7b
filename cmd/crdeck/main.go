package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/youruser/crdeck/internal/api"
	"github.com/youruser/crdeck/internal/cards"
	"github.com/youruser/crdeck/internal/config"
	"github.com/youruser/crdeck/internal/deck"
	"github.com/youruser/crdeck/internal/feed"
	imagepkg "github.com/youruser/crdeck/internal/image"
	"github.com/youruser/crdeck/internal/logging"
)

var (
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "crdeck",
	Short: "Clash Royale deck companion",
	Long: `crdeck serves a Clash Royale card catalog and analyzes eight-card decks.

Set CLASH_API_TOKEN to read cards from the official API; without it the
public RoyaleAPI data mirror is used.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		level := cfg.Log.Level
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(level, cfg.Log.Development)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	// Default behavior: run the API.
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func init() {
	defaultConfig := os.Getenv("CRDECK_CONFIG")
	if defaultConfig == "" {
		defaultConfig = "crdeck.toml"
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfig, "path to TOML config")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.AddCommand(serveCmd, analyzeCmd, cardsCmd, trophiesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newFeed() (*feed.Client, error) {
	timeout, err := cfg.UpstreamTimeout()
	if err != nil {
		return nil, err
	}
	return feed.New(feed.Config{
		Token:       cfg.Upstream.Token,
		OfficialURL: cfg.Upstream.OfficialURL,
		MirrorURL:   cfg.Upstream.MirrorURL,
		Timeout:     timeout,
	}, logger), nil
}

// baseCatalog is the built-in catalog extended with data/cards.csv when present.
func baseCatalog() (cards.Catalog, error) {
	extra, err := cards.LoadCatalogDir(cfg.Data.Dir)
	if err != nil {
		return cards.Catalog{}, fmt.Errorf("failed to load local catalog: %w", err)
	}
	if len(extra) > 0 {
		logger.Info("loaded local catalog", zap.String("dir", cfg.Data.Dir), zap.Int("cards", len(extra)))
	}
	return cards.DefaultCatalog().Merge(extra), nil
}

func analysisOptions() deck.Options {
	return deck.Options{
		HeavyThreshold:      cfg.Analysis.HeavyThreshold,
		LightThreshold:      cfg.Analysis.LightThreshold,
		CheckLight:          cfg.Analysis.CheckLight,
		BuildingMinTrophies: cfg.Analysis.BuildingMinTrophies,
	}
}

func serve() error {
	client, err := newFeed()
	if err != nil {
		return err
	}
	base, err := baseCatalog()
	if err != nil {
		// Best-effort, as with the card files at startup.
		logger.Warn("continuing with built-in catalog", zap.Error(err))
		base = cards.DefaultCatalog()
	}
	iconTimeout, err := cfg.ImageTimeout()
	if err != nil {
		return err
	}

	var limiter *rate.Limiter
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
	}

	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	r := api.NewEngine(&api.Server{
		Feed:        client,
		BaseCatalog: base,
		Options:     analysisOptions(),
		Icons:       imagepkg.NewDownloader(cfg.Images.IconBase, iconTimeout),
		Limiter:     limiter,
		Logger:      logger,
	})

	addr := ":" + cfg.Server.Port
	logger.Info("starting server",
		zap.String("addr", addr),
		zap.String("source", client.Select().Name),
		zap.Int("base_cards", base.Len()))
	if err := r.Run(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
