package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aryannaik/foundation-site/internal/config"
	"github.com/aryannaik/foundation-site/internal/content"
	"github.com/aryannaik/foundation-site/internal/fizzy"
	"github.com/aryannaik/foundation-site/internal/index"
	"github.com/aryannaik/foundation-site/internal/mailer"
	"github.com/aryannaik/foundation-site/internal/roadmap"
	"github.com/aryannaik/foundation-site/internal/server"
)

var (
	version = "dev"
	commit  = "none"
)

var flagIndexOut string

var rootCmd = &cobra.Command{
	Use:          "foundation-site",
	Short:        "Foundation website backend",
	Long:         "foundation-site serves the foundation website, its search index, the public roadmap and the contact form.",
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the search index and write it as JSON",
	RunE:  runIndex,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("foundation-site %s (commit: %s)\n", version, commit)
	},
}

func init() {
	indexCmd.Flags().StringVarP(&flagIndexOut, "out", "o", "static/search-index.json", "output path for the index")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runIndex(cmd *cobra.Command, args []string) error {
	entries, err := content.SearchIndex()
	if err != nil {
		return fmt.Errorf("building search index: %w", err)
	}
	idx := index.New(entries)
	if err := idx.WriteFile(flagIndexOut); err != nil {
		return err
	}
	log.WithFields(log.Fields{"entries": idx.Len(), "path": flagIndexOut}).Info("index.written")
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := log.StandardLogger()
	cfg.ApplyLogging(logger)

	entries, err := content.SearchIndex()
	if err != nil {
		return fmt.Errorf("building search index: %w", err)
	}
	idx := index.New(entries)
	logger.WithField("entries", idx.Len()).Info("index.built")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rc, err := newRedis(cfg.RedisURL)
	if err != nil {
		return err
	}
	if rc != nil {
		defer rc.Close()
	}

	svc := newRoadmapService(cfg, rc, logger)
	defer svc.Wait()
	if svc.Configured() && rc != nil && cfg.CacheTTL > 0 && cfg.RefreshInterval > 0 {
		sched := roadmap.NewScheduler(svc, cfg.RefreshInterval, logger)
		if err := sched.Start(ctx); err != nil {
			return err
		}
		defer sched.Stop()
	}

	m := mailer.New(mailer.Config{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.Username,
		Password: cfg.Mail.Password,
		TLS:      cfg.Mail.TLS,
		From:     cfg.Mail.From,
		To:       cfg.Mail.To,
	}, logger)
	if !m.Enabled() {
		logger.Warn("mailer.disabled")
	}

	e := server.New(server.Deps{
		Index:     idx,
		Roadmap:   svc,
		Mailer:    m,
		StaticDir: cfg.StaticDir,
		Logger:    logger,
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Server listening on http://localhost:%s", cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Warn("server.shutdown.failed")
	}
	return nil
}

func newRedis(url string) (*redis.Client, error) {
	if url == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	return redis.NewClient(opts), nil
}

func newRoadmapService(cfg *config.Config, rc *redis.Client, logger *log.Logger) *roadmap.Service {
	if missing := cfg.Fizzy.Missing(); len(missing) > 0 {
		logger.WithField("missing", missing).Warn("roadmap.disabled")
		return roadmap.Unconfigured(missing, logger)
	}
	client := fizzy.NewClient(cfg.Fizzy.BaseURL, cfg.Fizzy.AccountSlug, cfg.Fizzy.Token, fizzy.WithLogger(logger))
	var source roadmap.Source = roadmap.NewFizzySource(client, cfg.Fizzy.BoardID, cfg.Fizzy.IndexedBy)
	if rc != nil && cfg.CacheTTL > 0 {
		source = roadmap.NewCache(source, rc, cfg.CacheTTL, cfg.Fizzy.BoardID)
	}
	return roadmap.NewService(source, logger)
}
