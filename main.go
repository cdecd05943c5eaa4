package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/classrep/archive"
	"github.com/danielhkuo/classrep/auth"
	"github.com/danielhkuo/classrep/cliparse"
	"github.com/danielhkuo/classrep/election"
	"github.com/danielhkuo/classrep/kvstore"
	"github.com/danielhkuo/classrep/middleware"
	"github.com/danielhkuo/classrep/notify"
	"github.com/danielhkuo/classrep/router"
	"github.com/danielhkuo/classrep/tokens"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env is fine
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	level, _ := cfg.SlogLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if cfg.PrintAdminKey {
		fmt.Println(auth.GenerateAdminKey(auth.AdminScopeResults, cfg.AdminKeySalt))
		return
	}

	ctx := context.Background()

	// Open the record store
	store, err := kvstore.Open(ctx, kvstore.Options{
		Type:          cfg.DatabaseType,
		DatabaseURL:   cfg.DatabaseURL,
		EtcdEndpoints: cfg.EtcdEndpoints,
	})
	if err != nil {
		slog.Error("store connection failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Store ready", "type", cfg.DatabaseType)

	var notifier notify.Notifier = notify.Log{}
	if cfg.SMTP.Host != "" {
		notifier = notify.NewSMTP(notify.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
		slog.Info("Sending email via SMTP", "host", cfg.SMTP.Host)
	} else {
		slog.Warn("SMTP_HOST not set, links are logged instead of emailed")
	}

	var archiver election.Archiver
	if cfg.S3.Bucket != "" {
		s3, err := archive.NewS3(ctx, archive.S3Config{
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
		})
		if err != nil {
			slog.Error("S3 archive setup failed", "error", err)
			os.Exit(1)
		}
		archiver = s3
		slog.Info("Archiving snapshots to S3", "bucket", cfg.S3.Bucket)
	}

	svc := election.New(election.Deps{
		Store:     store,
		Tokens:    tokens.New(store, nil),
		Hasher:    auth.NewHasher(cfg.IdentitySalt),
		Notifier:  notifier,
		PublicURL: cfg.PublicURL,
	}, election.Config{
		RegistrationTTL: cfg.RegistrationTTL,
		VotingTTL:       cfg.VotingTTL,
		ForbidSelfVote:  cfg.ForbidSelfVote,
		Archiver:        archiver,
	})

	// Create router
	mux := router.NewRouter(svc, cfg)

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Warn("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
