package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	filecms "github.com/goliatone/go-filecms"
	"github.com/goliatone/go-filecms/internal/logging"
	"github.com/goliatone/go-filecms/internal/web"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("filecms: %v", err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("filecms", flag.ExitOnError)
	addr := fs.String("addr", ":8080", "Listen address")
	documentRoot := fs.String("document-root", "data", "Directory holding the document files")
	credentialFile := fs.String("credential-file", "users.yml", "YAML file mapping usernames to password hashes")
	sessionTTL := fs.Duration("session-ttl", 24*time.Hour, "Session lifetime (0 disables expiry)")
	logLevel := fs.String("log-level", "info", "Log level (trace, debug, info, warn, error, fatal)")
	logFormat := fs.String("log-format", "console", "Log format (json, console, pretty)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := filecms.DefaultConfig()
	cfg.Documents.Root = *documentRoot
	cfg.Credentials.Path = *credentialFile
	cfg.Sessions.TTL = *sessionTTL
	cfg.Server.Addr = *addr
	cfg.Logging.Level = *logLevel
	cfg.Logging.Format = *logFormat

	module, err := filecms.New(cfg)
	if err != nil {
		return fmt.Errorf("initialize module: %w", err)
	}

	if err := module.CredentialStore().EnsureFile(); err != nil {
		return fmt.Errorf("seed credential file: %w", err)
	}

	server, err := web.NewServer(module)
	if err != nil {
		return fmt.Errorf("initialize server: %w", err)
	}

	logger := module.Logger(logging.RootModule)

	errs := make(chan error, 1)
	go func() {
		errs <- server.Serve(cfg.Server.Addr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errs:
		return err
	case sig := <-quit:
		logger.Info("server.shutdown", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
