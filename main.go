package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/ballot-workflow/auth"
	"github.com/danielhkuo/ballot-workflow/ballot"
	"github.com/danielhkuo/ballot-workflow/cliparse"
	"github.com/danielhkuo/ballot-workflow/db"
	"github.com/danielhkuo/ballot-workflow/middleware"
	"github.com/danielhkuo/ballot-workflow/router"
)

func main() {
	var err error

	// Load .env before reading the environment
	if err := cliparse.LoadDotEnv(".env"); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	if cfg.SignPrincipal != "" {
		fmt.Println(auth.SignPrincipal(cfg.SignPrincipal, cfg.PrincipalSalt))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional notification journal
	var sinks []ballot.Sink
	journalDone := make(chan struct{})
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer dbConn.Close()

		if err := db.CreateSchema(dbConn); err != nil {
			slog.Error("schema creation failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Journal ready", "type", cfg.DatabaseType)

		journal := db.NewJournal(dbConn, cfg.DatabaseType, 1024)
		sinks = append(sinks, journal)
		go func() {
			journal.Run(ctx)
			close(journalDone)
		}()
	} else {
		close(journalDone)
	}

	b, err := ballot.New(ballot.Config{
		Administrator: ballot.Principal(cfg.AdminPrincipal),
		TestMode:      cfg.TestMode,
		Sinks:         sinks,
	})
	if err != nil {
		slog.Error("ballot creation failed", "error", err)
		os.Exit(1)
	}
	if cfg.TestMode {
		slog.Warn("Test mode enabled, POST /reset is routed")
	}

	// Create router
	mux := router.NewRouter(b, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		slog.Error("listen failed", "error", err)
		os.Exit(1)
	}

	// Start server
	slog.Info("Listening", "port", cfg.Port, "administrator", cfg.AdminPrincipal)
	if err := serve(&server, ln, ctrlc, shutdownTimeout); err != nil {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed")
	}

	// No handler can publish anymore; flush the journal before exiting
	cancel()
	<-journalDone
}

const shutdownTimeout = 10 * time.Second

// serve runs server on ln until a signal arrives on stop, then shuts it down,
// waiting up to timeout for in-flight requests to finish.
func serve(server *http.Server, ln net.Listener, stop <-chan os.Signal, timeout time.Duration) error {
	errc := make(chan error, 1)
	go func() {
		errc <- server.Serve(ln)
	}()

	select {
	case err := <-errc:
		return err
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
