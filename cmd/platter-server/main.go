// Command platter-server serves a /foods REST collection backed by sqlite.
// It is the local development counterpart of the remote store the dashboard talks to.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/platterhq/platter/db"
	"github.com/platterhq/platter/domain"
	"github.com/platterhq/platter/menufile"
	"github.com/platterhq/platter/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("PLATTER_SERVER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:          "platter-server",
		Short:        "Serve the /foods collection for local development",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if v.GetBool("verbose") {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			ln, err := net.Listen("tcp", v.GetString("addr"))
			if err != nil {
				return fmt.Errorf("listening on %s: %w", v.GetString("addr"), err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, ln, v.GetString("db"), v.GetString("seed"), logger)
		},
	}

	flags := cmd.Flags()
	flags.String("addr", ":3333", "address to listen on")
	flags.String("db", "platter.db", "path of the sqlite database")
	flags.String("seed", "", "menu file (yaml or json) whose foods are added on startup, skipping names already stored")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	v.BindPFlags(flags)

	return cmd
}

// run serves the store on ln until ctx is done, then shuts the server down gracefully.
func run(ctx context.Context, ln net.Listener, dbPath, seed string, logger *slog.Logger) error {
	dbConn, err := db.New(dbPath)
	if err != nil {
		ln.Close()
		return fmt.Errorf("opening database: %w", err)
	}
	repo := db.NewRepo(dbConn)
	defer repo.Close()

	if seed != "" {
		if err := seedStore(repo, seed); err != nil {
			ln.Close()
			return err
		}
	}

	srv := &http.Server{
		Handler:           server.New(repo, logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("serving foods", "addr", ln.Addr().String(), "db", dbPath)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// seedStore adds the foods of the menu file to store. Entries whose name is already
// stored are skipped, so restarting with the same file adds nothing twice.
func seedStore(store domain.FoodStore, name string) error {
	inputs, err := menufile.Read(name)
	if err != nil {
		return err
	}
	existing, err := store.GetFoods()
	if err != nil {
		return fmt.Errorf("listing stored foods: %w", err)
	}
	stored := make(map[string]bool, len(existing))
	for _, food := range existing {
		stored[food.Name] = true
	}

	for _, input := range inputs {
		if stored[input.Name] {
			continue
		}
		food := input.WithID(0, true)
		if err := store.InsertFood(&food); err != nil {
			return fmt.Errorf("seeding %s: %w", input.Name, err)
		}
		stored[input.Name] = true
	}
	return nil
}
