// Command platter manages a food menu held by a remote REST collection.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/platterhq/platter"
	"github.com/spf13/cobra"
)

// app carries the global flags and the logger shared by every subcommand.
type app struct {
	configDir string
	baseURL   string
	verbose   bool

	logger *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "platter",
		Short: "Manage the food menu of a platter dashboard",
		Long: `platter lists and edits the foods of a remote /foods collection.

Every command first loads the collection so the local list mirrors the remote
store, then applies the change. Failed remote calls are logged and reported.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if a.verbose {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configDir, "config-dir", defaultConfigDir(), "directory holding config.yaml")
	flags.StringVar(&a.baseURL, "base-url", "", "root of the remote food collection (remembered in the config dir)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newListCmd(a),
		newAddCmd(a),
		newEditCmd(a),
		newToggleCmd(a),
		newDeleteCmd(a),
		newImportCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

func defaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".platter"
	}
	return filepath.Join(dir, "platter")
}

// dashboard builds the controller from the global flags and loads the remote list.
func (a *app) dashboard(cmd *cobra.Command) (*platter.Dashboard, error) {
	options := []func(*platter.Dashboard) error{
		platter.WithLogger(a.logger),
		platter.WithConfigDir(a.configDir),
	}
	if cmd.Flags().Changed("base-url") {
		options = append(options, platter.WithBaseURL(a.baseURL))
	}

	d, err := platter.New(options...)
	if err != nil {
		return nil, fmt.Errorf("creating dashboard: %w", err)
	}
	a.logger.Debug("loading foods", "base_url", d.Config.BaseURL)

	if err := d.Load(cmd.Context()); err != nil {
		return nil, err
	}
	return d, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the platter version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "platter", platter.Version)
		},
	}
}
