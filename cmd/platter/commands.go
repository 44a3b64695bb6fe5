package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/platterhq/platter"
	"github.com/platterhq/platter/domain"
	"github.com/platterhq/platter/menufile"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the foods of the menu",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.dashboard(cmd)
			if err != nil {
				return err
			}
			return printFoods(cmd.OutOrStdout(), d.Foods()...)
		},
	}
}

func newAddCmd(a *app) *cobra.Command {
	var input domain.FoodInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an available food to the menu",
		Example: `  platter add --name "Ao molho" --price 19.90 \
    --image https://example.com/ao-molho.png --description "Macarrão com molho"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(input.Name) == "" {
				return errors.New("--name is required")
			}
			d, err := a.dashboard(cmd)
			if err != nil {
				return err
			}
			food, err := d.AddFood(cmd.Context(), input)
			if err != nil {
				return err
			}
			return printFoods(cmd.OutOrStdout(), food)
		},
	}
	bindFoodFlags(cmd.Flags(), &input)
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	var input domain.FoodInput

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a food; flags that are not given keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			d, err := a.dashboard(cmd)
			if err != nil {
				return err
			}
			current, ok := d.Food(id)
			if !ok {
				return fmt.Errorf("food %d: %w", id, domain.ErrFoodNotFound)
			}

			d.EditFood(current)
			updated, err := d.UpdateFood(cmd.Context(), mergeInput(cmd.Flags(), current.Input(), input))
			if err != nil {
				return err
			}
			return printFoods(cmd.OutOrStdout(), updated)
		},
	}
	bindFoodFlags(cmd.Flags(), &input)
	return cmd
}

func newToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip the availability of a food",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			d, err := a.dashboard(cmd)
			if err != nil {
				return err
			}
			food, err := d.ToggleAvailable(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printFoods(cmd.OutOrStdout(), food)
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a food from the menu",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			d, err := a.dashboard(cmd)
			if err != nil {
				return err
			}
			if err := d.DeleteFood(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted food %d\n", id)
			return nil
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|url>",
		Short: "Add every food of a YAML or JSON menu file",
		Long: `Reads a menu file and adds each entry as a new available food.

The file is either a list of foods or a json-server style document with a
"foods" key. YAML (.yaml, .yml) and JSON with comments (.json, .jsonc) are
supported. http and https URLs are downloaded first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.dashboard(cmd)
			if err != nil {
				return err
			}

			var inputs []domain.FoodInput
			if source := args[0]; strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
				client := &http.Client{Timeout: d.Config.Timeout}
				inputs, err = menufile.Fetch(cmd.Context(), client, source)
			} else {
				inputs, err = menufile.Read(source)
			}
			if err != nil {
				return err
			}

			added := make([]domain.Food, 0, len(inputs))
			for _, input := range inputs {
				food, err := d.AddFood(cmd.Context(), input)
				if err != nil {
					return fmt.Errorf("imported %d of %d foods: %w", len(added), len(inputs), err)
				}
				added = append(added, food)
			}
			return printFoods(cmd.OutOrStdout(), added...)
		},
	}
}

func bindFoodFlags(flags *pflag.FlagSet, input *domain.FoodInput) {
	flags.StringVar(&input.Name, "name", "", "name of the dish")
	flags.StringVar(&input.Price, "price", "", `price as shown on the menu, e.g. "19.90"`)
	flags.StringVar(&input.Image, "image", "", "URL of the dish photo")
	flags.StringVar(&input.Description, "description", "", "text shown under the name")
}

// mergeInput overlays the flags that were set on the command line onto current.
func mergeInput(flags *pflag.FlagSet, current, input domain.FoodInput) domain.FoodInput {
	if flags.Changed("name") {
		current.Name = input.Name
	}
	if flags.Changed("price") {
		current.Price = input.Price
	}
	if flags.Changed("image") {
		current.Image = input.Image
	}
	if flags.Changed("description") {
		current.Description = input.Description
	}
	return current
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid food id %q", arg)
	}
	return id, nil
}

func newConfigCmd(a *app) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the persisted settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := platter.LoadConfig(a.configDir)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("base-url") {
				if err := cfg.SetBaseURL(a.baseURL); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("timeout") {
				if err := cfg.SetTimeout(timeout); err != nil {
					return err
				}
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "config_dir: %s\n", cfg.ConfigDir)
			fmt.Fprintf(w, "base_url: %s\n", cfg.BaseURL)
			fmt.Fprintf(w, "timeout: %s\n", cfg.Timeout)
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", platter.DefaultTimeout, "per-request timeout")
	return cmd
}
