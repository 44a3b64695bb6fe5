// Package platter provides the state layer of a food-menu management dashboard.
// It keeps a local list of menu items in sync with a remote REST collection and is
// decoupled from any UI: a front end renders Foods() and calls the handlers when the
// user adds, edits, toggles or deletes an item.
//
// The core functionality includes:
//   - Loading the menu from the remote /foods collection
//   - Creating, replacing and deleting items with optimistic local updates
//   - Tracking the add and edit form surfaces and the item under edit
//   - A change hook so the UI can re-render after every local mutation
//
// Remote failures are logged and returned. Nothing is retried and local state is
// never rolled back, so after a failure the local list may differ from the remote store.
package platter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/platterhq/platter/domain"
)

// ErrNotEditing is returned by UpdateFood when no food has been selected with EditFood.
var ErrNotEditing = errors.New("no food is being edited")

// Dashboard is the menu controller. It holds the authoritative local list of foods
// and mediates every mutation against the remote collection.
type Dashboard struct {
	Config   *Config                   // Settings the remote client was built from
	Repo     domain.FoodRepository     // Remote food collection
	Logger   *slog.Logger              // Receives one error entry per failed remote call
	OnChange func(foods []domain.Food) // Called with a snapshot after each local mutation

	mu           sync.Mutex
	addMu        sync.Mutex // held by AddFood from picking the id until the append
	foods        []domain.Food
	editing      domain.Food
	addFormOpen  bool
	editFormOpen bool
}

// New creates a Dashboard with an empty menu and applies any provided options.
// When no option set a configuration, DefaultConfig is used, and when no repository
// was configured, an HTTP client for the configured base URL is built.
//
// Parameters:
//   - options: Variadic list of option functions to configure the dashboard
//
// Returns:
//   - *Dashboard: Configured dashboard with an empty local list
//   - error: Configuration error if any option fails
func New(options ...func(*Dashboard) error) (*Dashboard, error) {
	dashboard := &Dashboard{
		foods:  make([]domain.Food, 0),
		Logger: slog.Default(),
	}
	err := dashboard.WithOptions(options...)
	if err != nil {
		return nil, err
	}
	if dashboard.Config == nil {
		dashboard.Config = DefaultConfig()
	}
	if dashboard.Repo == nil {
		dashboard.Repo = newRemote(dashboard.Config)
	}
	return dashboard, nil
}

// Foods returns a copy of the local list in display order.
func (d *Dashboard) Foods() []domain.Food {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.foods)
}

// Food returns the local item with the given id.
func (d *Dashboard) Food(id int) (domain.Food, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	i := d.indexOf(id)
	if i < 0 {
		return domain.Food{}, false
	}
	return d.foods[i], true
}

// Load replaces the local list with the remote collection.
// On failure the local list is left as it was.
func (d *Dashboard) Load(ctx context.Context) error {
	foods, err := d.Repo.ListFoods(ctx)
	if err != nil {
		d.Logger.Error("get foods failed", "op", "load", "error", err)
		return fmt.Errorf("loading foods: %w", err)
	}

	d.mu.Lock()
	d.foods = slices.Clone(foods)
	snapshot := slices.Clone(d.foods)
	d.mu.Unlock()

	d.notify(snapshot)
	return nil
}

// AddFood creates a new available food from the add form payload.
// The ID is the local list length plus one. The food is appended locally only
// after the remote accepted it. Concurrent calls are serialized so each one
// gets a distinct ID.
func (d *Dashboard) AddFood(ctx context.Context, input domain.FoodInput) (domain.Food, error) {
	d.addMu.Lock()
	defer d.addMu.Unlock()

	d.mu.Lock()
	food := input.WithID(len(d.foods)+1, true)
	d.mu.Unlock()

	if _, err := d.Repo.CreateFood(ctx, food); err != nil {
		d.Logger.Error("add food failed", "op", "add", "food_id", food.ID, "error", err)
		return domain.Food{}, fmt.Errorf("adding food %d: %w", food.ID, err)
	}

	d.mu.Lock()
	d.foods = append(d.foods, food)
	snapshot := slices.Clone(d.foods)
	d.mu.Unlock()

	d.notify(snapshot)
	return food, nil
}

// EditFood selects food as the item under edit and toggles the edit form.
func (d *Dashboard) EditFood(food domain.Food) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.editing = food
	d.editFormOpen = !d.editFormOpen
}

// EditingFood returns the item selected by the last EditFood call.
func (d *Dashboard) EditingFood() domain.Food {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.editing
}

// UpdateFood applies the edit form payload to the item under edit.
// The local list is updated first; the ID and availability of the item under edit are kept.
// A failed PUT is logged and returned without reverting the local change.
func (d *Dashboard) UpdateFood(ctx context.Context, input domain.FoodInput) (domain.Food, error) {
	d.mu.Lock()
	if d.editing.ID == 0 {
		d.mu.Unlock()
		return domain.Food{}, ErrNotEditing
	}
	updated := input.WithID(d.editing.ID, d.editing.Available)
	replaced := false
	if i := d.indexOf(updated.ID); i >= 0 {
		d.foods[i] = updated
		replaced = true
	}
	snapshot := slices.Clone(d.foods)
	d.mu.Unlock()

	if replaced {
		d.notify(snapshot)
	}

	if _, err := d.Repo.ReplaceFood(ctx, updated); err != nil {
		d.Logger.Error("update food failed", "op", "update", "food_id", updated.ID, "error", err)
		return updated, fmt.Errorf("updating food %d: %w", updated.ID, err)
	}
	return updated, nil
}

// ToggleAvailable flips the availability of the item with the given id and sends the
// full object to the remote. The local flip is not reverted when the request fails.
func (d *Dashboard) ToggleAvailable(ctx context.Context, id int) (domain.Food, error) {
	d.mu.Lock()
	i := d.indexOf(id)
	if i < 0 {
		d.mu.Unlock()
		return domain.Food{}, fmt.Errorf("toggling food %d: %w", id, domain.ErrFoodNotFound)
	}
	d.foods[i].Available = !d.foods[i].Available
	toggled := d.foods[i]
	if d.editing.ID == id {
		d.editing.Available = toggled.Available
	}
	snapshot := slices.Clone(d.foods)
	d.mu.Unlock()

	d.notify(snapshot)

	if _, err := d.Repo.ReplaceFood(ctx, toggled); err != nil {
		d.Logger.Error("toggle availability failed", "op", "toggle", "food_id", id, "error", err)
		return toggled, fmt.Errorf("toggling food %d: %w", id, err)
	}
	return toggled, nil
}

// DeleteFood removes the item with the given id locally and then from the remote.
// An id that is not in the local list leaves the list untouched; the remote delete is still sent.
func (d *Dashboard) DeleteFood(ctx context.Context, id int) error {
	d.mu.Lock()
	removed := false
	if i := d.indexOf(id); i >= 0 {
		d.foods = slices.Delete(d.foods, i, i+1)
		removed = true
	}
	snapshot := slices.Clone(d.foods)
	d.mu.Unlock()

	if removed {
		d.notify(snapshot)
	}

	if err := d.Repo.DeleteFood(ctx, id); err != nil {
		d.Logger.Error("delete food failed", "op", "delete", "food_id", id, "error", err)
		return fmt.Errorf("deleting food %d: %w", id, err)
	}
	return nil
}

// ToggleAddForm opens or closes the add form.
func (d *Dashboard) ToggleAddForm() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.addFormOpen = !d.addFormOpen
}

// ToggleEditForm opens or closes the edit form.
func (d *Dashboard) ToggleEditForm() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.editFormOpen = !d.editFormOpen
}

// AddFormOpen reports whether the add form is open.
func (d *Dashboard) AddFormOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.addFormOpen
}

// EditFormOpen reports whether the edit form is open.
func (d *Dashboard) EditFormOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.editFormOpen
}

// indexOf must be called with d.mu held.
func (d *Dashboard) indexOf(id int) int {
	return slices.IndexFunc(d.foods, func(food domain.Food) bool {
		return food.ID == id
	})
}

func (d *Dashboard) notify(snapshot []domain.Food) {
	if d.OnChange != nil {
		d.OnChange(snapshot)
	}
}
