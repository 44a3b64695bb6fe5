package domain

import (
	"context"
	"errors"
)

var (
	// ErrFoodNotFound is returned when no food exists for the requested ID.
	ErrFoodNotFound = errors.New("food not found")

	// ErrDuplicateFoodID is returned when a food is inserted with an ID that is already taken.
	ErrDuplicateFoodID = errors.New("duplicate food id")
)

// FoodRepository defines the remote food collection as seen by the dashboard.
// Implementations issue one request per call and do not retry.
type FoodRepository interface {
	// ListFoods retrieves every food in the collection, in the order the remote returns them.
	ListFoods(ctx context.Context) ([]Food, error)

	// CreateFood stores a new food. The ID is chosen by the caller.
	// It returns the food as echoed back by the remote.
	CreateFood(ctx context.Context, food Food) (Food, error)

	// ReplaceFood overwrites the food identified by food.ID with the given object.
	// It returns the food as echoed back by the remote.
	ReplaceFood(ctx context.Context, food Food) (Food, error)

	// DeleteFood removes the food identified by id.
	DeleteFood(ctx context.Context, id int) error
}

// Food represents a single menu item.
type Food struct {
	ID          int    `json:"id" yaml:"id"`                   // Identifier within the collection.
	Name        string `json:"name" yaml:"name"`               // Display name of the dish.
	Image       string `json:"image" yaml:"image"`             // URL of the dish photo.
	Price       string `json:"price" yaml:"price"`             // Price as entered in the form, e.g. "19.90".
	Description string `json:"description" yaml:"description"` // Free text shown under the name.
	Available   bool   `json:"available" yaml:"available"`     // Whether the dish can currently be ordered.
}

// FoodInput is the payload produced by the add and edit forms.
// It is a Food without the ID and the availability flag, both of which are owned by the dashboard.
type FoodInput struct {
	Name        string `json:"name" yaml:"name"`
	Image       string `json:"image" yaml:"image"`
	Price       string `json:"price" yaml:"price"`
	Description string `json:"description" yaml:"description"`
}

// WithID builds a Food from the input using the given id and availability.
func (in FoodInput) WithID(id int, available bool) Food {
	return Food{
		ID:          id,
		Name:        in.Name,
		Image:       in.Image,
		Price:       in.Price,
		Description: in.Description,
		Available:   available,
	}
}

// Input returns the form fields of the food.
func (f Food) Input() FoodInput {
	return FoodInput{
		Name:        f.Name,
		Image:       f.Image,
		Price:       f.Price,
		Description: f.Description,
	}
}
