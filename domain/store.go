package domain

// FoodStore defines the persistence contract of the REST resource store.
// Unlike FoodRepository it is synchronous and local; it is what sits behind the /foods endpoints.
type FoodStore interface {
	// GetFoods retrieves all stored foods ordered by ID.
	GetFoods() ([]*Food, error)

	// GetFood retrieves a single food by its ID.
	// It returns ErrFoodNotFound if no food exists for id.
	GetFood(id int) (*Food, error)

	// InsertFood stores a new food. When food.ID is 0 the next free ID is assigned
	// and written back into food. It returns ErrDuplicateFoodID if the ID is already taken.
	InsertFood(food *Food) error

	// ReplaceFood overwrites every field of the food identified by food.ID.
	// It returns ErrFoodNotFound if no food exists for the ID.
	ReplaceFood(food *Food) error

	// PatchFood applies the non-nil fields of patch to the food identified by id
	// and returns the updated food. It returns ErrFoodNotFound if no food exists for id.
	PatchFood(id int, patch FoodPatch) (*Food, error)

	// DeleteFood removes the food identified by id.
	// It returns ErrFoodNotFound if no food exists for id.
	DeleteFood(id int) error
}

// FoodPatch carries a partial update. Nil fields are left untouched.
type FoodPatch struct {
	Name        *string `json:"name,omitempty"`
	Image       *string `json:"image,omitempty"`
	Price       *string `json:"price,omitempty"`
	Description *string `json:"description,omitempty"`
	Available   *bool   `json:"available,omitempty"`
}

// Apply writes the non-nil fields of the patch onto food.
func (p FoodPatch) Apply(food *Food) {
	if p.Name != nil {
		food.Name = *p.Name
	}
	if p.Image != nil {
		food.Image = *p.Image
	}
	if p.Price != nil {
		food.Price = *p.Price
	}
	if p.Description != nil {
		food.Description = *p.Description
	}
	if p.Available != nil {
		food.Available = *p.Available
	}
}
