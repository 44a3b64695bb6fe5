package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/platterhq/platter/domain"
)

var _ domain.FoodStore = (*Repository)(nil)

// dbFood represents a food as stored in the database.
type dbFood struct {
	ID          int    `db:"id"`          // Primary key, also the public food ID.
	Name        string `db:"name"`        // Display name.
	Image       string `db:"image"`       // Image URL.
	Price       string `db:"price"`       // Price as entered.
	Description string `db:"description"` // Description text.
	Available   bool   `db:"available"`   // Availability flag.
}

// toDomainFood converts a dbFood to a domain.Food.
func toDomainFood(dbFood *dbFood) *domain.Food {
	return &domain.Food{
		ID:          dbFood.ID,
		Name:        dbFood.Name,
		Image:       dbFood.Image,
		Price:       dbFood.Price,
		Description: dbFood.Description,
		Available:   dbFood.Available,
	}
}

// fromDomainFood converts a domain.Food to a dbFood.
func fromDomainFood(food *domain.Food) *dbFood {
	return &dbFood{
		ID:          food.ID,
		Name:        food.Name,
		Image:       food.Image,
		Price:       food.Price,
		Description: food.Description,
		Available:   food.Available,
	}
}

// GetFoods retrieves all foods ordered by ID.
func (repo *Repository) GetFoods() ([]*domain.Food, error) {
	var dbFoods []*dbFood
	query := `SELECT id, name, image, price, description, available FROM food ORDER BY id`

	err := repo.dbConn.Select(&dbFoods, query)
	if err != nil {
		return nil, fmt.Errorf("getting foods: %w", err)
	}

	foods := make([]*domain.Food, len(dbFoods))
	for i, dbFood := range dbFoods {
		foods[i] = toDomainFood(dbFood)
	}
	return foods, nil
}

// GetFood retrieves a single food by ID.
func (repo *Repository) GetFood(id int) (*domain.Food, error) {
	var row dbFood
	query := `SELECT id, name, image, price, description, available FROM food WHERE id = ?`

	err := repo.dbConn.Get(&row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("getting food %d: %w", id, domain.ErrFoodNotFound)
		}
		return nil, fmt.Errorf("getting food %d: %w", id, err)
	}

	return toDomainFood(&row), nil
}

// InsertFood stores a new food. A zero ID lets SQLite pick the next rowid, which is written back into food.
func (repo *Repository) InsertFood(food *domain.Food) error {
	tx, err := repo.dbConn.Beginx()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	row := fromDomainFood(food)

	if row.ID != 0 {
		var count int
		if err := tx.Get(&count, `SELECT COUNT(*) FROM food WHERE id = ?`, row.ID); err != nil {
			return fmt.Errorf("checking food id %d: %w", row.ID, err)
		}
		if count > 0 {
			return fmt.Errorf("inserting food %d: %w", row.ID, domain.ErrDuplicateFoodID)
		}

		query := `INSERT INTO food (id, name, image, price, description, available)
		          VALUES (:id, :name, :image, :price, :description, :available)`
		if _, err := tx.NamedExec(query, row); err != nil {
			return fmt.Errorf("inserting food %d: %w", row.ID, err)
		}
	} else {
		query := `INSERT INTO food (name, image, price, description, available)
		          VALUES (:name, :image, :price, :description, :available)`
		result, err := tx.NamedExec(query, row)
		if err != nil {
			return fmt.Errorf("inserting food %q: %w", row.Name, err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("fetching inserted id: %w", err)
		}
		food.ID = int(id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing food %d: %w", food.ID, err)
	}
	return nil
}

// ReplaceFood overwrites every column of the food identified by food.ID.
func (repo *Repository) ReplaceFood(food *domain.Food) error {
	query := `UPDATE food
	          SET name = :name, image = :image, price = :price, description = :description, available = :available
	          WHERE id = :id`

	result, err := repo.dbConn.NamedExec(query, fromDomainFood(food))
	if err != nil {
		return fmt.Errorf("replacing food %d: %w", food.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("fetching rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("replacing food %d: %w", food.ID, domain.ErrFoodNotFound)
	}
	return nil
}

// PatchFood applies a partial update and returns the resulting food.
func (repo *Repository) PatchFood(id int, patch domain.FoodPatch) (*domain.Food, error) {
	tx, err := repo.dbConn.Beginx()
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	var row dbFood
	err = tx.Get(&row, `SELECT id, name, image, price, description, available FROM food WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("patching food %d: %w", id, domain.ErrFoodNotFound)
		}
		return nil, fmt.Errorf("patching food %d: %w", id, err)
	}

	food := toDomainFood(&row)
	patch.Apply(food)

	query := `UPDATE food
	          SET name = :name, image = :image, price = :price, description = :description, available = :available
	          WHERE id = :id`
	if _, err := tx.NamedExec(query, fromDomainFood(food)); err != nil {
		return nil, fmt.Errorf("patching food %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing patch for food %d: %w", id, err)
	}
	return food, nil
}

// DeleteFood removes the food identified by id.
func (repo *Repository) DeleteFood(id int) error {
	query := `DELETE FROM food WHERE id = ?`

	result, err := repo.dbConn.Exec(query, id)
	if err != nil {
		return fmt.Errorf("deleting food %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deletion rows affected for %d: %w", id, err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("deleting food %d: %w", id, domain.ErrFoodNotFound)
	}
	return nil
}
