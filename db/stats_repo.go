package db

import (
	"fmt"

	"github.com/platterhq/platter/domain"
)

var _ domain.StatsRepository = (*Repository)(nil)

// CountFoods returns the total number of foods on the menu.
func (repo *Repository) CountFoods() (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM food`

	err := repo.dbConn.Get(&count, query)
	if err != nil {
		return 0, fmt.Errorf("getting food count: %w", err)
	}

	return count, nil
}

// CountAvailable returns the number of foods currently marked as available.
func (repo *Repository) CountAvailable() (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM food WHERE available = 1`

	err := repo.dbConn.Get(&count, query)
	if err != nil {
		return 0, fmt.Errorf("getting available food count: %w", err)
	}

	return count, nil
}
