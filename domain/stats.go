package domain

// StatsRepository defines the interface for retrieving statistics about the stored menu.
type StatsRepository interface {
	// CountFoods returns the total number of foods on the menu.
	CountFoods() (int, error)
	// CountAvailable returns the number of foods currently marked as available.
	CountAvailable() (int, error)
}
