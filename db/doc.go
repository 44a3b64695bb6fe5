// Package db provides the persistence layer of the Platter resource store.
// It encapsulates all interactions with the underlying SQLite database and
// implements the domain.FoodStore and domain.StatsRepository interfaces.
//
// This package is responsible for:
// - Establishing the database connection and applying migrations (`db.go`).
// - Defining the row structure that maps to the `food` table.
// - Converting between domain.Food and the database representation.
// - Managing database migrations (`migrations/`), including the seed menu.
package db
