// Package domain defines the core data structures of the Platter menu dashboard.
// It contains the menu item model (Food), the payload produced by the add and edit
// forms (FoodInput), and the repository interfaces that define the contracts for
// talking to the remote food collection and for persisting it.
//
// The package has no dependencies on HTTP, SQL or any UI code. The dashboard
// controller consumes FoodRepository, the REST resource store is built on top of
// FoodStore, and both are satisfied by implementations in other packages.
package domain
