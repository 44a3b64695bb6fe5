// Package server implements a small REST resource store for the /foods collection.
//
// It mirrors the behaviour of the json-server fixture the dashboard was developed
// against, so the dashboard, its CLI and its tests have a real collection to talk
// to. Persistence is delegated to a domain.FoodStore.
package server
