// Package api provides a typed HTTP client for a REST food collection.
//
// The collection is expected to behave like a conventional resource store:
// GET /foods lists, POST /foods creates, PUT /foods/{id} replaces and
// DELETE /foods/{id} removes. Client implements domain.FoodRepository so the
// dashboard can be pointed at any such store.
package api
