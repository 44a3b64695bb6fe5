package db

import (
	"errors"
	"reflect"
	"testing"

	"github.com/platterhq/platter/domain"
)

func TestFoodRepo_GetFoods(t *testing.T) {
	t.Run("should return the seeded menu ordered by id", func(t *testing.T) {
		repo, teardown := setupTestDB(t)
		defer teardown()

		got, err := repo.GetFoods()
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		if len(got) != seededFoods {
			t.Fatalf("\nwanted:\n%d\ngot:\n%d", seededFoods, len(got))
		}

		for i, food := range got {
			if food.ID != i+1 {
				t.Fatalf("\nwanted:\n%d\ngot:\n%d", i+1, food.ID)
			}
			if !food.Available {
				t.Fatalf("wanted seeded food %d to be available", food.ID)
			}
		}

		if got[0].Name != "Ao molho" {
			t.Fatalf("\nwanted:\n%q\ngot:\n%q", "Ao molho", got[0].Name)
		}
	})
}

func TestFoodRepo_GetFood(t *testing.T) {
	t.Run("should return the food with the given id", func(t *testing.T) {
		repo, teardown := setupTestDB(t)
		defer teardown()

		want := testFood(t, repo, "Lasagna", false)

		got, err := repo.GetFood(want.ID)
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		if !reflect.DeepEqual(want, got) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", want, got)
		}
	})

	t.Run("should return ErrFoodNotFound for an unknown id", func(t *testing.T) {
		repo, teardown := setupTestDB(t)
		defer teardown()

		_, err := repo.GetFood(999)
		if !errors.Is(err, domain.ErrFoodNotFound) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", domain.ErrFoodNotFound, err)
		}
	})
}

func TestFoodRepo_InsertFood(t *testing.T) {
	t.Run("should assign the next id when none is given", func(t *testing.T) {
		repo, teardown := setupTestDB(t)
		defer teardown()

		food := testFood(t, repo, "Gnocchi", true)

		if food.ID != seededFoods+1 {
			t.Fatalf("\nwanted:\n%d\ngot:\n%d", seededFoods+1, food.ID)
		}
	})

	t.Run("should keep a caller supplied id", func(t *testing.T) {
		repo, teardown := setupTestDB(t)
		defer teardown()

		food := &domain.Food{ID: 42, Name: "Risotto", Price: "30.00", Available: true}
		if err := repo.InsertFood(food); err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		got, err := repo.GetFood(42)
		if err != nil {
			t.Fatalf("getting food 42: %v", err)
		}

		if got.Name != "Risotto" {
			t.Fatalf("\nwanted:\n%q\ngot:\n%q", "Risotto", got.Name)
		}
	})

	t.Run("should reject a duplicate id", func(t *testing.T) {
		repo, teardown := setupTestDB(t)
		defer teardown()

		err := repo.InsertFood(&domain.Food{ID: 1, Name: "Clash"})
		if !errors.Is(err, domain.ErrDuplicateFoodID) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", domain.ErrDuplicateFoodID, err)
		}

		got, err := repo.GetFood(1)
		if err != nil {
			t.Fatalf("getting food 1: %v", err)
		}
		if got.Name == "Clash" {
			t.Fatalf("wanted the existing food 1 to be untouched")
		}
	})
}

func TestFoodRepo_ReplaceFood(t *testing.T) {
	t.Run("should overwrite every field", func(t *testing.T) {
		repo, teardown := setupTestDB(t)
		defer teardown()

		want := &domain.Food{
			ID:          2,
			Name:        "Veggie Deluxe",
			Image:       "https://platter.test/deluxe.png",
			Price:       "23.90",
			Description: "Now with more peppers",
			Available:   false,
		}

		if err := repo.ReplaceFood(want); err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		got, err := repo.GetFood(2)
		if err != nil {
			t.Fatalf("getting food 2: %v", err)
		}

		if !reflect.DeepEqual(want, got) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", want, got)
		}
	})

	t.Run("should return ErrFoodNotFound for an unknown id", func(t *testing.T) {
		repo, teardown := setupTestDB(t)
		defer teardown()

		err := repo.ReplaceFood(&domain.Food{ID: 999, Name: "Ghost"})
		if !errors.Is(err, domain.ErrFoodNotFound) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", domain.ErrFoodNotFound, err)
		}
	})
}

func TestFoodRepo_PatchFood(t *testing.T) {
	t.Run("should only change the given fields", func(t *testing.T) {
		repo, teardown := setupTestDB(t)
		defer teardown()

		before, err := repo.GetFood(3)
		if err != nil {
			t.Fatalf("getting food 3: %v", err)
		}

		available := false
		price := "27.90"
		got, err := repo.PatchFood(3, domain.FoodPatch{Available: &available, Price: &price})
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		want := *before
		want.Available = false
		want.Price = "27.90"

		if !reflect.DeepEqual(&want, got) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", &want, got)
		}

		stored, err := repo.GetFood(3)
		if err != nil {
			t.Fatalf("getting food 3: %v", err)
		}
		if !reflect.DeepEqual(&want, stored) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", &want, stored)
		}
	})

	t.Run("should return ErrFoodNotFound for an unknown id", func(t *testing.T) {
		repo, teardown := setupTestDB(t)
		defer teardown()

		_, err := repo.PatchFood(999, domain.FoodPatch{})
		if !errors.Is(err, domain.ErrFoodNotFound) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", domain.ErrFoodNotFound, err)
		}
	})
}

func TestFoodRepo_DeleteFood(t *testing.T) {
	t.Run("should delete the food", func(t *testing.T) {
		repo, teardown := setupTestDB(t)
		defer teardown()

		if err := repo.DeleteFood(1); err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		_, err := repo.GetFood(1)
		if !errors.Is(err, domain.ErrFoodNotFound) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", domain.ErrFoodNotFound, err)
		}
	})

	t.Run("should return ErrFoodNotFound for an unknown id", func(t *testing.T) {
		repo, teardown := setupTestDB(t)
		defer teardown()

		err := repo.DeleteFood(999)
		if !errors.Is(err, domain.ErrFoodNotFound) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", domain.ErrFoodNotFound, err)
		}
	})
}
