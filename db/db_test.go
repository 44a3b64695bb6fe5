package db

import (
	"os"
	"testing"

	"github.com/platterhq/platter/domain"
)

// seededFoods is the number of foods the seed migration inserts.
const seededFoods = 3

func setupTestDB(t *testing.T) (*Repository, func()) {
	t.Helper()

	tempFile, err := os.CreateTemp(t.TempDir(), "test_*.db")
	if err != nil {
		t.Fatalf("os.CreateTemp() failed: %v", err)
	}
	tempFile.Close()

	dbConn, err := New(tempFile.Name())
	if err != nil {
		t.Fatalf("db.New() failed: %v", err)
	}

	repo := NewRepo(dbConn)

	teardown := func() {
		repo.Close()
		os.Remove(tempFile.Name())
	}

	return repo, teardown
}

func testFood(t *testing.T, repo *Repository, name string, available bool) *domain.Food {
	t.Helper()

	food := &domain.Food{
		Name:        name,
		Image:       "https://platter.test/" + name + ".png",
		Price:       "12.50",
		Description: name + " description",
		Available:   available,
	}

	if err := repo.InsertFood(food); err != nil {
		t.Fatalf("inserting food %q: %v", name, err)
	}
	return food
}

func TestNew(t *testing.T) {
	t.Run("should apply migrations and seed the menu", func(t *testing.T) {
		repo, teardown := setupTestDB(t)
		defer teardown()

		var count int
		if err := repo.dbConn.Get(&count, "SELECT COUNT(*) FROM food"); err != nil {
			t.Fatalf("counting foods: %v", err)
		}

		if count != seededFoods {
			t.Fatalf("\nwanted:\n%d\ngot:\n%d", seededFoods, count)
		}
	})

	t.Run("should be able to reopen an existing database", func(t *testing.T) {
		path := t.TempDir() + "/reopen.db"

		first, err := New(path)
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		first.Close()

		second, err := New(path)
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		defer second.Close()

		var count int
		if err := second.Get(&count, "SELECT COUNT(*) FROM food"); err != nil {
			t.Fatalf("counting foods: %v", err)
		}

		if count != seededFoods {
			t.Fatalf("\nwanted:\n%d\ngot:\n%d", seededFoods, count)
		}
	})
}
