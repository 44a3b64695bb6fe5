package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upSeedMenu, downSeedMenu)
}

type seedFood struct {
	id          int
	name        string
	description string
	price       string
	image       string
}

// seedMenu is the sample menu a fresh store starts with.
var seedMenu = []seedFood{
	{
		id:          1,
		name:        "Ao molho",
		description: "Macarrão ao molho branco, fughi e cheiro verde das montanhas.",
		price:       "19.90",
		image:       "https://storage.googleapis.com/golden-wind/bootcamp-gostack/desafio-food/food1.png",
	},
	{
		id:          2,
		name:        "Veggie",
		description: "Macarrão com pimentão, ervilha e ervas finas colhidas no himalaia.",
		price:       "21.90",
		image:       "https://storage.googleapis.com/golden-wind/bootcamp-gostack/desafio-food/food2.png",
	},
	{
		id:          3,
		name:        "A la Camarón",
		description: "Macarrão com vegetais de primeira linha e camarão dos 7 mares.",
		price:       "25.90",
		image:       "https://storage.googleapis.com/golden-wind/bootcamp-gostack/desafio-food/food3.png",
	},
}

func upSeedMenu(ctx context.Context, tx *sql.Tx) error {
	query := `INSERT INTO food (id, name, description, price, image, available) VALUES (?, ?, ?, ?, ?, 1)`
	for _, food := range seedMenu {
		_, err := tx.ExecContext(ctx, query, food.id, food.name, food.description, food.price, food.image)
		if err != nil {
			return fmt.Errorf("seeding food %d : %w", food.id, err)
		}
	}
	return nil
}

func downSeedMenu(ctx context.Context, tx *sql.Tx) error {
	for _, food := range seedMenu {
		if _, err := tx.ExecContext(ctx, `DELETE FROM food WHERE id = ?`, food.id); err != nil {
			return fmt.Errorf("removing seeded food %d : %w", food.id, err)
		}
	}
	return nil
}
