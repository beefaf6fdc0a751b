package database

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"kickstarter-campaigns/models"

	"gorm.io/gorm"
)

//go:embed seeds/dev.json
var devSeed []byte

// DevSeed returns the bundled development dataset.
func DevSeed() ([]models.Category, error) {
	return decodeSeed(devSeed)
}

// LoadSeedFile reads a dataset shaped like seeds/dev.json: an array of
// categories, each carrying its campaigns.
func LoadSeedFile(path string) ([]models.Category, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return decodeSeed(raw)
}

func decodeSeed(raw []byte) ([]models.Category, error) {
	var cats []models.Category
	if err := json.Unmarshal(raw, &cats); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return cats, nil
}

// Seed wipes both tables and inserts cats with their nested campaigns. Ids in
// the dataset are ignored; every row gets a fresh one.
func Seed(ctx context.Context, db *gorm.DB, cats []models.Category) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wipe := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := wipe.Delete(&models.Campaign{}).Error; err != nil {
			return fmt.Errorf("clear campaigns: %w", err)
		}
		if err := wipe.Delete(&models.Category{}).Error; err != nil {
			return fmt.Errorf("clear categories: %w", err)
		}

		for i := range cats {
			cat := cats[i]
			cat.ID = 0
			campaigns := make([]models.Campaign, len(cat.Campaigns))
			for j, c := range cat.Campaigns {
				c.ID = 0
				c.CategoryID = 0
				campaigns[j] = c
			}
			cat.Campaigns = campaigns
			if err := tx.Create(&cat).Error; err != nil {
				return fmt.Errorf("seed category %q: %w", cat.Category, err)
			}
		}
		return nil
	})
}
