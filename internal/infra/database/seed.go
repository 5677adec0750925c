package database

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rice-crc/daastapi/internal/infra/database/models"
)

// SeedEntityTypes inserts the entity types used by this project. Existing
// rows are left untouched so the seed can be re-run.
func SeedEntityTypes(db *gorm.DB) error {
	items := []models.EntityType{
		{
			Name:      "Voyages",
			URLLabel:  "Linked voyage id={key}",
			URLFormat: "https://voyages-api-staging.crc.rice.edu/admin/voyage/voyage/{key}/change",
		},
		{
			Name:      "Enslaved",
			URLLabel:  "Linked enslaved id={key}",
			URLFormat: "https://www.slavevoyages.org/enslaved/{key}/variables",
		},
		{
			Name:      "Enslavers",
			URLLabel:  "Linked enslaver id={key}",
			URLFormat: "https://www.slavevoyages.org/enslaver/{key}/variables",
		},
		{
			Name:      "Voyage sources",
			URLLabel:  "Linked voyage source id={key}",
			URLFormat: "https://voyages-api-staging.crc.rice.edu/admin/document/page/{key}/change/",
		},
	}

	for _, item := range items {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&item).Error
		if err != nil {
			return err
		}
	}
	return nil
}
