package catalog

import (
	"fmt"

	"craftwarden/core/item"

	"gorm.io/gorm"
)

// RecipeRecord is the durable form of a recipe. Only the identity, the
// display label and the wanted quantity survive a restart; transient
// fields (stored, error, job handle) are recomputed from live state.
type RecipeRecord struct {
	ID            uint   `gorm:"primaryKey" json:"-"`
	Name          string `gorm:"size:255;uniqueIndex:idx_recipe_identity" json:"name"`
	Damage        int    `gorm:"uniqueIndex:idx_recipe_identity" json:"damage"`
	IdentityLabel string `gorm:"size:255;uniqueIndex:idx_recipe_identity" json:"identity_label,omitempty"`
	Label         string `gorm:"size:255" json:"label"`
	Wanted        int    `json:"wanted"`
}

// TableName sets the table name for RecipeRecord.
func (RecipeRecord) TableName() string {
	return "recipes"
}

// RequiredColumns are the recipe table columns the daemon depends on,
// checked at startup against pre-existing databases.
var RequiredColumns = []string{"id", "name", "damage", "identity_label", "label", "wanted"}

// Store persists the catalog through GORM.
type Store struct {
	db *gorm.DB
}

// NewStore migrates the recipe table and returns a store bound to db.
func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&RecipeRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate recipe table: %w", err)
	}
	return &Store{db: db}, nil
}

// Load reads the persisted catalog. A missing or empty table yields an
// empty catalog, not an error.
func (s *Store) Load() (*Catalog, error) {
	var records []RecipeRecord
	if err := s.db.Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	c := New()
	for _, rec := range records {
		c.Add(&Recipe{
			Identity: item.Identity{Name: rec.Name, Damage: rec.Damage, Label: rec.IdentityLabel},
			Label:    rec.Label,
			Wanted:   rec.Wanted,
		})
	}
	return c, nil
}

// Save replaces the durable rows with the catalog's current entries in
// one transaction. Transient recipe state is not written.
func (s *Store) Save(c *Catalog) error {
	records := Records(c)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&RecipeRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Create(&records).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save catalog: %w", err)
	}
	return nil
}

// Records returns the durable representation of the catalog, in catalog
// order.
func Records(c *Catalog) []RecipeRecord {
	records := make([]RecipeRecord, 0, c.Len())
	for _, r := range c.Recipes() {
		records = append(records, RecipeRecord{
			Name:          r.Identity.Name,
			Damage:        r.Identity.Damage,
			IdentityLabel: r.Identity.Label,
			Label:         r.Label,
			Wanted:        r.Wanted,
		})
	}
	return records
}
