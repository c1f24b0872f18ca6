package migration

import (
	"gorm.io/gorm"

	"github.com/artloom/artloom-backend/internal/domain"
	"github.com/artloom/artloom-backend/pkg/logger"
)

// Run migrates the artifact version graph schema. AutoMigrate is additive;
// it never drops columns or data.
func Run(db *gorm.DB) error {
	models := []interface{}{
		&domain.Artifact{},
		&domain.Version{},
		&domain.Branch{},
		&domain.Comparison{},
		&domain.Fork{},
	}

	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			return err
		}
	}

	logger.GetLogger().Info().Int("tables", len(models)).Msg("schema migration complete")
	return nil
}
