package database

import (
	"strings"

	"github.com/emph/emph-api/internal/config"
	"github.com/emph/emph-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect(cfg *config.Config) error {
	var dialector gorm.Dialector

	// Use PostgreSQL if URL starts with postgres, otherwise SQLite
	if strings.HasPrefix(cfg.DatabaseURL, "postgres") {
		dialector = postgres.Open(cfg.DatabaseURL)
	} else {
		dialector = sqlite.Open(cfg.DatabaseURL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Uniqueness violations must surface as gorm.ErrDuplicatedKey
		// so slug assignment can retry with the next suffix.
		TranslateError: true,
	})
	if err != nil {
		return err
	}

	DB = db
	return nil
}

func Migrate() error {
	return DB.AutoMigrate(
		&models.SIDSIsland{},
		&models.Client{},
		&models.ClientUser{},
		&models.SDGGoal{},
		&models.SDGTarget{},
		&models.SDGIndicator{},
		&models.Project{},
		&models.ProjectTimeline{},
		&models.ProjectMilestone{},
		&models.ProjectObjective{},
		&models.SuccessMetric{},
		&models.FundingSource{},
		&models.ProjectFunding{},
		&models.ProjectDraft{},
		&models.SDGProgressReport{},
		&models.RiskFactor{},
		&models.ProjectRisk{},
		&models.StakeholderCategory{},
		&models.ProjectStakeholder{},
	)
}
