package database

import (
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/totegamma/foodgram/internal/infra/database/models"
	fglogger "github.com/totegamma/foodgram/internal/logger"
)

func NewPostgres(dsn string, log *fglogger.Logger) (*gorm.DB, error) {
	gormLogger := logger.New(
		log.StdLog(),
		logger.Config{
			SlowThreshold:             300 * time.Millisecond, // Slow SQL threshold
			LogLevel:                  logger.Warn,            // Log level
			IgnoreRecordNotFoundError: true,                   // Ignore ErrRecordNotFound error for logger
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger,
	})
	return db, err
}

func Migrate(db *gorm.DB) error {
	err := db.SetupJoinTable(&models.Recipe{}, "Tags", &models.RecipeTag{})
	if err != nil {
		return err
	}

	return db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeTag{},
		&models.RecipeIngredient{},
		&models.Favorite{},
		&models.Cart{},
	)
}
