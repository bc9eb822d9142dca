package database

import (
	"aura_edu_backend/internal/config"
	"aura_edu_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func dialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.DBName,
			cfg.Charset,
			cfg.ParseTime,
		)
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host,
			cfg.Port,
			cfg.User,
			cfg.Password,
			cfg.DBName,
			cfg.SSLMode,
		)
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func InitDB(cfg *config.DatabaseConfig, mode string) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Warn
	if mode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(d, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Database connection established (%s)", cfg.Driver)
	return db, nil
}

// Migrate creates the schema and seeds the badge catalogue when empty.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Lesson{},
		&model.Topic{},
		&model.CodeExample{},
		&model.Activity{},
		&model.Submission{},
		&model.ActivityCompletion{},
		&model.Achievement{},
		&model.UserAchievement{},
		&model.LearningSession{},
		&model.AuraBotMessage{},
	)
	if err != nil {
		return err
	}

	log.Println("Database migration completed")

	var count int64
	db.Model(&model.Achievement{}).Count(&count)
	if count == 0 {
		for _, a := range model.DefaultAchievements {
			a := a
			if err := db.Create(&a).Error; err != nil {
				return fmt.Errorf("seed achievement %s: %w", a.Code, err)
			}
		}
	}

	return nil
}
