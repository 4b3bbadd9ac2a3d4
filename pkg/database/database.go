package database

import (
	"fmt"
	"log"

	"quizzer_backend/internal/config"
	"quizzer_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// InitDB opens the connection and, when migrate is set, runs the schema
// migration. Release deployments skip migration unless forced via -migrate.
func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if migrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		log.Println("Database migration completed")
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Quiz{},
		&model.QuizVersion{},
		&model.QuizQuestion{},
		&model.QuizConvocatory{},
		&model.QuizSubmission{},
		&model.Certificate{},
	)
}

// SeedRootUser upserts the bootstrap admin account by email.
func SeedRootUser(db *gorm.DB, email, name string) error {
	if email == "" {
		return nil
	}
	root := model.User{
		Name:   name,
		Email:  email,
		Status: model.UserStatusEnabled,
		Role:   model.UserRoleAdmin,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "role"}),
	}).Create(&root).Error
}
