// Manual demo-data seeder.
//
// Loads a small quiz with one version, a question bank and an open
// convocatory rostering the root user, so a fresh install has something to
// attempt against.
//
// Usage: go run scripts/seed_demo.go
package main

import (
	"log"
	"os"
	"time"

	"quizzer_backend/internal/config"
	"quizzer_backend/internal/model"
	"quizzer_backend/pkg/database"
	"quizzer_backend/pkg/logger"

	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("cannot read config file: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("cannot parse config file: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg.Database, true)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	root := model.User{
		Name:   "Root",
		Email:  "admin@quizzer.local",
		Status: model.UserStatusEnabled,
		Role:   model.UserRoleAdmin,
	}
	if err := db.Where("email = ?", root.Email).FirstOrCreate(&root).Error; err != nil {
		log.Fatalf("seed root user: %v", err)
	}

	quiz := model.Quiz{Subject: "Go fundamentals"}
	if err := db.Where("subject = ?", quiz.Subject).FirstOrCreate(&quiz).Error; err != nil {
		log.Fatalf("seed quiz: %v", err)
	}

	version := model.QuizVersion{Name: "demo", QuizID: quiz.ID}
	if err := db.Where("quiz_id = ? AND name = ?", quiz.ID, version.Name).FirstOrCreate(&version).Error; err != nil {
		log.Fatalf("seed version: %v", err)
	}
	if quiz.CurrentVersionID == nil {
		if err := db.Model(&quiz).Update("current_version_id", version.ID).Error; err != nil {
			log.Fatalf("point current version: %v", err)
		}
	}

	type seedQuestion struct {
		prompt   string
		category string
		options  []string
		answer   int
	}
	bank := []seedQuestion{
		{"What does `go vet` do?", "tooling", []string{"Reports suspicious constructs", "Formats source files", "Runs benchmarks"}, 0},
		{"Which type is a valid map key?", "types", []string{"[]byte", "string", "func()"}, 1},
		{"What does a nil channel receive do?", "concurrency", []string{"Panics", "Returns zero value", "Blocks forever"}, 2},
		{"Which keyword starts a goroutine?", "concurrency", []string{"go", "spawn", "async"}, 0},
		{"What is the zero value of a slice?", "types", []string{"empty slice", "nil", "undefined"}, 1},
		{"Which command tidies module requirements?", "tooling", []string{"go mod tidy", "go clean", "go fix"}, 0},
	}

	for _, sq := range bank {
		options := make([]model.QuizQuestionOption, len(sq.options))
		for i, content := range sq.options {
			options[i] = model.QuizQuestionOption{
				ID:      model.GenerateUUID(),
				Type:    model.QuizQuestionOptionTypeText,
				Content: content,
			}
		}
		question := model.QuizQuestion{
			Prompt:    sq.prompt,
			Category:  sq.category,
			Options:   options,
			Answer:    datatypes.NewJSONType(options[sq.answer]),
			VersionID: version.ID,
		}
		err := db.Where("prompt = ? AND version_id = ?", sq.prompt, version.ID).
			FirstOrCreate(&question).Error
		if err != nil {
			log.Fatalf("seed question %q: %v", sq.prompt, err)
		}
	}

	timer := 30
	convocatory := model.QuizConvocatory{
		Questions: 5,
		Attempts:  3,
		Timer:     &timer,
		VersionID: version.ID,
		StartAt:   time.Now(),
		EndAt:     time.Now().Add(30 * 24 * time.Hour),
		Users:     []model.User{root},
	}
	if err := db.Where("version_id = ?", version.ID).FirstOrCreate(&convocatory).Error; err != nil {
		log.Fatalf("seed convocatory: %v", err)
	}

	log.Printf("demo data ready: convocatory %s, examinee %s", convocatory.ID, root.Email)
}
