package main

import (
	"log"
	"os"
	"time"

	"notevault-be/internal/model"
	"notevault-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Seeds a demo account with one notebook and a couple of notes so a fresh
// environment has something to click on.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		color.Red("Error: Failed to hash demo password: %v", err)
		os.Exit(1)
	}
	hashStr := string(hash)

	user := model.User{
		Id:           uuid.New(),
		Email:        "demo@notevault.local",
		FullName:     "Demo User",
		PasswordHash: &hashStr,
		Role:         "user",
		Status:       "active",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	var existing model.User
	if err := db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		color.Yellow("Demo user already exists, skipping seed.")
		return
	}

	if err := db.Create(&user).Error; err != nil {
		color.Red("Error: Failed to create demo user: %v", err)
		os.Exit(1)
	}

	notebook := model.Notebook{
		Id:             uuid.New(),
		Title:          "Getting Started",
		UserId:         user.Id,
		SortOrder:      0,
		LifecycleState: "active",
		CreatedAt:      time.Now(),
	}
	if err := db.Create(&notebook).Error; err != nil {
		color.Red("Error: Failed to create demo notebook: %v", err)
		os.Exit(1)
	}

	notes := []model.Note{
		{
			Id:             uuid.New(),
			Title:          "Welcome",
			Content:        "Notes autosave a couple of seconds after you stop typing.",
			NotebookId:     notebook.Id,
			UserId:         user.Id,
			SortOrder:      0,
			LifecycleState: "active",
			CreatedAt:      time.Now(),
		},
		{
			Id:             uuid.New(),
			Title:          "Trash and restore",
			Content:        "Trashed notebooks keep their notes until you delete them permanently.",
			NotebookId:     notebook.Id,
			UserId:         user.Id,
			SortOrder:      1,
			LifecycleState: "active",
			CreatedAt:      time.Now(),
		},
	}
	for i := range notes {
		if err := db.Create(&notes[i]).Error; err != nil {
			color.Red("Error: Failed to create demo note: %v", err)
			os.Exit(1)
		}
	}

	color.Green("Success: Seeded demo user %s", user.Email)
}
