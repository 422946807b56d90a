package main

import (
	"log"
	"os"

	"templeseva/internal/database"
	"templeseva/internal/domain"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/clause"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "temple.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Creating admin user...")
	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "sriabhayanjaneyaswamytemplegpl@gmail.com",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Temple Administrator",
		Phone:        "8885209456",
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&admin).Error; err != nil {
		log.Fatal("admin user failed:", err)
	}

	log.Println("Creating temple settings...")
	settings := domain.TempleSettings{
		ID:          1,
		TempleEmail: "sriabhayanjaneyaswamytemplegpl@gmail.com",
		TemplePhone: "8885209456",
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(&settings).Error; err != nil {
		log.Fatal("settings failed:", err)
	}

	log.Println("Creating puja events...")
	events := []domain.PujaEvent{
		{
			Title:       "Hanuman Jayanti",
			Description: "Special abhishekam and alankaram for Lord Hanuman, followed by annadanam.",
			Date:        "2026-12-23",
			Time:        "6:00 AM",
		},
		{
			Title:       "Weekly Abhishekam",
			Description: "Abhishekam to the main deity every Tuesday morning.",
			Date:        "2026-09-01",
			Time:        "7:00 AM",
		},
		{
			Title:       "Satyanarayana Vratam",
			Description: "Group Satyanarayana Swamy vratam on pournami. Devotees may sponsor a seat.",
			Date:        "2026-09-26",
			Time:        "5:30 PM",
		},
	}
	for _, e := range events {
		event := e
		if err := db.Create(&event).Error; err != nil {
			log.Fatal("puja event failed:", err)
		}
	}

	log.Println("Seed complete.")
}
