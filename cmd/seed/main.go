package main

import (
	"log"
	"os"

	"teletherapy-be/internal/model"
	"teletherapy-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding subscription plans...")
	seedPlans(db)

	color.Cyan("Seeding policy config...")
	seedPolicyConfig(db)

	color.Cyan("Seeding admin user...")
	seedAdmin(db)

	color.Green("✅ Seeding completed")
}

func seedPlans(db *gorm.DB) {
	plans := []model.SubscriptionPlan{
		{
			Name:              "Weekly Wellness",
			Slug:              "weekly-wellness",
			Description:       "Four sessions per four-week period, billed every four weeks",
			Price:             180,
			BillingCycle:      "every_4_weeks",
			SessionsPerPeriod: 4,
			SortOrder:         1,
		},
		{
			Name:              "Monthly Standard",
			Slug:              "monthly-standard",
			Description:       "Six sessions per calendar month",
			Price:             270,
			BillingCycle:      "monthly",
			SessionsPerPeriod: 6,
			SortOrder:         2,
		},
		{
			Name:              "Pay As You Go",
			Slug:              "pay-as-you-go",
			Description:       "No session allowance, every session billed individually",
			Price:             0,
			BillingCycle:      "pay_as_you_go",
			SessionsPerPeriod: 0,
			SortOrder:         3,
		},
		{
			Name:              "Single Assessment",
			Slug:              "single-assessment",
			Description:       "One-time assessment package",
			Price:             50,
			BillingCycle:      "one_time",
			SessionsPerPeriod: 1,
			SortOrder:         4,
		},
	}

	for _, p := range plans {
		var existing model.SubscriptionPlan
		if err := db.Where("slug = ?", p.Slug).First(&existing).Error; err == nil {
			color.Yellow("Plan '%s' already exists, skipping...", p.Slug)
			continue
		}
		p.IsActive = true
		if err := db.Create(&p).Error; err != nil {
			color.Red("Error creating plan '%s': %v", p.Slug, err)
		} else {
			color.Green("Created plan: %s", p.Name)
		}
	}
}

func seedPolicyConfig(db *gorm.DB) {
	var existing model.PolicyConfig
	if err := db.Order("created_at DESC").First(&existing).Error; err == nil {
		color.Yellow("Policy config already present, skipping...")
		return
	}

	cfg := model.PolicyConfig{
		LicensedRateCap:  150,
		AssistantRateCap: 55,
		CancellationFees: datatypes.JSONMap{
			"licensed_professional": 15,
			"supervised_assistant":  15,
		},
	}
	if err := db.Create(&cfg).Error; err != nil {
		color.Red("Error creating policy config: %v", err)
	} else {
		color.Green("Created default policy config")
	}
}

func seedAdmin(db *gorm.DB) {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@teletherapy.local"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "ChangeMe123!"
	}

	var existing model.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		color.Yellow("Admin user already exists, skipping...")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		color.Red("Error hashing admin password: %v", err)
		return
	}
	hashStr := string(hash)

	admin := model.User{
		Email:        email,
		PasswordHash: &hashStr,
		FullName:     "Platform Admin",
		Role:         "admin",
		Status:       "active",
	}
	if err := db.Create(&admin).Error; err != nil {
		color.Red("Error creating admin user: %v", err)
	} else {
		color.Green("Created admin user: %s", email)
	}
}
