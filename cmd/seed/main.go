package main

import (
	"context"
	"log"
	"time"

	"github.com/fitzer-app/fitzer/backend/config"
	"github.com/fitzer-app/fitzer/backend/internal/database"
	"github.com/fitzer-app/fitzer/backend/internal/models"
	"github.com/fitzer-app/fitzer/backend/internal/service"
	"github.com/fitzer-app/fitzer/backend/internal/types"
)

// Seeds the sample account the demo front end expects: one user with a
// saved BMI snapshot, a short weight history and the four progress
// modules.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db, "migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()

	var existing models.User
	if err := db.Where("username = ?", "codebusters").First(&existing).Error; err == nil {
		log.Println("Sample user already exists, nothing to do")
		return
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	user, _, err := authService.Register(ctx, "Code Busters", "codebusters", "")
	if err != nil {
		log.Fatalf("Failed to create sample user: %v", err)
	}

	metricService := service.NewMetricService(db)
	if _, err := metricService.SaveSnapshot(ctx, user.ID, &types.SaveBMIRequest{
		HeightCm: 175,
		WeightKg: 70,
		Age:      25,
		BMI:      service.ComputeBMI(175, 70),
	}); err != nil {
		log.Fatalf("Failed to seed BMI snapshot: %v", err)
	}

	// Backdated points so the progress chart has a downward trend. The
	// snapshot above already added today's 70kg point.
	weights := []float64{72, 71.5, 71, 70.5}
	for i, weight := range weights {
		entry := models.WeightEntry{
			UserID:     user.ID,
			WeightKg:   weight,
			RecordedAt: time.Now().AddDate(0, 0, -(len(weights) - i)),
		}
		if err := db.Create(&entry).Error; err != nil {
			log.Fatalf("Failed to seed weight history: %v", err)
		}
	}

	moduleService := service.NewModuleService(db)
	if err := moduleService.Replace(ctx, user.ID, []types.ModuleInput{
		{Label: "Workouts", Completed: 3, Total: 10},
		{Label: "Diet Plans", Completed: 2, Total: 8},
		{Label: "AI Assistant", Completed: 4, Total: 12},
		{Label: "Trainers", Completed: 1, Total: 6},
	}); err != nil {
		log.Fatalf("Failed to seed modules: %v", err)
	}

	log.Printf("Seeded sample user %s (%s)", user.Name, user.ID)
}
