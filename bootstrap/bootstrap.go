// Package bootstrap seeds demo data for local development. It only runs
// when ENABLE_BOOTSTRAP is set and the users collection is empty.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"resource-service/models"
)

func InsertInitialData(ctx context.Context, database *mongo.Database, logger *zap.Logger) error {
	users := database.Collection("users")

	count, err := users.CountDocuments(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	now := time.Now().UTC()
	manager := models.User{
		ID:         primitive.NewObjectID(),
		Name:       "Demo Manager",
		Email:      "manager@example.com",
		Password:   string(hashed),
		Role:       models.RoleManager,
		Department: "Engineering",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	engineers := []models.User{
		{
			ID: primitive.NewObjectID(), Name: "Demo Engineer 1", Email: "engineer1@example.com",
			Password: string(hashed), Role: models.RoleEngineer, Skills: []string{"Go", "MongoDB"},
			Seniority: models.SenioritySenior, MaxCapacity: 100, Department: "Engineering",
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: primitive.NewObjectID(), Name: "Demo Engineer 2", Email: "engineer2@example.com",
			Password: string(hashed), Role: models.RoleEngineer, Skills: []string{"React", "Node"},
			Seniority: models.SeniorityMid, MaxCapacity: 50, Department: "Engineering",
			CreatedAt: now, UpdatedAt: now,
		},
	}

	docs := []interface{}{manager}
	for _, e := range engineers {
		docs = append(docs, e)
	}
	if _, err := users.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert seed users: %w", err)
	}

	project := models.Project{
		Name:              "Demo Project",
		Description:       "Seeded project for local development",
		StartDate:         now,
		EndDate:           now.AddDate(0, 3, 0),
		RequiredSkills:    []string{"Go"},
		TeamSize:          3,
		Status:            models.StatusPlanning,
		ManagerID:         manager.ID,
		AssignedEngineers: []primitive.ObjectID{engineers[0].ID},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if _, err := database.Collection("projects").InsertOne(ctx, project); err != nil {
		return fmt.Errorf("insert seed project: %w", err)
	}

	logger.Info("inserted demo data",
		zap.String("manager", manager.Email),
		zap.Int("engineers", len(engineers)))
	return nil
}
