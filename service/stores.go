package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"resource-service/models"
)

// Store interfaces are implemented by the mongo repos in db and by the
// in-memory doubles in testutil. Lookups return (nil, nil) when no
// document matches; every call is a single read or write against the
// backing collection.

type UserStore interface {
	Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, patch models.UserPatch) (*models.User, error)
	ListByRole(ctx context.Context, role models.Role) ([]models.User, error)
}

type ProjectStore interface {
	Insert(ctx context.Context, project *models.Project) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
	ListByManager(ctx context.Context, managerID primitive.ObjectID) ([]models.Project, error)
	ListByEngineer(ctx context.Context, engineerID primitive.ObjectID) ([]models.Project, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, patch models.ProjectPatch) (*models.Project, error)
	AddEngineer(ctx context.Context, projectID, engineerID primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type TaskStore interface {
	Insert(ctx context.Context, task *models.Task) (primitive.ObjectID, error)
	ListByEngineer(ctx context.Context, engineerID primitive.ObjectID) ([]models.Task, error)
	ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error)
	ListByProjects(ctx context.Context, projectIDs []primitive.ObjectID) ([]models.Task, error)
	DeleteByProject(ctx context.Context, projectID primitive.ObjectID) (int64, error)
}

// Caller is the verified request identity extracted from the bearer token.
type Caller struct {
	ID    primitive.ObjectID
	Email string
	Role  models.Role
}
