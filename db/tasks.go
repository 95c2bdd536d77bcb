package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"resource-service/models"
)

type TaskRepo struct {
	col *mongo.Collection
}

func NewTaskRepo(database *mongo.Database) *TaskRepo {
	return &TaskRepo{col: database.Collection("tasks")}
}

func (r *TaskRepo) Insert(ctx context.Context, task *models.Task) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, task)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *TaskRepo) ListByEngineer(ctx context.Context, engineerID primitive.ObjectID) ([]models.Task, error) {
	return r.list(ctx, bson.M{"engineer_id": engineerID})
}

func (r *TaskRepo) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error) {
	return r.list(ctx, bson.M{"project_id": projectID})
}

func (r *TaskRepo) ListByProjects(ctx context.Context, projectIDs []primitive.ObjectID) ([]models.Task, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}
	return r.list(ctx, bson.M{"project_id": bson.M{"$in": projectIDs}})
}

func (r *TaskRepo) list(ctx context.Context, filter bson.M) ([]models.Task, error) {
	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepo) DeleteByProject(ctx context.Context, projectID primitive.ObjectID) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"project_id": projectID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
