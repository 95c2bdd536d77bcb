package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"resource-service/models"
)

type ProjectRepo struct {
	col *mongo.Collection
}

func NewProjectRepo(database *mongo.Database) *ProjectRepo {
	return &ProjectRepo{col: database.Collection("projects")}
}

func (r *ProjectRepo) Insert(ctx context.Context, project *models.Project) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, project)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *ProjectRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var project models.Project
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepo) ListByManager(ctx context.Context, managerID primitive.ObjectID) ([]models.Project, error) {
	return r.list(ctx, bson.M{"manager_id": managerID})
}

func (r *ProjectRepo) ListByEngineer(ctx context.Context, engineerID primitive.ObjectID) ([]models.Project, error) {
	return r.list(ctx, bson.M{"assigned_engineers": engineerID})
}

func (r *ProjectRepo) list(ctx context.Context, filter bson.M) ([]models.Project, error) {
	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var projects []models.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *ProjectRepo) UpdateByID(ctx context.Context, id primitive.ObjectID, patch models.ProjectPatch) (*models.Project, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.StartDate != nil {
		set["start_date"] = *patch.StartDate
	}
	if patch.EndDate != nil {
		set["end_date"] = *patch.EndDate
	}
	if patch.RequiredSkills != nil {
		set["required_skills"] = patch.RequiredSkills
	}
	if patch.TeamSize != nil {
		set["team_size"] = *patch.TeamSize
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.AssignedEngineers != nil {
		set["assigned_engineers"] = patch.AssignedEngineers
	}

	var project models.Project
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&project)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// AddEngineer appends the engineer to the membership set if missing.
func (r *ProjectRepo) AddEngineer(ctx context.Context, projectID, engineerID primitive.ObjectID) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": projectID},
		bson.M{
			"$addToSet": bson.M{"assigned_engineers": engineerID},
			"$set":      bson.M{"updated_at": time.Now().UTC()},
		},
	)
	return err
}

func (r *ProjectRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
