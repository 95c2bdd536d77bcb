package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task allocates a percentage of an engineer's time to a project.
type Task struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EngineerID           primitive.ObjectID `bson:"engineer_id" json:"engineerId"`
	ProjectID            primitive.ObjectID `bson:"project_id" json:"projectId"`
	AllocationPercentage float64            `bson:"allocation_percentage" json:"allocationPercentage"`
	StartDate            time.Time          `bson:"start_date,omitempty" json:"startDate,omitempty"`
	EndDate              time.Time          `bson:"end_date,omitempty" json:"endDate,omitempty"`
	CreatedAt            time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updated_at" json:"updatedAt"`
}
