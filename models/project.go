package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProjectStatus string

const (
	StatusPlanning  ProjectStatus = "Planning"
	StatusActive    ProjectStatus = "Active"
	StatusCompleted ProjectStatus = "Completed"
)

func (s ProjectStatus) Valid() bool {
	return s == StatusPlanning || s == StatusActive || s == StatusCompleted
}

type Project struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name              string               `bson:"name" json:"projectName"`
	Description       string               `bson:"description,omitempty" json:"projectDescription,omitempty"`
	StartDate         time.Time            `bson:"start_date" json:"startDate"`
	EndDate           time.Time            `bson:"end_date" json:"endDate"`
	RequiredSkills    []string             `bson:"required_skills,omitempty" json:"requiredSkills,omitempty"`
	TeamSize          int                  `bson:"team_size,omitempty" json:"teamSize,omitempty"`
	Status            ProjectStatus        `bson:"status" json:"projectStatus"`
	ManagerID         primitive.ObjectID   `bson:"manager_id" json:"managerId"`
	AssignedEngineers []primitive.ObjectID `bson:"assigned_engineers" json:"assignedEngineers"`
	CreatedAt         time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt         time.Time            `bson:"updated_at" json:"updatedAt"`
}

// HasEngineer reports whether id is already a member of the project.
func (p *Project) HasEngineer(id primitive.ObjectID) bool {
	for _, e := range p.AssignedEngineers {
		if e == id {
			return true
		}
	}
	return false
}

// ProjectPatch is a partial update applied by the owning manager.
// ManagerID is deliberately absent: ownership never transfers.
type ProjectPatch struct {
	Name              *string              `json:"projectName"`
	Description       *string              `json:"projectDescription"`
	StartDate         *time.Time           `json:"startDate"`
	EndDate           *time.Time           `json:"endDate"`
	RequiredSkills    []string             `json:"requiredSkills"`
	TeamSize          *int                 `json:"teamSize"`
	Status            *ProjectStatus       `json:"projectStatus"`
	AssignedEngineers []primitive.ObjectID `json:"assignedEngineers"`
}

func (p ProjectPatch) Apply(proj *Project) {
	if p.Name != nil {
		proj.Name = *p.Name
	}
	if p.Description != nil {
		proj.Description = *p.Description
	}
	if p.StartDate != nil {
		proj.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		proj.EndDate = *p.EndDate
	}
	if p.RequiredSkills != nil {
		proj.RequiredSkills = p.RequiredSkills
	}
	if p.TeamSize != nil {
		proj.TeamSize = *p.TeamSize
	}
	if p.Status != nil {
		proj.Status = *p.Status
	}
	if p.AssignedEngineers != nil {
		proj.AssignedEngineers = p.AssignedEngineers
	}
}
