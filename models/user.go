package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleEngineer Role = "Engineer"
	RoleManager  Role = "Manager"
)

func (r Role) Valid() bool {
	return r == RoleEngineer || r == RoleManager
}

type Seniority string

const (
	SeniorityJunior Seniority = "Junior"
	SeniorityMid    Seniority = "Mid"
	SenioritySenior Seniority = "Senior"
)

func (s Seniority) Valid() bool {
	return s == SeniorityJunior || s == SeniorityMid || s == SenioritySenior
}

// User is a stored account. Skills, Seniority, MaxCapacity and Department
// are only meaningful for engineers. The bcrypt hash is never serialized.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Password    string             `bson:"password" json:"-"`
	Role        Role               `bson:"role" json:"role"`
	Skills      []string           `bson:"skills,omitempty" json:"skills,omitempty"`
	Seniority   Seniority          `bson:"seniority,omitempty" json:"seniority,omitempty"`
	MaxCapacity float64            `bson:"max_capacity,omitempty" json:"maxCapacity,omitempty"`
	Department  string             `bson:"department,omitempty" json:"department,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

// UserPatch is a partial self-update. Nil fields are left unchanged.
type UserPatch struct {
	Name        *string    `json:"name"`
	Email       *string    `json:"email"`
	Role        *Role      `json:"role"`
	Skills      []string   `json:"skills"`
	Seniority   *Seniority `json:"seniority"`
	MaxCapacity *float64   `json:"maxCapacity"`
	Department  *string    `json:"department"`
}

// Apply mutates u with the non-nil fields of the patch.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Skills != nil {
		u.Skills = p.Skills
	}
	if p.Seniority != nil {
		u.Seniority = *p.Seniority
	}
	if p.MaxCapacity != nil {
		u.MaxCapacity = *p.MaxCapacity
	}
	if p.Department != nil {
		u.Department = *p.Department
	}
}
