package service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"resource-service/models"
)

// ManagerSummary is the public identity attached to project listings.
type ManagerSummary struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
}

// ProjectView is a project with its manager's public identity resolved.
type ProjectView struct {
	models.Project
	Manager *ManagerSummary `json:"manager,omitempty"`
}

// ProjectService enforces ownership and membership rules around projects.
type ProjectService struct {
	projects ProjectStore
	tasks    TaskStore
	users    UserStore
	logger   *zap.Logger
}

func NewProjectService(projects ProjectStore, tasks TaskStore, users UserStore, logger *zap.Logger) *ProjectService {
	return &ProjectService{projects: projects, tasks: tasks, users: users, logger: logger}
}

type CreateProjectInput struct {
	Name              string               `json:"projectName"`
	Description       string               `json:"projectDescription"`
	StartDate         time.Time            `json:"startDate"`
	EndDate           time.Time            `json:"endDate"`
	RequiredSkills    []string             `json:"requiredSkills"`
	TeamSize          int                  `json:"teamSize"`
	Status            models.ProjectStatus `json:"projectStatus"`
	AssignedEngineers []primitive.ObjectID `json:"assignedEngineers"`
}

// Create persists a new project owned by the calling manager.
func (s *ProjectService) Create(ctx context.Context, caller Caller, in CreateProjectInput) (*models.Project, error) {
	if caller.Role != models.RoleManager {
		return nil, forbidden("Only managers can create projects")
	}
	if in.Name == "" {
		return nil, invalid("projectName is required")
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return nil, invalid("startDate and endDate are required")
	}
	status := in.Status
	if status == "" {
		status = models.StatusPlanning
	}
	if !status.Valid() {
		return nil, invalid("projectStatus must be Planning, Active or Completed")
	}
	if err := s.checkEngineers(ctx, in.AssignedEngineers); err != nil {
		return nil, err
	}

	engineers := in.AssignedEngineers
	if engineers == nil {
		engineers = []primitive.ObjectID{}
	}
	now := time.Now().UTC()
	project := &models.Project{
		Name:              in.Name,
		Description:       in.Description,
		StartDate:         in.StartDate,
		EndDate:           in.EndDate,
		RequiredSkills:    in.RequiredSkills,
		TeamSize:          in.TeamSize,
		Status:            status,
		ManagerID:         caller.ID,
		AssignedEngineers: engineers,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	id, err := s.projects.Insert(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	project.ID = id
	s.logger.Info("project created", zap.String("projectId", id.Hex()), zap.String("managerId", caller.ID.Hex()))
	return project, nil
}

// List returns the projects visible to the caller: owned ones for a
// manager, membership ones for an engineer.
func (s *ProjectService) List(ctx context.Context, caller Caller) ([]ProjectView, error) {
	var (
		projects []models.Project
		err      error
	)
	switch caller.Role {
	case models.RoleManager:
		projects, err = s.projects.ListByManager(ctx, caller.ID)
	case models.RoleEngineer:
		projects, err = s.projects.ListByEngineer(ctx, caller.ID)
	default:
		return nil, forbidden("Unauthorized role")
	}
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	views := make([]ProjectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, ProjectView{Project: p, Manager: s.managerSummary(ctx, p.ManagerID)})
	}
	return views, nil
}

// Get returns a single project, visible only to its owner or members.
// Missing and foreign projects are indistinguishable to the caller.
func (s *ProjectService) Get(ctx context.Context, caller Caller, projectID primitive.ObjectID) (*ProjectView, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	if project == nil || (project.ManagerID != caller.ID && !project.HasEngineer(caller.ID)) {
		return nil, ErrNotFoundOrUnauthorized
	}
	return &ProjectView{Project: *project, Manager: s.managerSummary(ctx, project.ManagerID)}, nil
}

// Update applies a patch to a project owned by the calling manager.
func (s *ProjectService) Update(ctx context.Context, caller Caller, projectID primitive.ObjectID, patch models.ProjectPatch) (*models.Project, error) {
	if caller.Role != models.RoleManager {
		return nil, forbidden("Only managers can update projects")
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, invalid("projectStatus must be Planning, Active or Completed")
	}
	if patch.Name != nil && *patch.Name == "" {
		return nil, invalid("projectName cannot be empty")
	}
	if err := s.checkEngineers(ctx, patch.AssignedEngineers); err != nil {
		return nil, err
	}

	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	if project == nil || project.ManagerID != caller.ID {
		return nil, ErrNotFoundOrUnauthorized
	}

	updated, err := s.projects.UpdateByID(ctx, projectID, patch)
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	if updated == nil {
		return nil, ErrNotFoundOrUnauthorized
	}
	return updated, nil
}

// Delete removes a project owned by the calling manager, then best-effort
// deletes its tasks. The two writes are sequential, not transactional; a
// failed cleanup is logged and the delete still succeeds.
func (s *ProjectService) Delete(ctx context.Context, caller Caller, projectID primitive.ObjectID) error {
	if caller.Role != models.RoleManager {
		return forbidden("Only managers can delete projects")
	}
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return fmt.Errorf("find project: %w", err)
	}
	if project == nil || project.ManagerID != caller.ID {
		return ErrNotFoundOrUnauthorized
	}
	if err := s.projects.Delete(ctx, projectID); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if n, err := s.tasks.DeleteByProject(ctx, projectID); err != nil {
		s.logger.Error("task cleanup after project delete failed",
			zap.String("projectId", projectID.Hex()), zap.Error(err))
	} else if n > 0 {
		s.logger.Info("deleted project tasks", zap.String("projectId", projectID.Hex()), zap.Int64("count", n))
	}
	return nil
}

// checkEngineers verifies every id references an existing Engineer.
func (s *ProjectService) checkEngineers(ctx context.Context, ids []primitive.ObjectID) error {
	for _, id := range ids {
		user, err := s.users.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("find engineer: %w", err)
		}
		if user == nil || user.Role != models.RoleEngineer {
			return invalid("assignedEngineers must reference engineers")
		}
	}
	return nil
}

func (s *ProjectService) managerSummary(ctx context.Context, managerID primitive.ObjectID) *ManagerSummary {
	manager, err := s.users.FindByID(ctx, managerID)
	if err != nil || manager == nil {
		return nil
	}
	return &ManagerSummary{ID: manager.ID, Name: manager.Name, Email: manager.Email}
}
