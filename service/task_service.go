package service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"resource-service/events"
	"resource-service/models"
)

// ProjectSummary is attached to task listings.
type ProjectSummary struct {
	ID     primitive.ObjectID   `json:"id"`
	Name   string               `json:"projectName"`
	Status models.ProjectStatus `json:"projectStatus"`
}

// EngineerSummary is attached to task listings for managers.
type EngineerSummary struct {
	ID          primitive.ObjectID `json:"id"`
	Name        string             `json:"name"`
	Email       string             `json:"email,omitempty"`
	MaxCapacity float64            `json:"maxCapacity,omitempty"`
}

// TaskView is a task with its referenced project and engineer resolved.
type TaskView struct {
	models.Task
	Project  *ProjectSummary  `json:"project,omitempty"`
	Engineer *EngineerSummary `json:"engineer,omitempty"`
}

// TaskService allocates engineers to projects. Assignment auto-enrolls the
// engineer into the project's member set when missing.
type TaskService struct {
	tasks     TaskStore
	projects  ProjectStore
	users     UserStore
	publisher events.Publisher
	logger    *zap.Logger
}

func NewTaskService(tasks TaskStore, projects ProjectStore, users UserStore, publisher events.Publisher, logger *zap.Logger) *TaskService {
	return &TaskService{tasks: tasks, projects: projects, users: users, publisher: publisher, logger: logger}
}

type AssignTaskInput struct {
	EngineerID           primitive.ObjectID `json:"engineerId"`
	ProjectID            primitive.ObjectID `json:"projectId"`
	AllocationPercentage float64            `json:"allocationPercentage"`
	StartDate            time.Time          `json:"startDate"`
	EndDate              time.Time          `json:"endDate"`
}

// Assign creates a task on a project owned by the calling manager. The
// membership update and the task insert are sequential writes; a crash in
// between can enroll the engineer without persisting the task.
func (s *TaskService) Assign(ctx context.Context, caller Caller, in AssignTaskInput) (*models.Task, error) {
	if caller.Role != models.RoleManager {
		return nil, forbidden("Only managers can assign tasks")
	}
	if in.EngineerID.IsZero() || in.ProjectID.IsZero() {
		return nil, invalid("engineerId and projectId are required")
	}

	project, err := s.projects.FindByID(ctx, in.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	if project == nil || project.ManagerID != caller.ID {
		return nil, ErrNotFoundOrUnauthorized
	}

	engineer, err := s.users.FindByID(ctx, in.EngineerID)
	if err != nil {
		return nil, fmt.Errorf("find engineer: %w", err)
	}
	if engineer == nil || engineer.Role != models.RoleEngineer {
		return nil, invalid("engineerId must reference an engineer")
	}

	enrolled := false
	if !project.HasEngineer(in.EngineerID) {
		if err := s.projects.AddEngineer(ctx, in.ProjectID, in.EngineerID); err != nil {
			return nil, fmt.Errorf("enroll engineer: %w", err)
		}
		enrolled = true
	}

	now := time.Now().UTC()
	task := &models.Task{
		EngineerID:           in.EngineerID,
		ProjectID:            in.ProjectID,
		AllocationPercentage: in.AllocationPercentage,
		StartDate:            in.StartDate,
		EndDate:              in.EndDate,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	id, err := s.tasks.Insert(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	task.ID = id

	s.logger.Info("task assigned",
		zap.String("taskId", id.Hex()),
		zap.String("projectId", in.ProjectID.Hex()),
		zap.String("engineerId", in.EngineerID.Hex()),
		zap.Bool("autoEnrolled", enrolled))
	s.publisher.PublishTaskAssigned(ctx, events.TaskAssigned{
		TaskID:               id.Hex(),
		ProjectID:            in.ProjectID.Hex(),
		EngineerID:           in.EngineerID.Hex(),
		ManagerID:            caller.ID.Hex(),
		AllocationPercentage: in.AllocationPercentage,
		AutoEnrolled:         enrolled,
		OccurredAt:           now,
	})
	return task, nil
}

// ListForCaller returns the caller's allocations: an engineer's own tasks
// with project summaries, or every task across a manager's projects with
// project and engineer summaries. Tasks whose project no longer resolves
// (orphans from a failed cascade) are skipped.
func (s *TaskService) ListForCaller(ctx context.Context, caller Caller) ([]TaskView, error) {
	switch caller.Role {
	case models.RoleEngineer:
		tasks, err := s.tasks.ListByEngineer(ctx, caller.ID)
		if err != nil {
			return nil, fmt.Errorf("list tasks: %w", err)
		}
		return s.buildViews(ctx, tasks, false)
	case models.RoleManager:
		projects, err := s.projects.ListByManager(ctx, caller.ID)
		if err != nil {
			return nil, fmt.Errorf("list projects: %w", err)
		}
		if len(projects) == 0 {
			return []TaskView{}, nil
		}
		ids := make([]primitive.ObjectID, 0, len(projects))
		for _, p := range projects {
			ids = append(ids, p.ID)
		}
		tasks, err := s.tasks.ListByProjects(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("list tasks: %w", err)
		}
		return s.buildViews(ctx, tasks, true)
	default:
		return nil, forbidden("Unauthorized role")
	}
}

// ListForProject returns a project's tasks with engineer identities.
// Owning manager only.
func (s *TaskService) ListForProject(ctx context.Context, caller Caller, projectID primitive.ObjectID) ([]TaskView, error) {
	if caller.Role != models.RoleManager {
		return nil, forbidden("Only managers can view project tasks")
	}
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	if project == nil || project.ManagerID != caller.ID {
		return nil, ErrNotFoundOrUnauthorized
	}

	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		view := TaskView{Task: t}
		if engineer, err := s.users.FindByID(ctx, t.EngineerID); err == nil && engineer != nil {
			view.Engineer = &EngineerSummary{ID: engineer.ID, Name: engineer.Name, Email: engineer.Email}
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *TaskService) buildViews(ctx context.Context, tasks []models.Task, withEngineer bool) ([]TaskView, error) {
	projects := map[primitive.ObjectID]*ProjectSummary{}
	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		summary, ok := projects[t.ProjectID]
		if !ok {
			project, err := s.projects.FindByID(ctx, t.ProjectID)
			if err != nil {
				return nil, fmt.Errorf("find project: %w", err)
			}
			if project != nil {
				summary = &ProjectSummary{ID: project.ID, Name: project.Name, Status: project.Status}
			}
			projects[t.ProjectID] = summary
		}
		if summary == nil {
			// Orphaned allocation, see cascade-delete notes.
			continue
		}
		view := TaskView{Task: t, Project: summary}
		if withEngineer {
			if engineer, err := s.users.FindByID(ctx, t.EngineerID); err == nil && engineer != nil {
				view.Engineer = &EngineerSummary{ID: engineer.ID, Name: engineer.Name, MaxCapacity: engineer.MaxCapacity}
			}
		}
		views = append(views, view)
	}
	return views, nil
}
