// Package testutil provides in-memory implementations of the service
// store interfaces for tests that should not hit a real mongo instance.
package testutil

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"resource-service/models"
	"resource-service/service"
)

type UserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: map[primitive.ObjectID]models.User{}}
}

func (s *UserStore) Insert(_ context.Context, user *models.User) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, service.ErrDuplicateEmail
		}
	}
	id := primitive.NewObjectID()
	stored := *user
	stored.ID = id
	s.users[id] = stored
	return id, nil
}

func (s *UserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (s *UserStore) UpdateByID(_ context.Context, id primitive.ObjectID, patch models.UserPatch) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	patch.Apply(&u)
	s.users[id] = u
	return &u, nil
}

func (s *UserStore) ListByRole(_ context.Context, role models.Role) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.User
	for _, u := range s.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

type ProjectStore struct {
	mu       sync.Mutex
	projects map[primitive.ObjectID]models.Project
}

func NewProjectStore() *ProjectStore {
	return &ProjectStore{projects: map[primitive.ObjectID]models.Project{}}
}

func (s *ProjectStore) Insert(_ context.Context, project *models.Project) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := primitive.NewObjectID()
	stored := *project
	stored.ID = id
	s.projects[id] = stored
	return id, nil
}

func (s *ProjectStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.projects[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (s *ProjectStore) ListByManager(_ context.Context, managerID primitive.ObjectID) ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Project
	for _, p := range s.projects {
		if p.ManagerID == managerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *ProjectStore) ListByEngineer(_ context.Context, engineerID primitive.ObjectID) ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Project
	for _, p := range s.projects {
		if p.HasEngineer(engineerID) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *ProjectStore) UpdateByID(_ context.Context, id primitive.ObjectID, patch models.ProjectPatch) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, nil
	}
	patch.Apply(&p)
	s.projects[id] = p
	return &p, nil
}

func (s *ProjectStore) AddEngineer(_ context.Context, projectID, engineerID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[projectID]
	if !ok {
		return nil
	}
	if !p.HasEngineer(engineerID) {
		p.AssignedEngineers = append(p.AssignedEngineers, engineerID)
		s.projects[projectID] = p
	}
	return nil
}

func (s *ProjectStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.projects, id)
	return nil
}

type TaskStore struct {
	mu    sync.Mutex
	tasks map[primitive.ObjectID]models.Task
}

func NewTaskStore() *TaskStore {
	return &TaskStore{tasks: map[primitive.ObjectID]models.Task{}}
}

func (s *TaskStore) Insert(_ context.Context, task *models.Task) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := primitive.NewObjectID()
	stored := *task
	stored.ID = id
	s.tasks[id] = stored
	return id, nil
}

func (s *TaskStore) ListByEngineer(_ context.Context, engineerID primitive.ObjectID) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Task
	for _, t := range s.tasks {
		if t.EngineerID == engineerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *TaskStore) ListByProject(_ context.Context, projectID primitive.ObjectID) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Task
	for _, t := range s.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *TaskStore) ListByProjects(_ context.Context, projectIDs []primitive.ObjectID) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := map[primitive.ObjectID]bool{}
	for _, id := range projectIDs {
		ids[id] = true
	}
	var out []models.Task
	for _, t := range s.tasks {
		if ids[t.ProjectID] {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *TaskStore) DeleteByProject(_ context.Context, projectID primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, t := range s.tasks {
		if t.ProjectID == projectID {
			delete(s.tasks, id)
			n++
		}
	}
	return n, nil
}
