package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"resource-service/models"
	"resource-service/service"
	"resource-service/testutil"
)

type fixture struct {
	users    *testutil.UserStore
	projects *testutil.ProjectStore
	tasks    *testutil.TaskStore
	events   *eventRecorder

	identity *service.IdentityService
	project  *service.ProjectService
	task     *service.TaskService

	manager  service.Caller
	engineer service.Caller
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:    testutil.NewUserStore(),
		projects: testutil.NewProjectStore(),
		tasks:    testutil.NewTaskStore(),
		events:   &eventRecorder{},
	}
	logger := zap.NewNop()
	f.identity = service.NewIdentityService(f.users, logger)
	f.project = service.NewProjectService(f.projects, f.tasks, f.users, logger)
	f.task = service.NewTaskService(f.tasks, f.projects, f.users, f.events, logger)

	f.manager = f.addUser(t, "Ann", "ann@x.com", models.RoleManager)
	f.engineer = f.addUser(t, "Bob", "bob@x.com", models.RoleEngineer)
	return f
}

func (f *fixture) addUser(t *testing.T, name, email string, role models.Role) service.Caller {
	t.Helper()
	user, err := f.identity.Register(context.Background(), service.RegisterInput{
		Name: name, Email: email, Password: "password", Role: role,
	})
	require.NoError(t, err)
	return service.Caller{ID: user.ID, Email: user.Email, Role: user.Role}
}

func (f *fixture) createProject(t *testing.T, owner service.Caller, name string) *models.Project {
	t.Helper()
	project, err := f.project.Create(context.Background(), owner, service.CreateProjectInput{
		Name:      name,
		StartDate: time.Now(),
		EndDate:   time.Now().AddDate(0, 1, 0),
	})
	require.NoError(t, err)
	return project
}

func TestCreateProject(t *testing.T) {
	f := newFixture(t)

	project := f.createProject(t, f.manager, "P1")
	assert.Equal(t, f.manager.ID, project.ManagerID)
	assert.Equal(t, models.StatusPlanning, project.Status)
	assert.Empty(t, project.AssignedEngineers)
}

func TestCreateProjectForbiddenForEngineer(t *testing.T) {
	f := newFixture(t)

	_, err := f.project.Create(context.Background(), f.engineer, service.CreateProjectInput{
		Name: "P1", StartDate: time.Now(), EndDate: time.Now().AddDate(0, 1, 0),
	})
	var ferr *service.ForbiddenError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "Only managers can create projects", ferr.Msg)
}

func TestCreateProjectValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.project.Create(ctx, f.manager, service.CreateProjectInput{
		StartDate: time.Now(), EndDate: time.Now(),
	})
	var verr *service.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = f.project.Create(ctx, f.manager, service.CreateProjectInput{Name: "P1"})
	assert.ErrorAs(t, err, &verr)

	// Members must be existing engineers.
	_, err = f.project.Create(ctx, f.manager, service.CreateProjectInput{
		Name: "P1", StartDate: time.Now(), EndDate: time.Now(),
		AssignedEngineers: []primitive.ObjectID{f.manager.ID},
	})
	assert.ErrorAs(t, err, &verr)
}

func TestListProjectsByRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other := f.addUser(t, "Cleo", "cleo@x.com", models.RoleManager)

	mine := f.createProject(t, f.manager, "Mine")
	f.createProject(t, other, "Theirs")

	joined, err := f.project.Update(ctx, f.manager, mine.ID, models.ProjectPatch{
		AssignedEngineers: []primitive.ObjectID{f.engineer.ID},
	})
	require.NoError(t, err)
	require.True(t, joined.HasEngineer(f.engineer.ID))

	managerViews, err := f.project.List(ctx, f.manager)
	require.NoError(t, err)
	require.Len(t, managerViews, 1)
	assert.Equal(t, "Mine", managerViews[0].Name)
	require.NotNil(t, managerViews[0].Manager)
	assert.Equal(t, "ann@x.com", managerViews[0].Manager.Email)

	engineerViews, err := f.project.List(ctx, f.engineer)
	require.NoError(t, err)
	require.Len(t, engineerViews, 1)
	assert.Equal(t, mine.ID, engineerViews[0].ID)

	_, err = f.project.List(ctx, service.Caller{ID: primitive.NewObjectID(), Role: "Admin"})
	var ferr *service.ForbiddenError
	assert.ErrorAs(t, err, &ferr)
}

func TestGetProjectConflatesMissingAndForeign(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	intruder := f.addUser(t, "Cleo", "cleo@x.com", models.RoleManager)
	project := f.createProject(t, f.manager, "P1")

	_, err := f.project.Get(ctx, intruder, project.ID)
	assert.ErrorIs(t, err, service.ErrNotFoundOrUnauthorized)

	_, err = f.project.Get(ctx, f.manager, primitive.NewObjectID())
	assert.ErrorIs(t, err, service.ErrNotFoundOrUnauthorized)

	// Owner and member both see it; two reads return identical data.
	first, err := f.project.Get(ctx, f.manager, project.ID)
	require.NoError(t, err)
	second, err := f.project.Get(ctx, f.manager, project.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGetProjectVisibleToMember(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	project := f.createProject(t, f.manager, "P1")

	_, err := f.project.Get(ctx, f.engineer, project.ID)
	assert.ErrorIs(t, err, service.ErrNotFoundOrUnauthorized)

	_, err = f.project.Update(ctx, f.manager, project.ID, models.ProjectPatch{
		AssignedEngineers: []primitive.ObjectID{f.engineer.ID},
	})
	require.NoError(t, err)

	view, err := f.project.Get(ctx, f.engineer, project.ID)
	require.NoError(t, err)
	assert.Equal(t, project.ID, view.ID)
}

func TestUpdateProjectOwnershipGate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other := f.addUser(t, "Cleo", "cleo@x.com", models.RoleManager)
	project := f.createProject(t, f.manager, "P1")

	name := "Renamed"
	_, err := f.project.Update(ctx, other, project.ID, models.ProjectPatch{Name: &name})
	assert.ErrorIs(t, err, service.ErrNotFoundOrUnauthorized)

	_, err = f.project.Update(ctx, f.engineer, project.ID, models.ProjectPatch{Name: &name})
	var ferr *service.ForbiddenError
	assert.ErrorAs(t, err, &ferr)

	status := models.ProjectStatus("Archived")
	_, err = f.project.Update(ctx, f.manager, project.ID, models.ProjectPatch{Status: &status})
	var verr *service.ValidationError
	assert.ErrorAs(t, err, &verr)

	active := models.StatusActive
	updated, err := f.project.Update(ctx, f.manager, project.ID, models.ProjectPatch{Name: &name, Status: &active})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, models.StatusActive, updated.Status)
}

func TestDeleteProjectCascadesTasks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other := f.addUser(t, "Cleo", "cleo@x.com", models.RoleManager)
	project := f.createProject(t, f.manager, "P1")

	_, err := f.task.Assign(ctx, f.manager, service.AssignTaskInput{
		EngineerID: f.engineer.ID, ProjectID: project.ID, AllocationPercentage: 50,
	})
	require.NoError(t, err)

	err = f.project.Delete(ctx, other, project.ID)
	assert.ErrorIs(t, err, service.ErrNotFoundOrUnauthorized)

	require.NoError(t, f.project.Delete(ctx, f.manager, project.ID))

	gone, err := f.projects.FindByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	tasks, err := f.tasks.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}
