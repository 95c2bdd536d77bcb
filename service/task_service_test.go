package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"resource-service/models"
	"resource-service/service"
)

func TestAssignTaskForbiddenForEngineer(t *testing.T) {
	f := newFixture(t)
	project := f.createProject(t, f.manager, "P1")

	_, err := f.task.Assign(context.Background(), f.engineer, service.AssignTaskInput{
		EngineerID: f.engineer.ID, ProjectID: project.ID, AllocationPercentage: 50,
	})
	var ferr *service.ForbiddenError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "Only managers can assign tasks", ferr.Msg)
}

func TestAssignTaskRequiresOwnedProject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other := f.addUser(t, "Cleo", "cleo@x.com", models.RoleManager)
	project := f.createProject(t, f.manager, "P1")

	_, err := f.task.Assign(ctx, other, service.AssignTaskInput{
		EngineerID: f.engineer.ID, ProjectID: project.ID, AllocationPercentage: 50,
	})
	assert.ErrorIs(t, err, service.ErrNotFoundOrUnauthorized)

	_, err = f.task.Assign(ctx, f.manager, service.AssignTaskInput{
		EngineerID: f.engineer.ID, ProjectID: primitive.NewObjectID(), AllocationPercentage: 50,
	})
	assert.ErrorIs(t, err, service.ErrNotFoundOrUnauthorized)
}

func TestAssignTaskRejectsNonEngineer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	otherManager := f.addUser(t, "Cleo", "cleo@x.com", models.RoleManager)
	project := f.createProject(t, f.manager, "P1")

	var verr *service.ValidationError
	_, err := f.task.Assign(ctx, f.manager, service.AssignTaskInput{
		EngineerID: otherManager.ID, ProjectID: project.ID, AllocationPercentage: 50,
	})
	assert.ErrorAs(t, err, &verr)

	_, err = f.task.Assign(ctx, f.manager, service.AssignTaskInput{
		EngineerID: primitive.NewObjectID(), ProjectID: project.ID, AllocationPercentage: 50,
	})
	assert.ErrorAs(t, err, &verr)
}

func TestAssignTaskAutoEnrolls(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	project := f.createProject(t, f.manager, "P1")
	require.False(t, project.HasEngineer(f.engineer.ID))

	task, err := f.task.Assign(ctx, f.manager, service.AssignTaskInput{
		EngineerID:           f.engineer.ID,
		ProjectID:            project.ID,
		AllocationPercentage: 60,
		StartDate:            time.Now(),
		EndDate:              time.Now().AddDate(0, 1, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, f.engineer.ID, task.EngineerID)

	updated, err := f.projects.FindByID(ctx, project.ID)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.True(t, updated.HasEngineer(f.engineer.ID))

	published := f.events.published()
	require.Len(t, published, 1)
	assert.Equal(t, task.ID.Hex(), published[0].TaskID)
	assert.True(t, published[0].AutoEnrolled)

	// A second assignment finds the engineer already enrolled.
	_, err = f.task.Assign(ctx, f.manager, service.AssignTaskInput{
		EngineerID: f.engineer.ID, ProjectID: project.ID, AllocationPercentage: 20,
	})
	require.NoError(t, err)
	published = f.events.published()
	require.Len(t, published, 2)
	assert.False(t, published[1].AutoEnrolled)

	updated, err = f.projects.FindByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Len(t, updated.AssignedEngineers, 1)
}

func TestListTasksForEngineer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	colleague := f.addUser(t, "Dana", "dana@x.com", models.RoleEngineer)
	project := f.createProject(t, f.manager, "P1")

	mine, err := f.task.Assign(ctx, f.manager, service.AssignTaskInput{
		EngineerID: f.engineer.ID, ProjectID: project.ID, AllocationPercentage: 40,
	})
	require.NoError(t, err)
	_, err = f.task.Assign(ctx, f.manager, service.AssignTaskInput{
		EngineerID: colleague.ID, ProjectID: project.ID, AllocationPercentage: 30,
	})
	require.NoError(t, err)

	views, err := f.task.ListForCaller(ctx, f.engineer)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, mine.ID, views[0].ID)
	require.NotNil(t, views[0].Project)
	assert.Equal(t, "P1", views[0].Project.Name)
	assert.Equal(t, models.StatusPlanning, views[0].Project.Status)
	assert.Nil(t, views[0].Engineer)
}

func TestListTasksForManager(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other := f.addUser(t, "Cleo", "cleo@x.com", models.RoleManager)
	mine := f.createProject(t, f.manager, "Mine")
	theirs := f.createProject(t, other, "Theirs")

	_, err := f.task.Assign(ctx, f.manager, service.AssignTaskInput{
		EngineerID: f.engineer.ID, ProjectID: mine.ID, AllocationPercentage: 40,
	})
	require.NoError(t, err)
	_, err = f.task.Assign(ctx, other, service.AssignTaskInput{
		EngineerID: f.engineer.ID, ProjectID: theirs.ID, AllocationPercentage: 10,
	})
	require.NoError(t, err)

	views, err := f.task.ListForCaller(ctx, f.manager)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, mine.ID, views[0].ProjectID)
	require.NotNil(t, views[0].Engineer)
	assert.Equal(t, "Bob", views[0].Engineer.Name)

	// A manager with no projects sees an empty list, not an error.
	idle := f.addUser(t, "Eve", "eve@x.com", models.RoleManager)
	views, err = f.task.ListForCaller(ctx, idle)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestListTasksSkipsOrphans(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	project := f.createProject(t, f.manager, "P1")

	_, err := f.task.Assign(ctx, f.manager, service.AssignTaskInput{
		EngineerID: f.engineer.ID, ProjectID: project.ID, AllocationPercentage: 40,
	})
	require.NoError(t, err)

	// Simulate a crashed cascade: project gone, task left behind.
	require.NoError(t, f.projects.Delete(ctx, project.ID))

	views, err := f.task.ListForCaller(ctx, f.engineer)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestListTasksForProject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other := f.addUser(t, "Cleo", "cleo@x.com", models.RoleManager)
	project := f.createProject(t, f.manager, "P1")

	_, err := f.task.Assign(ctx, f.manager, service.AssignTaskInput{
		EngineerID: f.engineer.ID, ProjectID: project.ID, AllocationPercentage: 40,
	})
	require.NoError(t, err)

	_, err = f.task.ListForProject(ctx, other, project.ID)
	assert.ErrorIs(t, err, service.ErrNotFoundOrUnauthorized)

	_, err = f.task.ListForProject(ctx, f.engineer, project.ID)
	var ferr *service.ForbiddenError
	assert.ErrorAs(t, err, &ferr)

	views, err := f.task.ListForProject(ctx, f.manager, project.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.NotNil(t, views[0].Engineer)
	assert.Equal(t, "bob@x.com", views[0].Engineer.Email)
}
