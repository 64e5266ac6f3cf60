package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/datatypes"

	"github.com/tasktrackr/tasktrackr/internal/apperr"
	"github.com/tasktrackr/tasktrackr/internal/models"
	"github.com/tasktrackr/tasktrackr/internal/testutil"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	return New(testutil.NewDB(t))
}

func mustUser(t *testing.T, s *Store, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com", PasswordHash: "x"}
	if err := s.Users.Create(context.Background(), u); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

func mustProject(t *testing.T, s *Store, owner *models.User, name string) *models.Project {
	t.Helper()
	p := &models.Project{OwnerID: owner.ID, Name: name}
	if err := s.Projects.Create(context.Background(), p); err != nil {
		t.Fatalf("create project %s: %v", name, err)
	}
	return p
}

func mustTask(t *testing.T, s *Store, project *models.Project, title string) *models.Task {
	t.Helper()
	task := &models.Task{ProjectID: project.ID, Title: title, Status: models.TaskStatusPending}
	if err := s.Tasks.Create(context.Background(), task); err != nil {
		t.Fatalf("create task %s: %v", title, err)
	}
	return task
}

func TestUserUniqueness(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	mustUser(t, s, "alice")

	err := s.Users.Create(ctx, &models.User{Username: "alice", Email: "other@example.com", PasswordHash: "x"})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate username err = %v, want ErrDuplicate", err)
	}

	taken, err := s.Users.EmailTaken(ctx, "ALICE@example.com")
	if err != nil || !taken {
		t.Fatalf("EmailTaken = %v, %v; want true", taken, err)
	}
	taken, err = s.Users.UsernameTaken(ctx, "bob")
	if err != nil || taken {
		t.Fatalf("UsernameTaken(bob) = %v, %v; want false", taken, err)
	}

	if _, err := s.Users.FindByUsername(ctx, "bob"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("FindByUsername(bob) err = %v, want ErrNotFound", err)
	}
}

func TestProjectOwnershipIsolation(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	alice := mustUser(t, s, "alice")
	bob := mustUser(t, s, "bob")
	demo := mustProject(t, s, alice, "Demo")
	mustTask(t, s, demo, "T1")

	projects, err := s.Projects.List(ctx, bob.ID)
	if err != nil {
		t.Fatalf("List(bob): %v", err)
	}
	if len(projects) != 0 {
		t.Fatalf("bob sees %d projects, want 0", len(projects))
	}

	if _, err := s.Projects.Get(ctx, bob.ID, demo.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("Get(bob, demo) err = %v, want ErrNotFound", err)
	}
	if err := s.Projects.Delete(ctx, bob.ID, demo.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("Delete(bob, demo) err = %v, want ErrNotFound", err)
	}
	if ok, err := s.Projects.Exists(ctx, bob.ID, demo.ID); err != nil || ok {
		t.Fatalf("Exists(bob, demo) = %v, %v; want false", ok, err)
	}

	projects, err = s.Projects.List(ctx, alice.ID)
	if err != nil {
		t.Fatalf("List(alice): %v", err)
	}
	if len(projects) != 1 || len(projects[0].Tasks) != 1 || projects[0].Tasks[0].Title != "T1" {
		t.Fatalf("alice projects = %+v", projects)
	}
}

func TestTaskOwnershipIsolation(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	alice := mustUser(t, s, "alice")
	bob := mustUser(t, s, "bob")
	task := mustTask(t, s, mustProject(t, s, alice, "Demo"), "T1")
	mustTask(t, s, mustProject(t, s, bob, "Other"), "T2")

	tasks, err := s.Tasks.List(ctx, alice.ID)
	if err != nil {
		t.Fatalf("List(alice): %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != task.ID {
		t.Fatalf("alice tasks = %+v", tasks)
	}

	if _, err := s.Tasks.Get(ctx, bob.ID, task.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("Get(bob, T1) err = %v, want ErrNotFound", err)
	}
	if err := s.Tasks.Delete(ctx, bob.ID, task.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("Delete(bob, T1) err = %v, want ErrNotFound", err)
	}
	if err := s.Tasks.Delete(ctx, alice.ID, task.ID); err != nil {
		t.Fatalf("Delete(alice, T1): %v", err)
	}
	if _, err := s.Tasks.Get(ctx, alice.ID, task.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("Get after delete err = %v, want ErrNotFound", err)
	}
}

func TestTaskUpdateTouchesOnlyNamedColumns(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	alice := mustUser(t, s, "alice")
	project := mustProject(t, s, alice, "Demo")

	due := datatypes.Date(time.Date(2030, 1, 31, 0, 0, 0, 0, time.UTC))
	task := &models.Task{
		ProjectID:   project.ID,
		Title:       "T1",
		Description: "first",
		Status:      models.TaskStatusPending,
		DueDate:     &due,
	}
	if err := s.Tasks.Create(ctx, task); err != nil {
		t.Fatalf("Create: %v", err)
	}

	patch := *task
	patch.Status = models.TaskStatusDone
	patch.Title = "ignored"
	if err := s.Tasks.Update(ctx, &patch, []string{"status"}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := s.Tasks.Get(ctx, alice.ID, task.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != models.TaskStatusDone || got.Title != "T1" || got.Description != "first" {
		t.Fatalf("task after update = %+v", got)
	}
	if got.DueDate == nil || time.Time(*got.DueDate).Format(time.DateOnly) != "2030-01-31" {
		t.Fatalf("due date = %v, want 2030-01-31", got.DueDate)
	}

	got.DueDate = nil
	if err := s.Tasks.Update(ctx, got, []string{"due_date"}); err != nil {
		t.Fatalf("clear due date: %v", err)
	}
	got, err = s.Tasks.Get(ctx, alice.ID, task.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.DueDate != nil {
		t.Fatalf("due date = %v, want nil", got.DueDate)
	}
}

func TestProjectDeleteCascades(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	alice := mustUser(t, s, "alice")
	project := mustProject(t, s, alice, "Demo")
	t1 := mustTask(t, s, project, "T1")
	t2 := mustTask(t, s, project, "T2")

	if err := s.Projects.Delete(ctx, alice.ID, project.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	for _, id := range []uint{t1.ID, t2.ID} {
		if _, err := s.Tasks.Get(ctx, alice.ID, id); !errors.Is(err, apperr.ErrNotFound) {
			t.Fatalf("task %d err = %v, want ErrNotFound", id, err)
		}
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	database := testutil.NewDB(t)
	s := New(database)
	ctx := context.Background()
	alice := mustUser(t, s, "alice")
	project := mustProject(t, s, alice, "Demo")
	task := mustTask(t, s, project, "T1")

	// Bypass the store so only the database constraint can cascade.
	if err := database.Delete(&models.Project{}, project.ID).Error; err != nil {
		t.Fatalf("raw delete: %v", err)
	}
	var count int64
	database.Model(&models.Task{}).Where("id = ?", task.ID).Count(&count)
	if count != 0 {
		t.Fatalf("task survived project delete")
	}

	err := s.Tasks.Create(ctx, &models.Task{ProjectID: 9999, Title: "orphan", Status: models.TaskStatusPending})
	if err == nil {
		t.Fatal("expected foreign key violation for unknown project")
	}
}

func TestUserDeleteCascades(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	alice := mustUser(t, s, "alice")
	bob := mustUser(t, s, "bob")
	mustTask(t, s, mustProject(t, s, alice, "Demo"), "T1")
	kept := mustTask(t, s, mustProject(t, s, bob, "Other"), "T2")

	if err := s.Users.Delete(ctx, alice.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Users.FindByID(ctx, alice.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("FindByID err = %v, want ErrNotFound", err)
	}
	projects, err := s.Projects.List(ctx, alice.ID)
	if err != nil || len(projects) != 0 {
		t.Fatalf("alice projects = %v, %v", projects, err)
	}
	if _, err := s.Tasks.Get(ctx, bob.ID, kept.ID); err != nil {
		t.Fatalf("bob's task was removed: %v", err)
	}

	if err := s.Users.Delete(ctx, alice.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("second Delete err = %v, want ErrNotFound", err)
	}
}

func TestOwnedByUnknownModel(t *testing.T) {
	database := testutil.NewDB(t)
	s := New(database)
	mustUser(t, s, "alice")

	var users []models.User
	if err := database.Scopes(OwnedBy(1, &models.User{})).Find(&users).Error; err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("unknown model scope returned %d rows", len(users))
	}
}
