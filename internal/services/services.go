// Package services holds the application logic between the HTTP handlers and
// the store. Every method returns errors from the apperr taxonomy or a
// wrapped store failure.
package services

import (
	"context"

	"github.com/tasktrackr/tasktrackr/internal/auth"
	"github.com/tasktrackr/tasktrackr/internal/models"
	"github.com/tasktrackr/tasktrackr/internal/validation"
)

type AuthService interface {
	// Register validates the payload, enforces the password policy and
	// username/email uniqueness, and stores the new user.
	//
	// It returns *apperr.ValidationError for any rejected field.
	Register(ctx context.Context, in validation.RegisterInput) (*models.User, error)

	// Login checks the credentials and issues a fresh access/refresh pair.
	//
	// Unknown users and wrong passwords both yield an error matching
	// apperr.ErrAuthentication.
	Login(ctx context.Context, in validation.LoginInput) (*auth.TokenPair, error)

	// Refresh exchanges a valid refresh token for a new access token.
	Refresh(ctx context.Context, in validation.RefreshInput) (string, error)

	// Authenticate resolves an access token to its user. Expired, forged or
	// refresh tokens and tokens of deleted users are rejected with an error
	// matching apperr.ErrAuthentication.
	Authenticate(ctx context.Context, token string) (*models.User, error)

	// DeleteAccount removes the user with all owned projects and tasks.
	DeleteAccount(ctx context.Context, userID uint) error
}

// ProjectService operates on the projects owned by userID. Projects of other
// users are reported as apperr.ErrNotFound.
type ProjectService interface {
	List(ctx context.Context, userID uint) ([]models.Project, error)
	Create(ctx context.Context, userID uint, in validation.ProjectInput) (*models.Project, error)
	Get(ctx context.Context, userID, id uint) (*models.Project, error)

	// Update replaces the writable fields, or only the supplied ones when
	// partial is set.
	Update(ctx context.Context, userID, id uint, in validation.ProjectInput, partial bool) (*models.Project, error)

	// Delete removes the project and its tasks.
	Delete(ctx context.Context, userID, id uint) error
}

// TaskService operates on the tasks of projects owned by userID.
type TaskService interface {
	List(ctx context.Context, userID uint) ([]models.Task, error)

	// Create adds a task to one of the user's projects. Status defaults to
	// pending. A project outside the user's scope is a validation error on
	// the project field.
	Create(ctx context.Context, userID uint, in validation.TaskInput) (*models.Task, error)
	Get(ctx context.Context, userID, id uint) (*models.Task, error)
	Update(ctx context.Context, userID, id uint, in validation.TaskInput, partial bool) (*models.Task, error)
	Delete(ctx context.Context, userID, id uint) error
}
