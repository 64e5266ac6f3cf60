package types

import (
	"time"

	"github.com/tasktrackr/tasktrackr/internal/models"
	"github.com/tasktrackr/tasktrackr/internal/validation"
)

type ErrorResponse struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields,omitempty"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type TokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type AccessTokenResponse struct {
	Access string `json:"access"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

// ProjectTaskResponse is a task nested in its project, so it omits the
// project reference.
type ProjectTaskResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	DueDate     *string   `json:"due_date"`
	CreatedAt   time.Time `json:"created_at"`
}

type ProjectResponse struct {
	ID          uint                  `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	CreatedAt   time.Time             `json:"created_at"`
	Tasks       []ProjectTaskResponse `json:"tasks"`
}

type TaskResponse struct {
	ID          uint      `json:"id"`
	Project     uint      `json:"project"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	DueDate     *string   `json:"due_date"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{ID: user.ID, Username: user.Username, Email: user.Email}
}

func NewProjectResponse(project *models.Project) ProjectResponse {
	tasks := make([]ProjectTaskResponse, 0, len(project.Tasks))
	for i := range project.Tasks {
		task := &project.Tasks[i]
		tasks = append(tasks, ProjectTaskResponse{
			ID:          task.ID,
			Title:       task.Title,
			Description: task.Description,
			Status:      task.Status,
			DueDate:     formatDueDate(task),
			CreatedAt:   task.CreatedAt,
		})
	}

	return ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		CreatedAt:   project.CreatedAt,
		Tasks:       tasks,
	}
}

func NewTaskResponse(task *models.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Project:     task.ProjectID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		DueDate:     formatDueDate(task),
		CreatedAt:   task.CreatedAt,
	}
}

func formatDueDate(task *models.Task) *string {
	if task.DueDate == nil {
		return nil
	}
	s := time.Time(*task.DueDate).Format(validation.DateLayout)
	return &s
}
