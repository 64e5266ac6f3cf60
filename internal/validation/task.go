package validation

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/tasktrackr/tasktrackr/internal/apperr"
	"github.com/tasktrackr/tasktrackr/internal/models"
)

const DateLayout = "2006-01-02"

var (
	statusRules = "oneof=" + strings.Join(models.TaskStatuses, " ")
	dateRules   = "datetime=" + DateLayout
)

type TaskInput struct {
	Project     Optional[json.RawMessage] `json:"project"`
	Title       Optional[string]          `json:"title"`
	Description Optional[string]          `json:"description"`
	Status      Optional[string]          `json:"status"`
	DueDate     Optional[string]          `json:"due_date"`
}

// TaskChanges holds the validated fields; nil means leave unchanged.
// DueDateSet with a nil DueDate clears the date. ProjectRef keeps the project
// reference as sent, for error messages.
type TaskChanges struct {
	ProjectID   *uint
	ProjectRef  string
	Title       *string
	Description *string
	Status      *string
	DueDateSet  bool
	DueDate     *time.Time
}

func (c TaskChanges) Columns() []string {
	var cols []string
	if c.ProjectID != nil {
		cols = append(cols, "project_id")
	}
	if c.Title != nil {
		cols = append(cols, "title")
	}
	if c.Description != nil {
		cols = append(cols, "description")
	}
	if c.Status != nil {
		cols = append(cols, "status")
	}
	if c.DueDateSet {
		cols = append(cols, "due_date")
	}
	return cols
}

// ValidateTask checks a create/replace payload, or a partial one when partial
// is set. Whether the project belongs to the caller is left to the service.
func ValidateTask(in TaskInput, partial bool) (TaskChanges, error) {
	ve := &apperr.ValidationError{}
	var changes TaskChanges

	changes.ProjectID, changes.ProjectRef = projectRef(ve, in.Project, !partial)
	changes.Title = text(ve, "title", in.Title, !partial, nameRules)
	changes.Description = text(ve, "description", in.Description, false, "")

	switch {
	case !in.Status.Set:
	case in.Status.Null:
		ve.Add("status", msgNull)
	case check(ve, "status", in.Status.Value, statusRules):
		status := in.Status.Value
		changes.Status = &status
	}

	if in.DueDate.Set {
		changes.DueDateSet = true
		if !in.DueDate.Null && in.DueDate.Value != "" && check(ve, "due_date", in.DueDate.Value, dateRules) {
			if due, err := time.Parse(DateLayout, in.DueDate.Value); err == nil {
				changes.DueDate = &due
			}
		}
	}

	if err := ve.Err(); err != nil {
		return TaskChanges{}, err
	}
	return changes, nil
}

// projectRef accepts a JSON number or a numeric string. Other JSON kinds are
// reported as the wrong type.
func projectRef(ve *apperr.ValidationError, in Optional[json.RawMessage], required bool) (*uint, string) {
	switch {
	case !in.Set:
		if required {
			ve.Add("project", msgRequired)
		}
		return nil, ""
	case in.Null:
		ve.Add("project", msgNull)
		return nil, ""
	}

	ref, kind := pkLiteral(in.Value)
	if kind != "" {
		ve.Add("project", "Incorrect type. Expected pk value, received "+kind+".")
		return nil, ""
	}

	id, err := strconv.ParseUint(ref, 10, 32)
	if err != nil || id == 0 {
		ve.Add("project", InvalidProjectMessage(ref))
		return nil, ref
	}
	pid := uint(id)
	return &pid, ref
}

// pkLiteral returns the reference text, or the JSON kind when raw cannot be a
// primary key.
func pkLiteral(raw json.RawMessage) (ref, kind string) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return "", "str"
	}

	switch v := v.(type) {
	case json.Number:
		return v.String(), ""
	case string:
		v = strings.TrimSpace(v)
		if validate.Var(v, "required,numeric") != nil {
			return "", "str"
		}
		return v, ""
	case bool:
		return "", "bool"
	case []any:
		return "", "list"
	case map[string]any:
		return "", "dict"
	}
	return "", "str"
}

// InvalidProjectMessage is reported for project references that do not
// resolve to one of the caller's projects.
func InvalidProjectMessage(ref string) string {
	return "Invalid pk " + strconv.Quote(ref) + " - object does not exist."
}
