package validation

import "github.com/tasktrackr/tasktrackr/internal/apperr"

// nameRules bounds project names and task titles.
const nameRules = "required,max=120"

type ProjectInput struct {
	Name        Optional[string] `json:"name"`
	Description Optional[string] `json:"description"`
}

// ProjectChanges holds the validated fields; nil means leave unchanged.
type ProjectChanges struct {
	Name        *string
	Description *string
}

// Columns lists the database columns the changes touch.
func (c ProjectChanges) Columns() []string {
	var cols []string
	if c.Name != nil {
		cols = append(cols, "name")
	}
	if c.Description != nil {
		cols = append(cols, "description")
	}
	return cols
}

// ValidateProject checks a create/replace payload, or a partial one when
// partial is set. Description may be blank.
func ValidateProject(in ProjectInput, partial bool) (ProjectChanges, error) {
	ve := &apperr.ValidationError{}
	var changes ProjectChanges

	changes.Name = text(ve, "name", in.Name, !partial, nameRules)
	changes.Description = text(ve, "description", in.Description, false, "")

	if err := ve.Err(); err != nil {
		return ProjectChanges{}, err
	}
	return changes, nil
}
