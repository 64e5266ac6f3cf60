package validation

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/tasktrackr/tasktrackr/internal/apperr"
)

func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

func fields(t *testing.T, err error) map[string][]string {
	t.Helper()
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want *apperr.ValidationError", err)
	}
	return ve.Fields
}

func TestOptionalUnmarshal(t *testing.T) {
	var in TaskInput
	if err := json.Unmarshal([]byte(`{"title":"x","due_date":null}`), &in); err != nil {
		t.Fatal(err)
	}
	if !in.Title.Set || in.Title.Null || in.Title.Value != "x" {
		t.Fatalf("title = %+v", in.Title)
	}
	if !in.DueDate.Set || !in.DueDate.Null {
		t.Fatalf("due_date = %+v", in.DueDate)
	}
	if in.Status.Set || in.Project.Set {
		t.Fatal("absent members must stay unset")
	}
}

func TestValidateProject(t *testing.T) {
	tests := []struct {
		name    string
		in      ProjectInput
		partial bool
		field   string
		msg     string
	}{
		{name: "missing name", in: ProjectInput{}, field: "name", msg: msgRequired},
		{name: "blank name", in: ProjectInput{Name: Some("   ")}, field: "name", msg: msgBlank},
		{name: "null name", in: ProjectInput{Name: Null[string]()}, partial: true, field: "name", msg: msgNull},
		{name: "long name", in: ProjectInput{Name: Some(strings.Repeat("a", 121))}, field: "name", msg: maxLenMessage("120")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateProject(tt.in, tt.partial)
			got := fields(t, err)[tt.field]
			if len(got) != 1 || got[0] != tt.msg {
				t.Fatalf("%s errors = %v, want [%s]", tt.field, got, tt.msg)
			}
		})
	}
}

func TestValidateProjectChanges(t *testing.T) {
	changes, err := ValidateProject(ProjectInput{Name: Some("  Demo "), Description: Some("")}, false)
	if err != nil {
		t.Fatal(err)
	}
	if *changes.Name != "Demo" || *changes.Description != "" {
		t.Fatalf("changes = %+v", changes)
	}

	changes, err = ValidateProject(ProjectInput{Description: Some("notes")}, true)
	if err != nil {
		t.Fatal(err)
	}
	if changes.Name != nil {
		t.Fatal("partial update must not touch name")
	}
	if cols := changes.Columns(); len(cols) != 1 || cols[0] != "description" {
		t.Fatalf("columns = %v", cols)
	}
}

func TestValidateTask(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		partial bool
		field   string
		msg     string
	}{
		{name: "missing project", body: `{"title":"T"}`, field: "project", msg: msgRequired},
		{name: "missing title", body: `{"project":1}`, field: "title", msg: msgRequired},
		{name: "bad status", body: `{"project":1,"title":"T","status":"archived"}`, field: "status", msg: `"archived" is not a valid choice.`},
		{name: "null status", body: `{"status":null}`, partial: true, field: "status", msg: msgNull},
		{name: "bad date", body: `{"due_date":"31/12/2030"}`, partial: true, field: "due_date", msg: "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."},
		{name: "negative project", body: `{"project":-3,"title":"T"}`, field: "project", msg: `Invalid pk "-3" - object does not exist.`},
		{name: "null project", body: `{"project":null}`, partial: true, field: "project", msg: msgNull},
		{name: "word project", body: `{"project":"abc","title":"T"}`, field: "project", msg: "Incorrect type. Expected pk value, received str."},
		{name: "bool project", body: `{"project":true,"title":"T"}`, field: "project", msg: "Incorrect type. Expected pk value, received bool."},
		{name: "list project", body: `{"project":[1],"title":"T"}`, field: "project", msg: "Incorrect type. Expected pk value, received list."},
		{name: "object project", body: `{"project":{"id":1},"title":"T"}`, field: "project", msg: "Incorrect type. Expected pk value, received dict."},
		{name: "fractional project", body: `{"project":1.5,"title":"T"}`, field: "project", msg: `Invalid pk "1.5" - object does not exist.`},
		{name: "empty status", body: `{"status":""}`, partial: true, field: "status", msg: `"" is not a valid choice.`},
		{name: "impossible date", body: `{"due_date":"2030-02-30"}`, partial: true, field: "due_date", msg: "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."},
		{name: "long title", body: `{"project":1,"title":"` + strings.Repeat("t", 121) + `"}`, field: "title", msg: maxLenMessage("120")},
		{name: "blank title", body: `{"project":1,"title":"  "}`, field: "title", msg: msgBlank},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in TaskInput
			if err := json.Unmarshal([]byte(tt.body), &in); err != nil {
				t.Fatal(err)
			}
			_, err := ValidateTask(in, tt.partial)
			got := fields(t, err)[tt.field]
			if len(got) != 1 || got[0] != tt.msg {
				t.Fatalf("%s errors = %v, want [%s]", tt.field, got, tt.msg)
			}
		})
	}
}

func TestValidateTaskPartial(t *testing.T) {
	var in TaskInput
	if err := json.Unmarshal([]byte(`{"status":"done","due_date":null}`), &in); err != nil {
		t.Fatal(err)
	}
	changes, err := ValidateTask(in, true)
	if err != nil {
		t.Fatal(err)
	}
	if changes.Title != nil || changes.ProjectID != nil || changes.Description != nil {
		t.Fatalf("unexpected changes: %+v", changes)
	}
	if *changes.Status != "done" || !changes.DueDateSet || changes.DueDate != nil {
		t.Fatalf("changes = %+v", changes)
	}
	want := []string{"status", "due_date"}
	if cols := changes.Columns(); strings.Join(cols, ",") != strings.Join(want, ",") {
		t.Fatalf("columns = %v, want %v", cols, want)
	}
}

func TestValidateTaskFull(t *testing.T) {
	var in TaskInput
	if err := json.Unmarshal([]byte(`{"project":"4","title":"T1","due_date":"2030-01-15"}`), &in); err != nil {
		t.Fatal(err)
	}
	changes, err := ValidateTask(in, false)
	if err != nil {
		t.Fatal(err)
	}
	if *changes.ProjectID != 4 || *changes.Title != "T1" {
		t.Fatalf("changes = %+v", changes)
	}
	if changes.Status != nil {
		t.Fatal("status must be left to the caller's default")
	}
	if got := changes.DueDate.Format(DateLayout); got != "2030-01-15" {
		t.Fatalf("due date = %s", got)
	}
}

func TestValidateRegistration(t *testing.T) {
	reg, ve := ValidateRegistration(RegisterInput{
		Username:  Some("alice"),
		Email:     Some(" Alice@X.com "),
		Password:  Some("Secret123!"),
		Password2: Some("Secret123!"),
	})
	if err := ve.Err(); err != nil {
		t.Fatal(err)
	}
	if reg.Username != "alice" || reg.Email != "alice@x.com" || reg.Password != "Secret123!" {
		t.Fatalf("registration = %+v", reg)
	}
}

func TestValidateRegistrationRejects(t *testing.T) {
	tests := []struct {
		name  string
		in    RegisterInput
		field string
	}{
		{
			name:  "mismatch",
			in:    RegisterInput{Username: Some("alice"), Email: Some("a@x.com"), Password: Some("Secret123!"), Password2: Some("Secret124!")},
			field: "password2",
		},
		{
			name:  "bad username",
			in:    RegisterInput{Username: Some("al ice"), Email: Some("a@x.com"), Password: Some("Secret123!"), Password2: Some("Secret123!")},
			field: "username",
		},
		{
			name:  "bad email",
			in:    RegisterInput{Username: Some("alice"), Email: Some("not-an-email"), Password: Some("Secret123!"), Password2: Some("Secret123!")},
			field: "email",
		},
		{
			name:  "weak password",
			in:    RegisterInput{Username: Some("alice"), Email: Some("a@x.com"), Password: Some("123"), Password2: Some("123")},
			field: "password",
		},
		{
			name:  "missing password2",
			in:    RegisterInput{Username: Some("alice"), Email: Some("a@x.com"), Password: Some("Secret123!")},
			field: "password2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ve := ValidateRegistration(tt.in)
			if !ve.Has(tt.field) {
				t.Fatalf("errors = %v, want %s flagged", ve.Fields, tt.field)
			}
		})
	}
}

func TestPasswordProblems(t *testing.T) {
	tests := []struct {
		password string
		want     int
	}{
		{password: "Secret123!", want: 0},
		{password: "short", want: 1},
		{password: "password", want: 1},
		{password: "12345678", want: 2},
		{password: "alicealice", want: 1},
		{password: "wonderland99", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			got := PasswordProblems(tt.password, "alice", "wonderland99@x.com")
			if len(got) != tt.want {
				t.Fatalf("problems = %v, want %d", got, tt.want)
			}
		})
	}
}

func TestValidateLogin(t *testing.T) {
	_, _, err := ValidateLogin(LoginInput{Username: Some("alice")})
	if got := fields(t, err)["password"]; len(got) != 1 || got[0] != msgRequired {
		t.Fatalf("password errors = %v", got)
	}

	username, password, err := ValidateLogin(LoginInput{Username: Some(" alice "), Password: Some(" pw ")})
	if err != nil {
		t.Fatal(err)
	}
	if username != "alice" || password != " pw " {
		t.Fatalf("got %q, %q", username, password)
	}
}
