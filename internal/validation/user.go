package validation

import (
	"regexp"
	"strings"

	"github.com/tasktrackr/tasktrackr/internal/apperr"
)

const (
	usernameRules = "required,max=150"
	emailRules    = "required,max=254,email"
)

var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

type RegisterInput struct {
	Username  Optional[string] `json:"username"`
	Email     Optional[string] `json:"email"`
	Password  Optional[string] `json:"password"`
	Password2 Optional[string] `json:"password2"`
}

type Registration struct {
	Username string
	Email    string
	Password string
}

// ValidateRegistration checks the payload shape and the password policy.
// Uniqueness needs the store and is checked by the caller, which can add to
// the returned ValidationError.
func ValidateRegistration(in RegisterInput) (Registration, *apperr.ValidationError) {
	ve := &apperr.ValidationError{}
	var reg Registration

	if username := text(ve, "username", in.Username, true, usernameRules); username != nil {
		if !usernamePattern.MatchString(*username) {
			ve.Add("username", "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
		} else {
			reg.Username = *username
		}
	}

	if email := text(ve, "email", in.Email, true, emailRules); email != nil {
		reg.Email = NormalizeEmail(*email)
	}

	password := rawText(ve, "password", in.Password)
	password2 := rawText(ve, "password2", in.Password2)
	if password != nil && password2 != nil {
		if *password != *password2 {
			ve.Add("password2", "Password fields didn't match.")
		} else {
			for _, problem := range PasswordProblems(*password, reg.Username, reg.Email) {
				ve.Add("password", problem)
			}
			reg.Password = *password
		}
	}

	return reg, ve
}

type LoginInput struct {
	Username Optional[string] `json:"username"`
	Password Optional[string] `json:"password"`
}

func ValidateLogin(in LoginInput) (username, password string, err error) {
	ve := &apperr.ValidationError{}
	u := text(ve, "username", in.Username, true, "required")
	p := rawText(ve, "password", in.Password)
	if err := ve.Err(); err != nil {
		return "", "", err
	}
	return *u, *p, nil
}

type RefreshInput struct {
	Refresh Optional[string] `json:"refresh"`
}

func ValidateRefresh(in RefreshInput) (string, error) {
	ve := &apperr.ValidationError{}
	token := text(ve, "refresh", in.Refresh, true, "required")
	if err := ve.Err(); err != nil {
		return "", err
	}
	return *token, nil
}

// NormalizeEmail lower-cases the whole address so uniqueness is
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// rawText is text without trimming; passwords keep their whitespace.
func rawText(ve *apperr.ValidationError, field string, in Optional[string]) *string {
	switch {
	case !in.Set:
		ve.Add(field, msgRequired)
	case in.Null:
		ve.Add(field, msgNull)
	case in.Value == "":
		ve.Add(field, msgBlank)
	default:
		v := in.Value
		return &v
	}
	return nil
}
