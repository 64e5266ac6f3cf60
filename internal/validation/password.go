package validation

import (
	"strings"
	"unicode"
)

const minPasswordLength = 8

var commonPasswords = map[string]struct{}{}

func init() {
	for _, p := range strings.Fields(`
		123456 123456789 12345678 1234567890 1234567 password password1 password123
		qwerty qwerty123 qwertyuiop abc123 111111 123123 000000 iloveyou admin
		admin123 welcome welcome1 letmein monkey dragon football baseball sunshine
		princess master shadow superman michael trustno1 starwars passw0rd
		p@ssw0rd changeme secret secret123 zaq12wsx 1q2w3e4r 1qaz2wsx asdfghjkl
		computer whatever freedom hello123 login default`) {
		commonPasswords[p] = struct{}{}
	}
}

// PasswordProblems returns one message per policy rule the password breaks.
func PasswordProblems(password, username, email string) []string {
	var problems []string

	if len([]rune(password)) < minPasswordLength {
		problems = append(problems, "This password is too short. It must contain at least 8 characters.")
	}
	if _, ok := commonPasswords[strings.ToLower(password)]; ok {
		problems = append(problems, "This password is too common.")
	}
	if isNumeric(password) {
		problems = append(problems, "This password is entirely numeric.")
	}
	if tooSimilar(password, username, email) {
		problems = append(problems, "The password is too similar to the username or email.")
	}

	return problems
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// tooSimilar flags passwords that contain, or are contained in, an identity
// attribute of three characters or more.
func tooSimilar(password, username, email string) bool {
	pw := strings.ToLower(password)
	attrs := []string{strings.ToLower(username)}
	if local, _, ok := strings.Cut(strings.ToLower(email), "@"); ok {
		attrs = append(attrs, local)
	}

	for _, attr := range attrs {
		if len(attr) < 3 {
			continue
		}
		if strings.Contains(pw, attr) || strings.Contains(attr, pw) {
			return true
		}
	}
	return false
}
