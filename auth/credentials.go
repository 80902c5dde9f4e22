package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Credentials is the single configured admin identity.
type Credentials struct {
	Name     string
	Email    string
	password string
}

func NewCredentials(name, email, password string) Credentials {
	return Credentials{Name: name, Email: email, password: password}
}

// Authenticate reports whether email and password match the admin pair exactly.
// A bcrypt hash configured as the password is checked with bcrypt.
func (c Credentials) Authenticate(email, password string) bool {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(c.Email)) == 1

	var passwordOK bool
	if isBcryptHash(c.password) {
		passwordOK = bcrypt.CompareHashAndPassword([]byte(c.password), []byte(password)) == nil
	} else {
		passwordOK = subtle.ConstantTimeCompare([]byte(password), []byte(c.password)) == 1
	}
	return emailOK && passwordOK
}

func isBcryptHash(s string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}
