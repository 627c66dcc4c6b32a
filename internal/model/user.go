package model

import "time"

const (
	TypeApplicant = "applicant"
	TypeRecruiter = "recruiter"
	TypeAdmin     = "admin"
)

// User is the credential record for one account. Exactly one role profile
// of the matching variant exists per user.
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Do not expose password hash in JSON responses
	Type         string    `json:"type"`
	CreatedAt    time.Time `json:"created_at"`
}

// ValidUserType reports whether t is one of the three allowed account types.
func ValidUserType(t string) bool {
	switch t {
	case TypeApplicant, TypeRecruiter, TypeAdmin:
		return true
	}
	return false
}
