package models

import (
	"time"

	"github.com/lib/pq"
)

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleAdmin     UserRole = "admin"
	RoleStudent   UserRole = "student"
	RoleRecruiter UserRole = "recruiter"
)

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleStudent, RoleRecruiter:
		return true
	}
	return false
}

// User represents an account stored in the users table. Profile columns are
// only populated for the roles that use them.
type User struct {
	ID                 string         `db:"id" json:"id"`
	Name               string         `db:"name" json:"name"`
	Email              string         `db:"email" json:"email"`
	PasswordHash       string         `db:"password_hash" json:"-"`
	Role               UserRole       `db:"role" json:"role"`
	Bio                string         `db:"bio" json:"bio,omitempty"`
	Skills             pq.StringArray `db:"skills" json:"skills,omitempty"`
	Resume             string         `db:"resume" json:"resume,omitempty"`
	ProfilePhoto       string         `db:"profile_photo" json:"profilePhoto,omitempty"`
	CompanyName        string         `db:"company_name" json:"companyName,omitempty"`
	CompanyDescription string         `db:"company_description" json:"companyDescription,omitempty"`
	CompanyLogo        string         `db:"company_logo" json:"companyLogo,omitempty"`
	QuizzesCreated     int            `db:"quizzes_created" json:"quizzesCreated"`
	QuizzesTaken       int            `db:"quizzes_taken" json:"quizzesTaken"`
	LastLogin          *time.Time     `db:"last_login" json:"lastLogin,omitempty"`
	CreatedAt          time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time      `db:"updated_at" json:"updatedAt"`
}

// UserFilter captures filtering criteria for listing users.
type UserFilter struct {
	Role   *UserRole
	Search string
}
