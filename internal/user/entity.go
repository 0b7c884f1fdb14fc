// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID                  string     `db:"id"`
	Email               string     `db:"email"`
	PasswordHash        string     `db:"password_hash"`
	FirstName           string     `db:"first_name"`
	LastName            string     `db:"last_name"`
	Role                string     `db:"role"`
	MustChangePassword  bool       `db:"must_change_password"`
	SecurityQuestion1   *string    `db:"security_question_1"`
	SecurityAnswerHash1 *string    `db:"security_answer_hash_1"`
	SecurityQuestion2   *string    `db:"security_question_2"`
	SecurityAnswerHash2 *string    `db:"security_answer_hash_2"`
	DateOfBirth         *time.Time `db:"date_of_birth"`
	TokenVersion        int        `db:"token_version"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at"`
	DeletedAt           *time.Time `db:"deleted_at"`
}

func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
