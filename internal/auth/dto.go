// AngelaMos | 2026
// dto.go

package auth

import (
	"time"
)

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type RegisterRequest struct {
	Email     string `json:"email"      validate:"required,email,max=255"`
	Password  string `json:"password"   validate:"required,min=8,max=128"`
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name"  validate:"required,min=1,max=100"`

	// Security questions are optional at registration, but recovery
	// needs both pairs, so supplying any of the four fields requires
	// all of them.
	SecurityQuestion1 string `json:"security_question_1" validate:"omitempty,min=1,max=255,required_with=SecurityAnswer1 SecurityQuestion2 SecurityAnswer2"`
	SecurityAnswer1   string `json:"security_answer_1"   validate:"omitempty,min=1,max=255,required_with=SecurityQuestion1 SecurityQuestion2 SecurityAnswer2"`
	SecurityQuestion2 string `json:"security_question_2" validate:"omitempty,min=1,max=255,required_with=SecurityQuestion1 SecurityAnswer1 SecurityAnswer2"`
	SecurityAnswer2   string `json:"security_answer_2"   validate:"omitempty,min=1,max=255,required_with=SecurityQuestion1 SecurityAnswer1 SecurityQuestion2"`
	DateOfBirth       string `json:"date_of_birth"       validate:"omitempty,datetime=2006-01-02"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=128"`
}

type RecoveryQuestionsRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

type RecoveryQuestionsResponse struct {
	Questions []string `json:"questions"`
}

type RecoveryResetRequest struct {
	Email       string `json:"email"         validate:"required,email,max=255"`
	FirstName   string `json:"first_name"    validate:"required,min=1,max=100"`
	LastName    string `json:"last_name"     validate:"required,min=1,max=100"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Answer1     string `json:"answer_1"      validate:"required,min=1,max=255"`
	Answer2     string `json:"answer_2"      validate:"required,min=1,max=255"`
	NewPassword string `json:"new_password"  validate:"required,min=8,max=128"`
}

type TokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int       `json:"expires_in"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type UserResponse struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	Role               string    `json:"role"`
	MustChangePassword bool      `json:"must_change_password"`
	CreatedAt          time.Time `json:"created_at"`
}

type AuthResponse struct {
	User   UserResponse  `json:"user"`
	Tokens TokenResponse `json:"tokens"`
}

type SessionInfo struct {
	ID        string    `json:"id"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SessionsResponse struct {
	Sessions []SessionInfo `json:"sessions"`
}
