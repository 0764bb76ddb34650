package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type LoginRequest struct {
	UserIdentifier string `json:"userIdentifier"`
	UserPassword   string `json:"userPassword"`
}

type SignupRequest struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	Nickname    string  `json:"nickname"`
	UserID      string  `json:"userId"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
}

type SendEmailRequest struct {
	Email string `json:"email"`
}

type FindPasswordRequest struct {
	Identifier string `json:"identifier"`
	UserEmail  string `json:"userEmail"`
}

// TokenPair - 응답에 실리는 토큰은 "Bearer " 접두사를 포함한다.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Role         string `json:"role"`
}

type SignupResponse struct {
	UserID   string `json:"userId"`
	Nickname string `json:"nickname"`
}

type SendEmailResponse struct {
	Email     string `json:"email"`
	ExpiresIn int64  `json:"expiresIn"`
}

type FindIDResponse struct {
	UserID string `json:"userId"`
}

// AuthUser - access token에서 꺼낸 요청자 정보
type AuthUser struct {
	ID   int64
	Role string
}

type User struct {
	ID           int64
	LoginID      string
	Email        string
	PasswordHash string
	Nickname     string
	Role         string
	PhoneNumber  *string
	Coupon       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type NewUser struct {
	LoginID      string
	Email        string
	PasswordHash string
	Nickname     string
	PhoneNumber  *string
}
