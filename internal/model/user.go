package model

import "time"

// User is a registered learner.
type User struct {
	ID            int       `json:"id"`
	Username      string    `json:"username"`
	IndivName     string    `json:"indivname"`
	PasswordHash  *string   `json:"-"`
	ProfileImgURL *string   `json:"profile_img_url,omitempty"`
	Disabled      bool      `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
}

// SignUpRequest registers a new user.
type SignUpRequest struct {
	Username  string `json:"username" binding:"required,email,max=45"`
	IndivName string `json:"indivname" binding:"required,min=1,max=45"`
	Password  string `json:"password" binding:"required,min=8,max=128"`
}

// SignUpResponse confirms a registration.
type SignUpResponse struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// TokenRequest is the password sign-in payload.
type TokenRequest struct {
	Username string `json:"username" form:"username" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

// TokenResponse carries an issued access token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// MeResponse describes the signed-in user.
type MeResponse struct {
	Username      string  `json:"username"`
	IndivName     string  `json:"indivname"`
	ProfileImgURL *string `json:"profile_img_url"`
}
