package models

import "github.com/golang-jwt/jwt/v5"

// TokenTypeBearer is the only token type issued.
const TokenTypeBearer = "bearer"

// LoginRequest holds credentials. Username matches either the username or the email.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// JWTClaims is the access token payload. Subject holds the username.
type JWTClaims struct {
	UserID int64    `json:"user_id"`
	Role   UserRole `json:"role"`
	jwt.RegisteredClaims
}
