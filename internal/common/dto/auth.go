package dto

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest represents a request to change password
type ChangePasswordRequest struct {
	OldPass string `json:"oldPass"`
	NewPass string `json:"newPass"`
	ConPass string `json:"conPass"`
}
