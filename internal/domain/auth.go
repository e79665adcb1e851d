package domain

type RegisterRequest struct {
	Name           string   `json:"name" binding:"required"`
	Email          string   `json:"email" binding:"required"`
	Password       string   `json:"password" binding:"required"`
	UserType       UserRole `json:"userType" binding:"required"`
	Category       Category `json:"category"`
	Specialization string   `json:"specialization"`
	Phone          string   `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResult struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
