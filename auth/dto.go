// Data transfer objects for the authentication endpoints. These define the
// exact JSON shape of requests and responses; request structs are validated
// before any business logic runs.
package auth

// RegisterRequest represents the registration request payload.
type RegisterRequest struct {
	Name     string `json:"name" example:"Ann"`
	Email    string `json:"email" example:"ann@example.com"`
	Password string `json:"password" example:"strongpassword123"`
}

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Email    string `json:"email" example:"ann@example.com"`
	Password string `json:"password" example:"strongpassword123"`
}

// UserSummary is the public view of a user returned on registration. It
// intentionally carries no password material.
type UserSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RegisterResponse is returned on successful registration.
type RegisterResponse struct {
	Success bool        `json:"success" example:"true"`
	Message string      `json:"message" example:"User registered successfully"`
	User    UserSummary `json:"user"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Login successful"`
	Token   string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// MessageResponse is a generic success envelope with no payload.
type MessageResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message"`
}
