package http

// Field names follow the JSON contract the web client speaks (camelCase).

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RegisterRequest struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	FullName        string `json:"fullName"`
	UserType        string `json:"userType"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse carries the public user fields; the password hash never
// appears here.
type UserResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FullName  string `json:"fullName"`
	UserType  string `json:"userType"`
	CreatedAt string `json:"createdAt"`
}

type StatusResponse struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	UserType        string `json:"userType,omitempty"`
}

type LogoutResponse struct {
	Message string `json:"message"`
}
