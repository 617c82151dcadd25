package auth

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Username   string  `json:"username" binding:"required,min=3"`
	Password   string  `json:"password" binding:"required,min=6"`
	Role       string  `json:"role" binding:"required,oneof=admin manager employee"`
	EmployeeID *string `json:"employee_id" binding:"omitempty,uuid"`
}

type AuthResponse struct {
	ID         string  `json:"id"`
	Username   string  `json:"username"`
	Role       string  `json:"role"`
	EmployeeID *string `json:"employee_id,omitempty"`
}
