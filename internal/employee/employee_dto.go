package employee

type CreateEmployeeRequest struct {
	UserID         *string `json:"user_id" binding:"omitempty,uuid"`
	EmployeeNumber string  `json:"employee_number"`
	FirstName      string  `json:"first_name" binding:"required"`
	LastName       string  `json:"last_name" binding:"required"`
	Email          string  `json:"email" binding:"required,email"`
	Position       string  `json:"position"`
	Department     string  `json:"department"`
	HireDate       string  `json:"hire_date" binding:"required"`
	Salary         float64 `json:"salary" binding:"gte=0"`
}

type UpdateEmployeeRequest struct {
	FirstName  string  `json:"first_name" binding:"required"`
	LastName   string  `json:"last_name" binding:"required"`
	Email      string  `json:"email" binding:"required,email"`
	Position   string  `json:"position"`
	Department string  `json:"department"`
	HireDate   string  `json:"hire_date" binding:"required"`
	Salary     float64 `json:"salary" binding:"gte=0"`
}

type EmployeeResponse struct {
	ID             string  `json:"id"`
	UserID         *string `json:"user_id,omitempty"`
	EmployeeNumber string  `json:"employee_number"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Email          string  `json:"email"`
	Position       string  `json:"position"`
	Department     string  `json:"department"`
	HireDate       string  `json:"hire_date"`
	Salary         float64 `json:"salary"`
}

// EmployeeOption is the trimmed shape used by dropdowns.
type EmployeeOption struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}
