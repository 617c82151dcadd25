package salary

// Actor is the authenticated identity performing a salary operation.
type Actor struct {
	UserID     string
	EmployeeID string
	Role       string
}

type CreateSalaryRequest struct {
	EmployeeID string  `json:"employee_id" binding:"required,uuid"`
	BaseSalary float64 `json:"base_salary" binding:"required"`
	Bonus      float64 `json:"bonus"`
	Deductions float64 `json:"deductions"`
	PayDate    string  `json:"pay_date" binding:"required"`
}

type UpdateSalaryRequest struct {
	BaseSalary float64 `json:"base_salary" binding:"required"`
	Bonus      float64 `json:"bonus"`
	Deductions float64 `json:"deductions"`
	PayDate    string  `json:"pay_date" binding:"required"`
	Status     string  `json:"status" binding:"required,oneof=pending paid"`
}

type SalaryResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	BaseSalary   float64 `json:"base_salary"`
	Bonus        float64 `json:"bonus"`
	Deductions   float64 `json:"deductions"`
	Net          float64 `json:"net"`
	PayDate      string  `json:"pay_date"`
	Status       string  `json:"status"`
	PaidAt       *string `json:"paid_at,omitempty"`
}
