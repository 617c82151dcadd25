package task

// Actor is the authenticated identity performing a task operation.
type Actor struct {
	UserID     string
	EmployeeID string
	Role       string
}

type CreateTaskRequest struct {
	EmployeeID  string `json:"employee_id" binding:"required,uuid"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending in-progress completed"`
}

type TaskResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	EmployeeName     string  `json:"employee_name,omitempty"`
	AssignedBy       string  `json:"assigned_by"`
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	DueDate          *string `json:"due_date,omitempty"`
	Status           string  `json:"status"`
	TimeSpentSeconds int64   `json:"time_spent_seconds"`
	TimerRunning     bool    `json:"timer_running"`
}
