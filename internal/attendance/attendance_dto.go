package attendance

// Actor is the authenticated identity performing an attendance operation.
// EmployeeID is empty when the user has no linked employee row.
type Actor struct {
	UserID     string
	EmployeeID string
	Role       string
}

type MarkRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
}

type CorrectRequest struct {
	AttendanceID *string `json:"attendance_id" binding:"omitempty,uuid"`
	EmployeeID   string  `json:"employee_id" binding:"omitempty,uuid"`
	Date         string  `json:"date"`
	CheckIn      *string `json:"check_in"`
	CheckOut     *string `json:"check_out"`
	Status       string  `json:"status" binding:"required"`
	Reason       string  `json:"reason" binding:"required"`
}

type AttendanceResponse struct {
	ID               string   `json:"id"`
	EmployeeID       string   `json:"employee_id"`
	EmployeeName     string   `json:"employee_name,omitempty"`
	Date             string   `json:"date"`
	CheckIn          *string  `json:"check_in,omitempty"`
	CheckOut         *string  `json:"check_out,omitempty"`
	Status           string   `json:"status"`
	HoursWorked      *float64 `json:"hours_worked,omitempty"`
	CorrectedBy      *string  `json:"corrected_by,omitempty"`
	CorrectionReason *string  `json:"correction_reason,omitempty"`
	CorrectionTime   *string  `json:"correction_time,omitempty"`
}

type WorkSummaryResponse struct {
	EmployeeID  string  `json:"employee_id"`
	TotalHours  float64 `json:"total_hours"`
	WorkDays    int     `json:"work_days"`
	DaysPresent int     `json:"days_present"`
}
