package performance

// Actor is the authenticated identity performing an evaluation operation.
type Actor struct {
	UserID     string
	EmployeeID string
	Role       string
}

type CreateEvaluationRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Period     string `json:"period" binding:"required"`
	Score      int    `json:"score" binding:"required,min=1,max=5"`
	Feedback   string `json:"feedback"`
}

type UpdateEvaluationRequest struct {
	Score    int    `json:"score" binding:"required,min=1,max=5"`
	Feedback string `json:"feedback"`
}

type EvaluationResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	ReviewerID   string `json:"reviewer_id"`
	Period       string `json:"period"`
	Score        int    `json:"score"`
	Feedback     string `json:"feedback"`
}
