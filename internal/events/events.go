package events

// Kafka topics. One topic per aggregate lifecycle event; the notification
// consumer subscribes to all three.
const (
	AttendanceCorrectedTopic = "ems.attendance.corrected"
	LeaveDecidedTopic        = "ems.leave.decided"
	TaskAssignedTopic        = "ems.task.assigned"
)

const (
	AttendanceCorrectedEventType = "attendance.corrected"
	LeaveDecidedEventType        = "leave.decided"
	TaskAssignedEventType        = "task.assigned"
)

type AttendanceCorrectedEvent struct {
	EventType    string `json:"event_type"`
	AttendanceID string `json:"attendance_id"`
	EmployeeID   string `json:"employee_id"`
	Date         string `json:"date"`
	Status       string `json:"status"`
	CorrectedBy  string `json:"corrected_by"`
	Reason       string `json:"reason"`
}

type LeaveDecidedEvent struct {
	EventType  string `json:"event_type"`
	LeaveID    string `json:"leave_id"`
	EmployeeID string `json:"employee_id"`
	Status     string `json:"status"`
	DecidedBy  string `json:"decided_by"`
	Reason     string `json:"reason,omitempty"`
}

type TaskAssignedEvent struct {
	EventType  string `json:"event_type"`
	TaskID     string `json:"task_id"`
	EmployeeID string `json:"employee_id"`
	Title      string `json:"title"`
	AssignedBy string `json:"assigned_by"`
}
