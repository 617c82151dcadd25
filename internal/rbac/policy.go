package rbac

import "go-ems/internal/domain"

// Resources gate whole route groups; self-vs-any scoping inside a resource
// (an employee reading their own salary) stays in the services.
const (
	ResourceAttendance           = "attendance"
	ResourceAttendanceAll        = "attendance_all"
	ResourceAttendanceCorrection = "attendance_correction"
	ResourceEmployee             = "employee"
	ResourceLeave                = "leave"
	ResourceLeaveDecision        = "leave_decision"
	ResourceSalary               = "salary"
	ResourcePerformance          = "performance"
	ResourceTask                 = "task"
	ResourceNotification         = "notification"
	ResourceUser                 = "user"
)

const (
	ActionRead   = "read"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

const modelText = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// roleInheritance: admin > manager > employee.
var roleInheritance = [][2]string{
	{domain.RoleAdmin, domain.RoleManager},
	{domain.RoleManager, domain.RoleEmployee},
}

var policies = [][3]string{
	// employee baseline
	{domain.RoleEmployee, ResourceAttendance, ActionCreate},
	{domain.RoleEmployee, ResourceAttendance, ActionRead},
	{domain.RoleEmployee, ResourceAttendance, ActionUpdate},
	{domain.RoleEmployee, ResourceEmployee, ActionRead},
	{domain.RoleEmployee, ResourceLeave, ActionCreate},
	{domain.RoleEmployee, ResourceLeave, ActionRead},
	// withdrawal of an own pending request; ownership checked in the service
	{domain.RoleEmployee, ResourceLeave, ActionDelete},
	{domain.RoleEmployee, ResourceSalary, ActionRead},
	{domain.RoleEmployee, ResourcePerformance, ActionRead},
	{domain.RoleEmployee, ResourceTask, ActionRead},
	{domain.RoleEmployee, ResourceTask, ActionUpdate},
	{domain.RoleEmployee, ResourceNotification, ActionRead},
	{domain.RoleEmployee, ResourceNotification, ActionUpdate},

	// manager additions
	{domain.RoleManager, ResourceAttendanceAll, ActionRead},
	{domain.RoleManager, ResourceAttendanceCorrection, ActionUpdate},
	{domain.RoleManager, ResourceLeaveDecision, ActionUpdate},
	{domain.RoleManager, ResourcePerformance, ActionCreate},
	{domain.RoleManager, ResourcePerformance, ActionUpdate},
	{domain.RoleManager, ResourceTask, ActionCreate},
	{domain.RoleManager, ResourceTask, ActionDelete},

	// admin additions
	{domain.RoleAdmin, ResourceEmployee, ActionCreate},
	{domain.RoleAdmin, ResourceEmployee, ActionUpdate},
	{domain.RoleAdmin, ResourceEmployee, ActionDelete},
	{domain.RoleAdmin, ResourcePerformance, ActionDelete},
	{domain.RoleAdmin, ResourceSalary, ActionCreate},
	{domain.RoleAdmin, ResourceSalary, ActionUpdate},
	{domain.RoleAdmin, ResourceSalary, ActionDelete},
	{domain.RoleAdmin, ResourceUser, ActionCreate},
}
