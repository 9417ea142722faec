package domain

type Role string

const (
	RoleSupervisor Role = "supervisor"
	RoleWorker     Role = "worker"
)

type CompletionStatus string

const (
	CompletionPending   CompletionStatus = "pending"
	CompletionCompleted CompletionStatus = "completed"
)

// ValidRoles is the canonical set of accepted role strings.
var ValidRoles = map[string]bool{
	"supervisor": true, "worker": true,
}

// ValidCompletionStatuses is the canonical set of accepted completion status strings.
var ValidCompletionStatuses = map[string]bool{
	"pending": true, "completed": true,
}
