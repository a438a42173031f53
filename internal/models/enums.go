package models

// Status is shared by milestones and tasks.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusDelayed    Status = "delayed"
)

// StatusOneOf is the validator tag listing every Status.
const StatusOneOf = "oneof=pending in_progress completed delayed"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

const PriorityOneOf = "oneof=low medium high"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

const RoleOneOf = "oneof=admin user"
