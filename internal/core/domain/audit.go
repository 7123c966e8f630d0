package domain

import "time"

// Audit target types.
const (
	TargetUser    = "user"
	TargetService = "service"
	TargetProject = "project"
	TargetOrder   = "order"
	TargetContent = "content"
)

// AdminAction is an append-only audit record of a privileged mutation:
// who did what, to which entity. Best-effort only — writing it must never
// fail the mutation it describes.
type AdminAction struct {
	ID         string         `json:"id"`
	AdminID    string         `json:"adminId"`
	Action     string         `json:"action"`
	TargetType string         `json:"targetType"`
	TargetID   string         `json:"targetId,omitempty"`
	Details    map[string]any `json:"details"`
	CreatedAt  time.Time      `json:"createdAt"`
}
