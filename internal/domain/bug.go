package domain

import "time"

// Status represents the lifecycle state of a bug.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in-progress"
	StatusResolved   Status = "resolved"
)

// Statuses lists the accepted statuses in display order.
var Statuses = []Status{StatusOpen, StatusInProgress, StatusResolved}

// Severity represents how badly a bug hurts.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Severities lists the accepted severities in ascending order.
var Severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

// DefaultAssignee is stored when a bug is created without an assignee.
const DefaultAssignee = "Unassigned"

// Bug is a single reported defect.
type Bug struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Status      Status    `json:"status" db:"status"`
	Severity    Severity  `json:"severity" db:"severity"`
	AssignedTo  string    `json:"assignedTo" db:"assigned_to"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// BugPayload is the client-supplied field set for a create or update.
// A nil field was not sent.
type BugPayload struct {
	Title       *string   `json:"title,omitempty" validate:"required,notblank"`
	Description *string   `json:"description,omitempty" validate:"required,notblank"`
	Status      *Status   `json:"status,omitempty" validate:"omitempty,oneof=open in-progress resolved"`
	Severity    *Severity `json:"severity,omitempty" validate:"omitempty,oneof=low medium high critical"`
	AssignedTo  *string   `json:"assignedTo,omitempty"`
}

// NewBug builds the record to store for a validated creation payload,
// filling in defaults for omitted or empty optional fields.
func (p BugPayload) NewBug() Bug {
	bug := Bug{
		Status:     StatusOpen,
		Severity:   SeverityMedium,
		AssignedTo: DefaultAssignee,
	}
	if p.Title != nil {
		bug.Title = *p.Title
	}
	if p.Description != nil {
		bug.Description = *p.Description
	}
	if p.Status != nil && *p.Status != "" {
		bug.Status = *p.Status
	}
	if p.Severity != nil && *p.Severity != "" {
		bug.Severity = *p.Severity
	}
	if p.AssignedTo != nil && *p.AssignedTo != "" {
		bug.AssignedTo = *p.AssignedTo
	}
	return bug
}

// Apply returns a copy of b with every field present in p overwritten.
// UpdatedAt is left to the store.
func (b Bug) Apply(p BugPayload) Bug {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.Status != nil {
		b.Status = *p.Status
	}
	if p.Severity != nil {
		b.Severity = *p.Severity
	}
	if p.AssignedTo != nil {
		b.AssignedTo = *p.AssignedTo
	}
	return b
}
