package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strp(s string) *string { return &s }

func statusp(s Status) *Status { return &s }

func severityp(s Severity) *Severity { return &s }

func TestValidateBug_Create(t *testing.T) {
	tests := []struct {
		name    string
		payload BugPayload
		wantErr string
	}{
		{
			name:    "complete payload",
			payload: BugPayload{Title: strp("Test Bug"), Description: strp("This is a test bug"), Status: statusp(StatusOpen), Severity: severityp(SeverityMedium)},
		},
		{
			name:    "title and description only",
			payload: BugPayload{Title: strp("T"), Description: strp("D")},
		},
		{
			name:    "missing title",
			payload: BugPayload{Description: strp("This is a test bug"), Status: statusp(StatusOpen)},
			wantErr: "Title is required",
		},
		{
			name:    "empty title",
			payload: BugPayload{Title: strp(""), Description: strp("D")},
			wantErr: "Title is required",
		},
		{
			name:    "whitespace title",
			payload: BugPayload{Title: strp(" \t\n"), Description: strp("D")},
			wantErr: "Title is required",
		},
		{
			name:    "missing title wins over missing description",
			payload: BugPayload{},
			wantErr: "Title is required",
		},
		{
			name:    "missing description",
			payload: BugPayload{Title: strp("Test Bug"), Status: statusp(StatusOpen)},
			wantErr: "Description is required",
		},
		{
			name:    "whitespace description",
			payload: BugPayload{Title: strp("Test Bug"), Description: strp("   ")},
			wantErr: "Description is required",
		},
		{
			name:    "missing description wins over bad status",
			payload: BugPayload{Title: strp("Test Bug"), Status: statusp("nope")},
			wantErr: "Description is required",
		},
		{
			name:    "invalid status",
			payload: BugPayload{Title: strp("Test Bug"), Description: strp("D"), Status: statusp("invalid-status")},
			wantErr: "Status must be one of: open, in-progress, resolved",
		},
		{
			name:    "status is case sensitive",
			payload: BugPayload{Title: strp("T"), Description: strp("D"), Status: statusp("Open")},
			wantErr: "Status must be one of: open, in-progress, resolved",
		},
		{
			name:    "bad status wins over bad severity",
			payload: BugPayload{Title: strp("T"), Description: strp("D"), Status: statusp("x"), Severity: severityp("y")},
			wantErr: "Status must be one of: open, in-progress, resolved",
		},
		{
			name:    "invalid severity",
			payload: BugPayload{Title: strp("T"), Description: strp("D"), Severity: severityp("urgent")},
			wantErr: "Severity must be one of: low, medium, high, critical",
		},
		{
			name:    "empty status is treated as omitted",
			payload: BugPayload{Title: strp("T"), Description: strp("D"), Status: statusp(""), Severity: severityp("")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateBug(tt.payload, false)
			if tt.wantErr == "" {
				assert.True(t, result.IsValid)
				assert.Empty(t, result.Error)
				assert.NoError(t, result.Err())
				return
			}
			assert.False(t, result.IsValid)
			assert.Equal(t, tt.wantErr, result.Error)

			var validationErr *ValidationError
			assert.ErrorAs(t, result.Err(), &validationErr)
			assert.Equal(t, tt.wantErr, validationErr.Message)
		})
	}
}

func TestValidateBug_AcceptsEveryEnumValue(t *testing.T) {
	for _, status := range Statuses {
		for _, severity := range Severities {
			result := ValidateBug(BugPayload{
				Title:       strp("T"),
				Description: strp("D"),
				Status:      statusp(status),
				Severity:    severityp(severity),
			}, false)
			assert.True(t, result.IsValid, "%s/%s", status, severity)
		}
	}
}

func TestValidateBug_UpdateAlwaysValid(t *testing.T) {
	payloads := []BugPayload{
		{},
		{Status: statusp(StatusInProgress)},
		{Title: strp("")},
		{Description: strp("  ")},
		{Status: statusp("invalid-status")},
		{Severity: severityp("catastrophic")},
		{Title: strp(""), Description: strp(""), Status: statusp("x"), Severity: severityp("y"), AssignedTo: strp("")},
	}
	for _, p := range payloads {
		result := ValidateBug(p, true)
		assert.True(t, result.IsValid)
		assert.Empty(t, result.Error)
	}
}

func TestBugPayload_NewBugDefaults(t *testing.T) {
	bug := BugPayload{Title: strp("T"), Description: strp("D")}.NewBug()
	assert.Equal(t, "T", bug.Title)
	assert.Equal(t, "D", bug.Description)
	assert.Equal(t, StatusOpen, bug.Status)
	assert.Equal(t, SeverityMedium, bug.Severity)
	assert.Equal(t, DefaultAssignee, bug.AssignedTo)

	bug = BugPayload{
		Title:       strp("T"),
		Description: strp("D"),
		Status:      statusp(StatusResolved),
		Severity:    severityp(SeverityCritical),
		AssignedTo:  strp("John Doe"),
	}.NewBug()
	assert.Equal(t, StatusResolved, bug.Status)
	assert.Equal(t, SeverityCritical, bug.Severity)
	assert.Equal(t, "John Doe", bug.AssignedTo)

	bug = BugPayload{Title: strp("T"), Description: strp("D"), AssignedTo: strp("")}.NewBug()
	assert.Equal(t, DefaultAssignee, bug.AssignedTo)
}

func TestBug_ApplyChangesOnlyPresentFields(t *testing.T) {
	original := Bug{
		ID:          "b1",
		Title:       "Bug to Update",
		Description: "This will be updated",
		Status:      StatusOpen,
		Severity:    SeverityMedium,
		AssignedTo:  DefaultAssignee,
	}

	updated := original.Apply(BugPayload{Status: statusp(StatusInProgress), Severity: severityp(SeverityHigh)})

	assert.Equal(t, StatusInProgress, updated.Status)
	assert.Equal(t, SeverityHigh, updated.Severity)
	assert.Equal(t, "Bug to Update", updated.Title)
	assert.Equal(t, "This will be updated", updated.Description)
	assert.Equal(t, "b1", updated.ID)
	assert.Equal(t, StatusOpen, original.Status)
}
