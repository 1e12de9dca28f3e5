package domain

import "fmt"

// MutationResult reports the outcome of a consistency operation. Zero updated
// records is not an error: the caller is always told how many records actually
// changed so the UI can distinguish "you already left" from "we couldn't
// confirm you left". Partial failure surfaces only through UpdatedRecords
// being less than the number of resolved targets.
type MutationResult struct {
	Success        bool   `json:"success"`
	UpdatedRecords int    `json:"updated_records"`
	Message        string `json:"message,omitempty"`
}

// MutationSuccess builds a successful result with a record count.
func MutationSuccess(updated int, format string, args ...interface{}) MutationResult {
	return MutationResult{
		Success:        true,
		UpdatedRecords: updated,
		Message:        fmt.Sprintf(format, args...),
	}
}

// Consistency operation names recorded in the journal.
const (
	OperationLeaveTeam          = "leave_team"
	OperationLeaveParticipation = "leave_participation"
	OperationDeleteInvitation   = "delete_invitation"
)

// OperationRecord summarizes one consistency operation for the journal: the
// ordered sub-operations are independent, so the record keeps both the target
// count and the per-target failures instead of a single verdict.
type OperationRecord struct {
	ContactID string   `json:"contact_id"`
	Operation string   `json:"operation"`
	Targets   int      `json:"targets"`
	Updated   int      `json:"updated"`
	Failures  []string `json:"failures,omitempty"`
}
