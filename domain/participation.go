package domain

import "strings"

// Record status values shared by Participation and Member records. The
// consistency layer only ever transitions Active to Inactive and deletes
// Invited members; the reverse transitions never happen here.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
	StatusInvited  = "Invited"
)

// Capacity values on a Participation record.
const (
	CapacityParticipant = "Participant"
	CapacityMentor      = "Mentor"
)

// Defaults applied by the record mappers when upstream data omits a field.
const (
	DefaultInitiativeName    = "Unknown Initiative"
	DefaultParticipationType = "Individual"
)

// Participation represents one user's enrollment in one cohort. Status and
// capacity drive the aggregation invariants; the lookup fields mirror
// denormalized values the record store copies from the linked cohort and
// initiative.
type Participation struct {
	ID          string   `json:"id"`
	ContactRefs []string `json:"contact_refs,omitempty"`
	CohortRefs  []string `json:"cohort_refs,omitempty"`
	TeamRefs    []string `json:"team_refs,omitempty"`
	Status      string   `json:"status,omitempty"`
	Capacity    string   `json:"capacity,omitempty"`

	InitiativeRefs    []string `json:"initiative_refs,omitempty"`
	InitiativeName    string   `json:"initiative_name,omitempty"`
	ParticipationType string   `json:"participation_type,omitempty"`
	CohortName        string   `json:"cohort_name,omitempty"`
}

// CohortID returns the first linked cohort id, or empty.
func (p Participation) CohortID() string {
	return firstRef(p.CohortRefs)
}

// InitiativeID returns the first linked initiative id, or empty.
func (p Participation) InitiativeID() string {
	return firstRef(p.InitiativeRefs)
}

// TeamID returns the first linked team id, or empty.
func (p Participation) TeamID() string {
	return firstRef(p.TeamRefs)
}

// IsActiveParticipant reports whether the record counts toward the enhanced
// profile: explicitly Active with Participant capacity.
func (p Participation) IsActiveParticipant() bool {
	return p.Status == StatusActive && p.Capacity == CapacityParticipant
}

// IsLeavable reports whether a cascading leave should target the record.
// Upstream data sometimes omits status entirely; an absent status is treated
// as Active here, but the aggregation path never widens its own check.
func (p Participation) IsLeavable() bool {
	if p.Capacity != CapacityParticipant {
		return false
	}
	return p.Status == "" || p.Status == StatusActive
}

// BelongsTo reports whether the participation links the given contact.
func (p Participation) BelongsTo(contactID string) bool {
	return containsRef(p.ContactRefs, contactID)
}

// teamBasedTokens classifies participation types. The substring match is a
// deliberate compensation for inconsistent upstream data entry ("Team",
// "teams", "Group Project", "Collaborative Track") and must stay fuzzy.
var teamBasedTokens = []string{"team", "group", "collaborative"}

// IsTeamBasedParticipation is the single source of truth for classifying a
// participation type as team-based.
func IsTeamBasedParticipation(participationType string) bool {
	normalized := strings.ToLower(strings.TrimSpace(participationType))
	if normalized == "" {
		return false
	}
	for _, token := range teamBasedTokens {
		if strings.Contains(normalized, token) {
			return true
		}
	}
	return false
}

// Cohort is a time-boxed offering of an initiative.
type Cohort struct {
	ID                string   `json:"id"`
	Name              string   `json:"name,omitempty"`
	IsCurrent         bool     `json:"is_current"`
	InitiativeRefs    []string `json:"initiative_refs,omitempty"`
	ParticipationType string   `json:"participation_type,omitempty"`
}

// InitiativeID returns the first linked initiative id, or empty.
func (c Cohort) InitiativeID() string {
	return firstRef(c.InitiativeRefs)
}

// Initiative is a program definition stable across cohorts.
type Initiative struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Milestone is a cohort deliverable; submission data for it is prefetched in
// the background once the milestone set is known.
type Milestone struct {
	ID         string   `json:"id"`
	Name       string   `json:"name,omitempty"`
	CohortRefs []string `json:"cohort_refs,omitempty"`
	DueDate    string   `json:"due_date,omitempty"`
}

// Submission is a team's response to a milestone.
type Submission struct {
	ID            string   `json:"id"`
	MilestoneRefs []string `json:"milestone_refs,omitempty"`
	TeamRefs      []string `json:"team_refs,omitempty"`
	Status        string   `json:"status,omitempty"`
}

func firstRef(refs []string) string {
	if len(refs) == 0 {
		return ""
	}
	return refs[0]
}

func containsRef(refs []string, id string) bool {
	for _, ref := range refs {
		if ref == id {
			return true
		}
	}
	return false
}
