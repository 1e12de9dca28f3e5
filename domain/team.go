package domain

// TeamUnknown is the sentinel team id accepted by LeaveTeam when the caller
// cannot resolve which team the user belongs to; every Active member record
// becomes a target.
const TeamUnknown = "unknown"

// Team groups members within one or more cohorts. CohortRefs is denormalized
// on the team side too, so a team can span cohorts.
type Team struct {
	ID         string   `json:"id"`
	Name       string   `json:"name,omitempty"`
	MemberRefs []string `json:"member_refs,omitempty"`
	CohortRefs []string `json:"cohort_refs,omitempty"`
}

// InCohort reports whether the team is linked to the given cohort.
func (t Team) InCohort(cohortID string) bool {
	return containsRef(t.CohortRefs, cohortID)
}

// InAnyCohort reports whether the team's cohorts intersect the given set.
func (t Team) InAnyCohort(cohortIDs []string) bool {
	for _, id := range cohortIDs {
		if t.InCohort(id) {
			return true
		}
	}
	return false
}

// Member is the team-membership join record.
type Member struct {
	ID          string   `json:"id"`
	ContactRefs []string `json:"contact_refs,omitempty"`
	TeamRefs    []string `json:"team_refs,omitempty"`
	Status      string   `json:"status,omitempty"`
}

// OnTeam reports whether the member record links the given team. The unknown
// sentinel matches any team.
func (m Member) OnTeam(teamID string) bool {
	if teamID == TeamUnknown {
		return true
	}
	return containsRef(m.TeamRefs, teamID)
}

// BelongsTo reports whether the member record links the given contact.
func (m Member) BelongsTo(contactID string) bool {
	return containsRef(m.ContactRefs, contactID)
}

// Invite is a pending-invitation token tied to a Member record with
// Invited status.
type Invite struct {
	ID         string   `json:"id"`
	MemberRefs []string `json:"member_refs,omitempty"`
	TeamRefs   []string `json:"team_refs,omitempty"`
	Email      string   `json:"email,omitempty"`
	Token      string   `json:"token,omitempty"`
}
