package domain

// InitiativeSummary is one logical initiative membership derived from the
// user's participations. Exactly one summary exists per distinct initiative
// ref; duplicates in the source data are a data-quality condition resolved
// first-seen wins.
type InitiativeSummary struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	ParticipationType string `json:"participation_type"`
	IsTeamBased       bool   `json:"is_team_based"`
	TeamRef           string `json:"team_ref,omitempty"`
	CohortID          string `json:"cohort_id,omitempty"`
}

// EnhancedProfile is the aggregator output: the raw profile plus derived
// collections, flags and lookup maps. It is pure derived data, rebuilt whole
// whenever any source collection changes and never persisted.
type EnhancedProfile struct {
	Profile

	Participations     []Participation `json:"participations"`
	TeamParticipations []Participation `json:"team_participations"`
	Teams              []Team          `json:"teams"`

	HasActiveParticipation     bool `json:"has_active_participation"`
	HasActiveTeamParticipation bool `json:"has_active_team_participation"`

	// ByCohortID resolves a cohort id to its participation, last-write-wins
	// when a cohort id repeats in the source collection.
	ByCohortID map[string]Participation `json:"-"`

	// ActiveInitiatives holds one entry per distinct initiative among
	// Active+Participant records, in discovery order.
	ActiveInitiatives []InitiativeSummary `json:"active_initiatives"`

	// CohortIDsByInitiative lists every cohort id reachable from the user's
	// active participations, grouped by initiative.
	CohortIDsByInitiative map[string][]string `json:"-"`
}

// Initiative returns the summary for the given initiative id.
func (ep *EnhancedProfile) Initiative(initiativeID string) (InitiativeSummary, bool) {
	if ep == nil {
		return InitiativeSummary{}, false
	}
	for _, summary := range ep.ActiveInitiatives {
		if summary.ID == initiativeID {
			return summary, true
		}
	}
	return InitiativeSummary{}, false
}

// FirstInitiativeID returns the first discovered initiative id, or empty.
func (ep *EnhancedProfile) FirstInitiativeID() string {
	if ep == nil || len(ep.ActiveInitiatives) == 0 {
		return ""
	}
	return ep.ActiveInitiatives[0].ID
}

// TeamByID looks the team up in the full visible team collection. Used as the
// global fallback when a team spans cohorts and is missing from an
// initiative's own team list.
func (ep *EnhancedProfile) TeamByID(teamID string) (Team, bool) {
	if ep == nil || teamID == "" {
		return Team{}, false
	}
	for _, team := range ep.Teams {
		if team.ID == teamID {
			return team, true
		}
	}
	return Team{}, false
}

// ProgramData is the fully joined view of one initiative for the session's
// active program. HasActiveProgram false is the reduced shape returned when
// no initiative id can be resolved at all.
type ProgramData struct {
	HasActiveProgram     bool   `json:"has_active_program"`
	InitiativeID         string `json:"initiative_id,omitempty"`
	InitiativeName       string `json:"initiative_name,omitempty"`
	ParticipationType    string `json:"participation_type,omitempty"`
	IsTeamBased          bool   `json:"is_team_based"`
	CohortID             string `json:"cohort_id,omitempty"`
	TeamID               string `json:"team_id,omitempty"`
	Team                 *Team  `json:"team,omitempty"`
	UserHasMultipleTeams bool   `json:"user_has_multiple_teams"`
}
