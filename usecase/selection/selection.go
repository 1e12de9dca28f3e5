// Package selection tracks which initiative is active for a session and
// which team is active within each initiative. A Tracker is an explicit
// mutable object owned by one session's registry entry, never a package
// singleton, and is only mutated by its owning session.
package selection

import (
	"sync"

	"github.com/campusboard/backend/domain"
)

// Tracker holds the session-scoped active-program state.
type Tracker struct {
	mu                     sync.Mutex
	activeInitiativeID     string
	activeTeamByInitiative map[string]string
}

func NewTracker() *Tracker {
	return &Tracker{activeTeamByInitiative: make(map[string]string)}
}

// SetActiveInitiative replaces the active initiative and reports whether the
// value changed. Setting the current value is a no-op so callers can avoid
// recomputation storms on repeated selection.
func (t *Tracker) SetActiveInitiative(initiativeID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.activeInitiativeID == initiativeID {
		return false
	}
	t.activeInitiativeID = initiativeID
	return true
}

func (t *Tracker) ActiveInitiativeID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.activeInitiativeID
}

// SetActiveTeam pins the active team for an initiative.
func (t *Tracker) SetActiveTeam(initiativeID, teamID string) {
	if initiativeID == "" || teamID == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.activeTeamByInitiative[initiativeID] = teamID
}

// TeamsForInitiative filters the visible team collection to teams whose
// cohorts intersect the initiative's cohort set. Input order is preserved.
func (t *Tracker) TeamsForInitiative(ep *domain.EnhancedProfile, initiativeID string) []domain.Team {
	if ep == nil || initiativeID == "" {
		return nil
	}
	cohortIDs := ep.CohortIDsByInitiative[initiativeID]
	if len(cohortIDs) == 0 {
		return nil
	}
	var teams []domain.Team
	for _, team := range ep.Teams {
		if team.InAnyCohort(cohortIDs) {
			teams = append(teams, team)
		}
	}
	return teams
}

// ActiveTeam returns the tracked team id for the initiative. When nothing is
// tracked it selects the first available team and remembers it, so repeated
// calls within a session never re-randomize the default. This
// remember-on-read is the one sanctioned mutation from a read path.
func (t *Tracker) ActiveTeam(ep *domain.EnhancedProfile, initiativeID string) string {
	if initiativeID == "" {
		return ""
	}

	t.mu.Lock()
	if teamID, ok := t.activeTeamByInitiative[initiativeID]; ok {
		t.mu.Unlock()
		return teamID
	}
	t.mu.Unlock()

	teams := t.TeamsForInitiative(ep, initiativeID)
	if len(teams) == 0 {
		return ""
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	// Re-check after re-acquiring: a concurrent default selection wins.
	if teamID, ok := t.activeTeamByInitiative[initiativeID]; ok {
		return teamID
	}
	t.activeTeamByInitiative[initiativeID] = teams[0].ID
	return teams[0].ID
}

// ActiveProgramData resolves the fully joined view for one initiative. The
// id argument takes precedence, then the tracked active initiative, then the
// first discovered one; with none resolvable the reduced no-active-program
// shape comes back.
func (t *Tracker) ActiveProgramData(ep *domain.EnhancedProfile, initiativeID string) domain.ProgramData {
	if ep == nil {
		return domain.ProgramData{}
	}

	if initiativeID == "" {
		initiativeID = t.ActiveInitiativeID()
	}
	if initiativeID == "" {
		initiativeID = ep.FirstInitiativeID()
	}
	if initiativeID == "" {
		return domain.ProgramData{}
	}

	summary, ok := ep.Initiative(initiativeID)
	if !ok {
		summary = domain.InitiativeSummary{
			ID:                initiativeID,
			Name:              domain.DefaultInitiativeName,
			ParticipationType: domain.DefaultParticipationType,
		}
	}

	teams := t.TeamsForInitiative(ep, initiativeID)
	teamID := t.ActiveTeam(ep, initiativeID)

	data := domain.ProgramData{
		HasActiveProgram:     true,
		InitiativeID:         initiativeID,
		InitiativeName:       summary.Name,
		ParticipationType:    summary.ParticipationType,
		IsTeamBased:          summary.IsTeamBased,
		CohortID:             summary.CohortID,
		TeamID:               teamID,
		UserHasMultipleTeams: len(teams) > 1,
	}

	if teamID != "" {
		for i := range teams {
			if teams[i].ID == teamID {
				team := teams[i]
				data.Team = &team
				break
			}
		}
		if data.Team == nil {
			// A team spanning cohorts can be missing from the initiative's
			// own list; fall back to the global lookup.
			if team, ok := ep.TeamByID(teamID); ok {
				data.Team = &team
			}
		}
	}

	return data
}

// Reset clears all tracked state.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.activeInitiativeID = ""
	t.activeTeamByInitiative = make(map[string]string)
}
