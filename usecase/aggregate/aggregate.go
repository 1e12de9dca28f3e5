// Package aggregate combines independently fetched record collections into
// one consistent enhanced profile. Build is a pure function: it performs no
// I/O, tolerates missing fields, and is re-run whole whenever any source
// collection changes so the derived maps can never diverge from the raw
// collections.
package aggregate

import (
	"github.com/campusboard/backend/domain"
)

// Build derives the enhanced profile from the raw profile record, the user's
// participation collection and the team collection visible to the user.
// Store-returned order is treated as stable but unspecified: first-seen wins
// for duplicate initiatives, last-write-wins for duplicate cohort ids.
func Build(profile *domain.Profile, participations []domain.Participation, teams []domain.Team) *domain.EnhancedProfile {
	ep := &domain.EnhancedProfile{
		Participations:        participations,
		Teams:                 teams,
		ByCohortID:            make(map[string]domain.Participation),
		CohortIDsByInitiative: make(map[string][]string),
	}
	if profile != nil {
		ep.Profile = *profile
	}

	for _, p := range participations {
		if domain.IsTeamBasedParticipation(p.ParticipationType) {
			ep.TeamParticipations = append(ep.TeamParticipations, p)
		}
		for _, cohortID := range p.CohortRefs {
			ep.ByCohortID[cohortID] = p
		}
	}

	ep.HasActiveParticipation = anyActive(ep.Participations)
	ep.HasActiveTeamParticipation = anyActive(ep.TeamParticipations)

	seen := make(map[string]bool)
	seenCohort := make(map[string]map[string]bool)
	for _, p := range participations {
		if !p.IsActiveParticipant() {
			continue
		}
		initiativeID := p.InitiativeID()
		if initiativeID == "" {
			continue
		}

		if !seen[initiativeID] {
			seen[initiativeID] = true
			ep.ActiveInitiatives = append(ep.ActiveInitiatives, domain.InitiativeSummary{
				ID:                initiativeID,
				Name:              p.InitiativeName,
				ParticipationType: p.ParticipationType,
				IsTeamBased:       domain.IsTeamBasedParticipation(p.ParticipationType),
				TeamRef:           p.TeamID(),
				CohortID:          p.CohortID(),
			})
		}

		// Cohort ids accumulate across every participation of the
		// initiative, including the duplicates the summary dedupes.
		if seenCohort[initiativeID] == nil {
			seenCohort[initiativeID] = make(map[string]bool)
		}
		for _, cohortID := range p.CohortRefs {
			if cohortID == "" || seenCohort[initiativeID][cohortID] {
				continue
			}
			seenCohort[initiativeID][cohortID] = true
			ep.CohortIDsByInitiative[initiativeID] = append(ep.CohortIDsByInitiative[initiativeID], cohortID)
		}
	}

	return ep
}

func anyActive(participations []domain.Participation) bool {
	for _, p := range participations {
		if p.Status == domain.StatusActive {
			return true
		}
	}
	return false
}
