package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusboard/backend/domain"
)

func activeParticipation(id, initiativeID, cohortID, participationType string) domain.Participation {
	return domain.Participation{
		ID:                id,
		Status:            domain.StatusActive,
		Capacity:          domain.CapacityParticipant,
		InitiativeRefs:    []string{initiativeID},
		InitiativeName:    "Initiative " + initiativeID,
		CohortRefs:        []string{cohortID},
		ParticipationType: participationType,
	}
}

func TestBuildDeduplicatesInitiativesFirstSeen(t *testing.T) {
	participations := []domain.Participation{
		activeParticipation("p1", "i1", "c1", "Team"),
		activeParticipation("p2", "i1", "c2", "Individual"),
		activeParticipation("p3", "i2", "c3", "Individual"),
	}

	ep := Build(nil, participations, nil)

	require.Len(t, ep.ActiveInitiatives, 2)
	// The first participation of i1 wins; its type sticks even though a
	// later record disagrees.
	assert.Equal(t, "i1", ep.ActiveInitiatives[0].ID)
	assert.Equal(t, "Team", ep.ActiveInitiatives[0].ParticipationType)
	assert.True(t, ep.ActiveInitiatives[0].IsTeamBased)
	assert.Equal(t, "i2", ep.ActiveInitiatives[1].ID)

	// Cohort ids still accumulate across the deduplicated records.
	assert.Equal(t, []string{"c1", "c2"}, ep.CohortIDsByInitiative["i1"])
	assert.Equal(t, []string{"c3"}, ep.CohortIDsByInitiative["i2"])
}

func TestBuildSkipsInactiveAndNonParticipant(t *testing.T) {
	participations := []domain.Participation{
		{ID: "p1", Status: domain.StatusInactive, Capacity: domain.CapacityParticipant, InitiativeRefs: []string{"i1"}},
		{ID: "p2", Status: domain.StatusActive, Capacity: domain.CapacityMentor, InitiativeRefs: []string{"i2"}},
		{ID: "p3", Status: domain.StatusActive, Capacity: domain.CapacityParticipant},
	}

	ep := Build(nil, participations, nil)

	assert.Empty(t, ep.ActiveInitiatives)
	assert.Empty(t, ep.CohortIDsByInitiative)
	// The raw collection is carried untouched.
	assert.Len(t, ep.Participations, 3)
}

func TestBuildActivityFlags(t *testing.T) {
	ep := Build(nil, []domain.Participation{
		{ID: "p1", Status: domain.StatusInactive, ParticipationType: "Team"},
		{ID: "p2", Status: domain.StatusActive, ParticipationType: "Individual"},
	}, nil)

	assert.True(t, ep.HasActiveParticipation)
	// Only p1 is team-based and it is inactive.
	assert.False(t, ep.HasActiveTeamParticipation)
	require.Len(t, ep.TeamParticipations, 1)
	assert.Equal(t, "p1", ep.TeamParticipations[0].ID)
}

func TestBuildByCohortIDLastWriteWins(t *testing.T) {
	ep := Build(nil, []domain.Participation{
		{ID: "p1", CohortRefs: []string{"c1"}},
		{ID: "p2", CohortRefs: []string{"c1", "c2"}},
	}, nil)

	assert.Equal(t, "p2", ep.ByCohortID["c1"].ID)
	assert.Equal(t, "p2", ep.ByCohortID["c2"].ID)
}

func TestBuildCarriesProfileAndTeams(t *testing.T) {
	profile := &domain.Profile{ID: "u1", Email: "u1@example.edu"}
	teams := []domain.Team{{ID: "t1"}, {ID: "t2"}}

	ep := Build(profile, nil, teams)

	assert.Equal(t, "u1", ep.ID)
	assert.Equal(t, teams, ep.Teams)
	assert.False(t, ep.HasActiveParticipation)

	// A nil profile leaves the embedded zero value.
	assert.Equal(t, "", Build(nil, nil, nil).ID)
}
