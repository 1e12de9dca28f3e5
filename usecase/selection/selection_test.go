package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusboard/backend/domain"
	"github.com/campusboard/backend/usecase/aggregate"
)

func teamProfile() *domain.EnhancedProfile {
	participations := []domain.Participation{
		{
			ID:                "p1",
			Status:            domain.StatusActive,
			Capacity:          domain.CapacityParticipant,
			InitiativeRefs:    []string{"i1"},
			InitiativeName:    "Robotics",
			CohortRefs:        []string{"c1"},
			ParticipationType: "Team",
		},
		{
			ID:                "p2",
			Status:            domain.StatusActive,
			Capacity:          domain.CapacityParticipant,
			InitiativeRefs:    []string{"i2"},
			InitiativeName:    "Essay Track",
			CohortRefs:        []string{"c2"},
			ParticipationType: "Individual",
		},
	}
	teams := []domain.Team{
		{ID: "t1", Name: "Alpha", CohortRefs: []string{"c1"}},
		{ID: "t2", Name: "Beta", CohortRefs: []string{"c1"}},
		{ID: "t3", Name: "Gamma", CohortRefs: []string{"c9"}},
	}
	return aggregate.Build(nil, participations, teams)
}

func TestSetActiveInitiativeReportsChange(t *testing.T) {
	tracker := NewTracker()

	assert.True(t, tracker.SetActiveInitiative("i1"))
	assert.False(t, tracker.SetActiveInitiative("i1"))
	assert.True(t, tracker.SetActiveInitiative("i2"))
	assert.Equal(t, "i2", tracker.ActiveInitiativeID())
}

func TestTeamsForInitiative(t *testing.T) {
	tracker := NewTracker()
	ep := teamProfile()

	teams := tracker.TeamsForInitiative(ep, "i1")
	require.Len(t, teams, 2)
	assert.Equal(t, "t1", teams[0].ID)
	assert.Equal(t, "t2", teams[1].ID)

	assert.Nil(t, tracker.TeamsForInitiative(ep, "i9"))
	assert.Nil(t, tracker.TeamsForInitiative(nil, "i1"))
}

func TestActiveTeamDefaultIsRemembered(t *testing.T) {
	tracker := NewTracker()
	ep := teamProfile()

	assert.Equal(t, "t1", tracker.ActiveTeam(ep, "i1"))

	// Once defaulted the choice sticks, even if the collection order flips.
	reversed := teamProfile()
	reversed.Teams[0], reversed.Teams[1] = reversed.Teams[1], reversed.Teams[0]
	assert.Equal(t, "t1", tracker.ActiveTeam(reversed, "i1"))
}

func TestActiveTeamExplicitSelectionWins(t *testing.T) {
	tracker := NewTracker()
	ep := teamProfile()

	tracker.SetActiveTeam("i1", "t2")
	assert.Equal(t, "t2", tracker.ActiveTeam(ep, "i1"))

	// Empty ids are ignored rather than clearing the selection.
	tracker.SetActiveTeam("i1", "")
	assert.Equal(t, "t2", tracker.ActiveTeam(ep, "i1"))
}

func TestActiveProgramDataResolutionOrder(t *testing.T) {
	tracker := NewTracker()
	ep := teamProfile()

	// No argument and nothing tracked: first discovered initiative.
	data := tracker.ActiveProgramData(ep, "")
	assert.True(t, data.HasActiveProgram)
	assert.Equal(t, "i1", data.InitiativeID)
	assert.Equal(t, "Robotics", data.InitiativeName)
	assert.True(t, data.IsTeamBased)
	assert.True(t, data.UserHasMultipleTeams)
	require.NotNil(t, data.Team)
	assert.Equal(t, "t1", data.Team.ID)

	// Tracked initiative beats discovery order.
	tracker.SetActiveInitiative("i2")
	data = tracker.ActiveProgramData(ep, "")
	assert.Equal(t, "i2", data.InitiativeID)
	assert.False(t, data.IsTeamBased)
	assert.Empty(t, data.TeamID)

	// The explicit argument beats everything.
	data = tracker.ActiveProgramData(ep, "i1")
	assert.Equal(t, "i1", data.InitiativeID)
}

func TestActiveProgramDataUnknownInitiative(t *testing.T) {
	tracker := NewTracker()
	ep := teamProfile()

	data := tracker.ActiveProgramData(ep, "i9")
	assert.True(t, data.HasActiveProgram)
	assert.Equal(t, "i9", data.InitiativeID)
	assert.Equal(t, domain.DefaultInitiativeName, data.InitiativeName)
	assert.Equal(t, domain.DefaultParticipationType, data.ParticipationType)
}

func TestActiveProgramDataNoResolvableInitiative(t *testing.T) {
	tracker := NewTracker()
	empty := aggregate.Build(nil, nil, nil)

	data := tracker.ActiveProgramData(empty, "")
	assert.False(t, data.HasActiveProgram)
	assert.Empty(t, data.InitiativeID)

	assert.False(t, tracker.ActiveProgramData(nil, "i1").HasActiveProgram)
}

func TestActiveProgramDataTeamSpanningCohorts(t *testing.T) {
	tracker := NewTracker()
	ep := teamProfile()

	// t3 is visible globally but not via i1's cohorts; an explicit selection
	// still resolves it through the global lookup.
	tracker.SetActiveTeam("i1", "t3")
	data := tracker.ActiveProgramData(ep, "i1")
	assert.Equal(t, "t3", data.TeamID)
	require.NotNil(t, data.Team)
	assert.Equal(t, "Gamma", data.Team.Name)
}

func TestTwoInitiativeEndToEnd(t *testing.T) {
	participations := []domain.Participation{
		{
			ID:                "p1",
			Status:            domain.StatusActive,
			Capacity:          domain.CapacityParticipant,
			InitiativeRefs:    []string{"I1"},
			InitiativeName:    "Solo Research",
			CohortRefs:        []string{"c1"},
			ParticipationType: "Individual",
		},
		{
			ID:                "p2",
			Status:            domain.StatusActive,
			Capacity:          domain.CapacityParticipant,
			InitiativeRefs:    []string{"I2"},
			InitiativeName:    "Build Sprint",
			CohortRefs:        []string{"c2"},
			TeamRefs:          []string{"T9"},
			ParticipationType: "Team",
		},
	}
	teams := []domain.Team{{ID: "T9", Name: "Niners", CohortRefs: []string{"c2"}}}
	ep := aggregate.Build(nil, participations, teams)

	require.Len(t, ep.ActiveInitiatives, 2)
	assert.Equal(t, "I1", ep.ActiveInitiatives[0].ID)
	assert.Equal(t, "I2", ep.ActiveInitiatives[1].ID)

	tracker := NewTracker()
	data := tracker.ActiveProgramData(ep, "I2")
	assert.Equal(t, "T9", data.TeamID)
	assert.True(t, data.IsTeamBased)
	assert.False(t, data.UserHasMultipleTeams)
}

func TestReset(t *testing.T) {
	tracker := NewTracker()
	ep := teamProfile()

	tracker.SetActiveInitiative("i2")
	tracker.SetActiveTeam("i1", "t2")
	tracker.Reset()

	assert.Empty(t, tracker.ActiveInitiativeID())
	assert.Equal(t, "t1", tracker.ActiveTeam(ep, "i1"))
}
