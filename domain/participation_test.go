package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTeamBasedParticipation(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  bool
	}{
		{"exact team", "Team", true},
		{"plural", "Teams", true},
		{"embedded group", "Group Project", true},
		{"collaborative track", "Collaborative Track", true},
		{"mixed case with padding", "  tEaM round  ", true},
		{"individual", "Individual", false},
		{"solo", "Solo Sprint", false},
		{"empty", "", false},
		{"whitespace only", "   ", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsTeamBasedParticipation(tc.input))
		})
	}
}

func TestParticipationIsActiveParticipant(t *testing.T) {
	assert.True(t, Participation{Status: StatusActive, Capacity: CapacityParticipant}.IsActiveParticipant())
	assert.False(t, Participation{Status: StatusInactive, Capacity: CapacityParticipant}.IsActiveParticipant())
	assert.False(t, Participation{Status: StatusActive, Capacity: CapacityMentor}.IsActiveParticipant())
	// Absent status never counts toward the aggregated profile.
	assert.False(t, Participation{Capacity: CapacityParticipant}.IsActiveParticipant())
}

func TestParticipationIsLeavable(t *testing.T) {
	assert.True(t, Participation{Status: StatusActive, Capacity: CapacityParticipant}.IsLeavable())
	// Absent status widens only the leave path.
	assert.True(t, Participation{Capacity: CapacityParticipant}.IsLeavable())
	assert.False(t, Participation{Status: StatusInactive, Capacity: CapacityParticipant}.IsLeavable())
	assert.False(t, Participation{Status: StatusActive, Capacity: CapacityMentor}.IsLeavable())
}

func TestMemberOnTeam(t *testing.T) {
	member := Member{TeamRefs: []string{"team-1"}}
	assert.True(t, member.OnTeam("team-1"))
	assert.False(t, member.OnTeam("team-2"))
	assert.True(t, member.OnTeam(TeamUnknown))

	// The sentinel matches even a member with no team links at all.
	assert.True(t, Member{}.OnTeam(TeamUnknown))
}

func TestTeamInAnyCohort(t *testing.T) {
	team := Team{CohortRefs: []string{"c1", "c2"}}
	assert.True(t, team.InAnyCohort([]string{"c3", "c2"}))
	assert.False(t, team.InAnyCohort([]string{"c3", "c4"}))
	assert.False(t, team.InAnyCohort(nil))
}
