package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusboard/backend/domain"
	"github.com/campusboard/backend/repository"
	"github.com/campusboard/backend/repository/memory"
	"github.com/campusboard/backend/usecase/fetcher"
	"github.com/campusboard/backend/usecase/membership"
)

func newDashboard(store *memory.Store) *UseCase {
	fetch := fetcher.New(store, nil)
	membershipUC := membership.New(store, nil, nil)
	return New(fetch, membershipUC, nil, nil)
}

func seedFixture(store *memory.Store) {
	store.Seed(repository.TableContacts, repository.Record{ID: "u1", Fields: map[string]interface{}{
		"email":     "u1@example.edu",
		"firstName": "Jordan",
	}})
	store.Seed(repository.TableParticipations, repository.Record{ID: "p1", Fields: map[string]interface{}{
		repository.FieldContact:  []string{"u1"},
		repository.FieldCohort:   []string{"co1"},
		repository.FieldStatus:   domain.StatusActive,
		repository.FieldCapacity: domain.CapacityParticipant,
		"initiative":             []string{"i1"},
		"initiativeName":         "Robotics",
		"participationType":      "Team",
	}})
	store.Seed(repository.TableTeams, repository.Record{ID: "t1", Fields: map[string]interface{}{
		"name":    "Alpha",
		"cohorts": []string{"co1"},
	}})
	store.Seed(repository.TableMilestones, repository.Record{ID: "ms1", Fields: map[string]interface{}{
		"name":                "Checkpoint 1",
		repository.FieldCohort: []string{"co1"},
	}})
}

func TestEnhancedProfileAggregatesAndCaches(t *testing.T) {
	store := memory.NewStore()
	seedFixture(store)
	uc := newDashboard(store)

	ep, err := uc.EnhancedProfile(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1@example.edu", ep.Email)
	require.Len(t, ep.ActiveInitiatives, 1)
	assert.Equal(t, "i1", ep.ActiveInitiatives[0].ID)
	assert.True(t, ep.HasActiveTeamParticipation)
	require.Len(t, ep.Teams, 1)

	// A direct store mutation is invisible until the cache is dropped.
	store.Seed(repository.TableParticipations, repository.Record{ID: "p1", Fields: map[string]interface{}{
		repository.FieldContact: []string{"u1"},
		repository.FieldStatus:  domain.StatusInactive,
	}})
	cached, err := uc.EnhancedProfile(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, cached.HasActiveParticipation)

	require.NoError(t, uc.RefreshData("u1", "all"))
	fresh, err := uc.EnhancedProfile(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, fresh.HasActiveParticipation)
}

func TestEnhancedProfileRequiresUser(t *testing.T) {
	uc := newDashboard(memory.NewStore())
	_, err := uc.EnhancedProfile(context.Background(), "")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeMissingInput))
}

func TestUpdateProfileInvalidatesDerivedViews(t *testing.T) {
	store := memory.NewStore()
	seedFixture(store)
	uc := newDashboard(store)

	_, err := uc.EnhancedProfile(context.Background(), "u1")
	require.NoError(t, err)

	profile, err := uc.UpdateProfile(context.Background(), "u1", map[string]interface{}{
		"firstName": "Sam",
	})
	require.NoError(t, err)
	assert.Equal(t, "Sam", profile.FirstName)

	ep, err := uc.EnhancedProfile(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Sam", ep.FirstName)
}

func TestUpdateProfileRejectsEmptyPayload(t *testing.T) {
	uc := newDashboard(memory.NewStore())
	_, err := uc.UpdateProfile(context.Background(), "u1", nil)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestLeaveParticipationInvalidatesComposedView(t *testing.T) {
	store := memory.NewStore()
	seedFixture(store)
	uc := newDashboard(store)

	before, err := uc.EnhancedProfile(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, before.HasActiveParticipation)

	result, err := uc.LeaveParticipation(context.Background(), "u1", "p1", "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, result.UpdatedRecords)

	after, err := uc.EnhancedProfile(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, after.HasActiveParticipation)
	assert.Empty(t, after.ActiveInitiatives)
}

func TestSetActiveProgramAndActiveData(t *testing.T) {
	store := memory.NewStore()
	seedFixture(store)
	uc := newDashboard(store)

	require.NoError(t, uc.SetActiveProgram(context.Background(), "u1", "i1"))

	data, err := uc.ActiveProgramData(context.Background(), "u1", "")
	require.NoError(t, err)
	assert.True(t, data.HasActiveProgram)
	assert.Equal(t, "i1", data.InitiativeID)
	assert.Equal(t, "Robotics", data.InitiativeName)
	assert.Equal(t, "t1", data.TeamID)

	err = uc.SetActiveProgram(context.Background(), "u1", "")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeMissingInput))
}

func TestTeamsForProgram(t *testing.T) {
	store := memory.NewStore()
	seedFixture(store)
	uc := newDashboard(store)

	teams, err := uc.TeamsForProgram(context.Background(), "u1", "i1")
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, "Alpha", teams[0].Name)

	_, err = uc.TeamsForProgram(context.Background(), "u1", "")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeMissingInput))
}

func TestMilestonesForActiveProgram(t *testing.T) {
	store := memory.NewStore()
	seedFixture(store)
	uc := newDashboard(store)

	milestones, err := uc.Milestones(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, milestones, 1)
	assert.Equal(t, "Checkpoint 1", milestones[0].Name)

	// Cached on the second read.
	again, err := uc.Milestones(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, milestones, again)
}

func TestMilestonesWithoutActiveProgram(t *testing.T) {
	store := memory.NewStore()
	store.Seed(repository.TableContacts, repository.Record{ID: "u2", Fields: map[string]interface{}{
		"email": "u2@example.edu",
	}})
	uc := newDashboard(store)

	milestones, err := uc.Milestones(context.Background(), "u2")
	require.NoError(t, err)
	assert.Nil(t, milestones)
}

func TestRefreshDataScopes(t *testing.T) {
	store := memory.NewStore()
	seedFixture(store)
	uc := newDashboard(store)

	for _, scope := range []string{"", "all", "profile", "participation", "milestones"} {
		assert.NoError(t, uc.RefreshData("u1", scope), scope)
	}

	err := uc.RefreshData("u1", "everything")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestProgramInitiatives(t *testing.T) {
	store := memory.NewStore()
	seedFixture(store)
	uc := newDashboard(store)

	initiatives, err := uc.ProgramInitiatives(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, initiatives, 1)
	assert.True(t, initiatives[0].IsTeamBased)
}
