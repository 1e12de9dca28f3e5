package fetcher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusboard/backend/domain"
	"github.com/campusboard/backend/repository"
	"github.com/campusboard/backend/repository/memory"
)

func TestProfileByUser(t *testing.T) {
	store := memory.NewStore()
	store.Seed(repository.TableContacts, repository.Record{ID: "u1", Fields: map[string]interface{}{
		"email":     "u1@example.edu",
		"firstName": "Jordan",
		"members":   []string{"m1", "m2"},
	}})
	svc := New(store, nil)

	profile, err := svc.ProfileByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1@example.edu", profile.Email)
	assert.Equal(t, []string{"m1", "m2"}, profile.MemberRefs)

	_, err = svc.ProfileByUser(context.Background(), "missing")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}

func TestTeamsForCohortsDeduplicates(t *testing.T) {
	store := memory.NewStore()
	// t1 spans both cohorts and must come back exactly once.
	store.Seed(repository.TableTeams, repository.Record{ID: "t1", Fields: map[string]interface{}{
		"name":    "Alpha",
		"cohorts": []string{"c1", "c2"},
	}})
	store.Seed(repository.TableTeams, repository.Record{ID: "t2", Fields: map[string]interface{}{
		"name":    "Beta",
		"cohorts": []string{"c2"},
	}})
	svc := New(store, nil)

	teams, err := svc.TeamsForCohorts(context.Background(), []string{"c1", "c2"})
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, "t1", teams[0].ID)
	assert.Equal(t, "t2", teams[1].ID)

	empty, err := svc.TeamsForCohorts(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestParticipationMapperDefaults(t *testing.T) {
	p := ParticipationFromRecord(repository.Record{ID: "p1", Fields: map[string]interface{}{
		repository.FieldContact: []string{"c1"},
	}})

	assert.Equal(t, domain.DefaultInitiativeName, p.InitiativeName)
	assert.Equal(t, domain.DefaultParticipationType, p.ParticipationType)
	assert.Empty(t, p.Status)
}

func TestParticipationMapperToleratesLooseShapes(t *testing.T) {
	// Link fields arrive as []interface{} after JSON decoding, or as a bare
	// string from sloppy upstream writers.
	p := ParticipationFromRecord(repository.Record{ID: "p1", Fields: map[string]interface{}{
		repository.FieldCohort: []interface{}{"co1", "co2"},
		repository.FieldTeam:   "t1",
	}})

	assert.Equal(t, []string{"co1", "co2"}, p.CohortRefs)
	assert.Equal(t, "t1", p.TeamID())
}

func TestCohortMapperBoolForms(t *testing.T) {
	c := CohortFromRecord(repository.Record{ID: "co1", Fields: map[string]interface{}{
		"isCurrent": "checked",
	}})
	assert.True(t, c.IsCurrent)

	c = CohortFromRecord(repository.Record{ID: "co2", Fields: map[string]interface{}{
		"isCurrent": false,
	}})
	assert.False(t, c.IsCurrent)
}

func TestMilestonesByCohort(t *testing.T) {
	store := memory.NewStore()
	store.Seed(repository.TableMilestones, repository.Record{ID: "ms1", Fields: map[string]interface{}{
		"name":                 "Checkpoint 1",
		repository.FieldCohort: []string{"co1"},
	}})
	store.Seed(repository.TableMilestones, repository.Record{ID: "ms2", Fields: map[string]interface{}{
		"name":                 "Checkpoint 2",
		repository.FieldCohort: []string{"co2"},
	}})
	svc := New(store, nil)

	milestones, err := svc.MilestonesByCohort(context.Background(), "co1")
	require.NoError(t, err)
	require.Len(t, milestones, 1)
	assert.Equal(t, "Checkpoint 1", milestones[0].Name)
}
