package fetcher

import (
	"github.com/campusboard/backend/domain"
	"github.com/campusboard/backend/repository"
)

// Record mappers. Upstream records arrive with loosely typed, frequently
// absent fields; every fallback lives here, one mapper per entity, so the
// rest of the core works with fully populated structs.

func ProfileFromRecord(rec repository.Record) *domain.Profile {
	return &domain.Profile{
		ID:              rec.ID,
		Email:           rec.String("email"),
		FirstName:       rec.String("firstName"),
		LastName:        rec.String("lastName"),
		InstitutionID:   rec.String("institutionId"),
		InstitutionName: rec.String("institutionName"),
		MemberRefs:      rec.Strings("members"),
	}
}

func ParticipationFromRecord(rec repository.Record) domain.Participation {
	p := domain.Participation{
		ID:                rec.ID,
		ContactRefs:       rec.Strings(repository.FieldContact),
		CohortRefs:        rec.Strings(repository.FieldCohort),
		TeamRefs:          rec.Strings(repository.FieldTeam),
		Status:            rec.String(repository.FieldStatus),
		Capacity:          rec.String(repository.FieldCapacity),
		InitiativeRefs:    rec.Strings("initiative"),
		InitiativeName:    rec.String("initiativeName"),
		ParticipationType: rec.String("participationType"),
		CohortName:        rec.String("cohortName"),
	}
	if p.InitiativeName == "" {
		p.InitiativeName = domain.DefaultInitiativeName
	}
	if p.ParticipationType == "" {
		p.ParticipationType = domain.DefaultParticipationType
	}
	return p
}

func CohortFromRecord(rec repository.Record) domain.Cohort {
	c := domain.Cohort{
		ID:                rec.ID,
		Name:              rec.String("name"),
		IsCurrent:         rec.Bool("isCurrent"),
		InitiativeRefs:    rec.Strings("initiative"),
		ParticipationType: rec.String("participationType"),
	}
	if c.ParticipationType == "" {
		c.ParticipationType = domain.DefaultParticipationType
	}
	return c
}

func InitiativeFromRecord(rec repository.Record) domain.Initiative {
	name := rec.String("name")
	if name == "" {
		name = domain.DefaultInitiativeName
	}
	return domain.Initiative{ID: rec.ID, Name: name}
}

func TeamFromRecord(rec repository.Record) domain.Team {
	return domain.Team{
		ID:         rec.ID,
		Name:       rec.String("name"),
		MemberRefs: rec.Strings("members"),
		CohortRefs: rec.Strings("cohorts"),
	}
}

func MemberFromRecord(rec repository.Record) domain.Member {
	return domain.Member{
		ID:          rec.ID,
		ContactRefs: rec.Strings(repository.FieldContact),
		TeamRefs:    rec.Strings(repository.FieldTeam),
		Status:      rec.String(repository.FieldStatus),
	}
}

func InviteFromRecord(rec repository.Record) domain.Invite {
	return domain.Invite{
		ID:         rec.ID,
		MemberRefs: rec.Strings(repository.FieldMember),
		TeamRefs:   rec.Strings(repository.FieldTeam),
		Email:      rec.String("email"),
		Token:      rec.String("token"),
	}
}

func MilestoneFromRecord(rec repository.Record) domain.Milestone {
	return domain.Milestone{
		ID:         rec.ID,
		Name:       rec.String("name"),
		CohortRefs: rec.Strings(repository.FieldCohort),
		DueDate:    rec.String("dueDate"),
	}
}

func SubmissionFromRecord(rec repository.Record) domain.Submission {
	return domain.Submission{
		ID:            rec.ID,
		MilestoneRefs: rec.Strings("milestone"),
		TeamRefs:      rec.Strings(repository.FieldTeam),
		Status:        rec.String(repository.FieldStatus),
	}
}
