package fetcher

import (
	"context"

	"go.uber.org/zap"

	"github.com/campusboard/backend/domain"
	"github.com/campusboard/backend/repository"
)

// Service wraps the record store with one thin, typed fetch per entity. It
// performs no aggregation; collections come back in store order.
type Service struct {
	store  repository.RecordStore
	logger *zap.Logger
}

func New(store repository.RecordStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

func (s *Service) ProfileByUser(ctx context.Context, userID string) (*domain.Profile, error) {
	rec, err := s.store.Find(ctx, repository.TableContacts, userID)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return ProfileFromRecord(*rec), nil
}

// UpdateProfile merges the given fields into the contact record and returns
// the updated profile.
func (s *Service) UpdateProfile(ctx context.Context, userID string, fields map[string]interface{}) (*domain.Profile, error) {
	rec, err := s.store.Update(ctx, repository.TableContacts, userID, fields)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return ProfileFromRecord(*rec), nil
}

func (s *Service) ParticipationsByContact(ctx context.Context, contactID string) ([]domain.Participation, error) {
	records, err := s.store.Query(ctx, repository.TableParticipations, repository.Filter{
		repository.FieldContact: contactID,
	})
	if err != nil {
		return nil, err
	}
	participations := make([]domain.Participation, 0, len(records))
	for _, rec := range records {
		participations = append(participations, ParticipationFromRecord(rec))
	}
	return participations, nil
}

// TeamsForCohorts queries the team table once per cohort and deduplicates by
// team id, preserving first-seen order. One query per cohort is the price of
// a filter language without disjunction.
func (s *Service) TeamsForCohorts(ctx context.Context, cohortIDs []string) ([]domain.Team, error) {
	seen := make(map[string]bool)
	var teams []domain.Team
	for _, cohortID := range cohortIDs {
		records, err := s.store.Query(ctx, repository.TableTeams, repository.Filter{
			"cohorts": cohortID,
		})
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			if seen[rec.ID] {
				continue
			}
			seen[rec.ID] = true
			teams = append(teams, TeamFromRecord(rec))
		}
	}
	return teams, nil
}

func (s *Service) CohortByID(ctx context.Context, cohortID string) (*domain.Cohort, error) {
	rec, err := s.store.Find(ctx, repository.TableCohorts, cohortID)
	if err != nil {
		return nil, err
	}
	cohort := CohortFromRecord(*rec)
	return &cohort, nil
}

func (s *Service) InitiativeByID(ctx context.Context, initiativeID string) (*domain.Initiative, error) {
	rec, err := s.store.Find(ctx, repository.TableInitiatives, initiativeID)
	if err != nil {
		return nil, err
	}
	initiative := InitiativeFromRecord(*rec)
	return &initiative, nil
}

func (s *Service) MemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	rec, err := s.store.Find(ctx, repository.TableMembers, memberID)
	if err != nil {
		return nil, err
	}
	member := MemberFromRecord(*rec)
	return &member, nil
}

func (s *Service) MilestonesByCohort(ctx context.Context, cohortID string) ([]domain.Milestone, error) {
	records, err := s.store.Query(ctx, repository.TableMilestones, repository.Filter{
		repository.FieldCohort: cohortID,
	})
	if err != nil {
		return nil, err
	}
	milestones := make([]domain.Milestone, 0, len(records))
	for _, rec := range records {
		milestones = append(milestones, MilestoneFromRecord(rec))
	}
	return milestones, nil
}

func (s *Service) SubmissionsByMilestone(ctx context.Context, milestoneID string) ([]domain.Submission, error) {
	records, err := s.store.Query(ctx, repository.TableSubmissions, repository.Filter{
		"milestone": milestoneID,
	})
	if err != nil {
		return nil, err
	}
	submissions := make([]domain.Submission, 0, len(records))
	for _, rec := range records {
		submissions = append(submissions, SubmissionFromRecord(rec))
	}
	return submissions, nil
}
