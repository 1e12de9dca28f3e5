// Package membership implements the cascading leave operations. The record
// store offers no multi-record transactions and relationship fields are
// denormalized on both ends, so each operation runs as a saga: an ordered
// list of independent per-record updates whose results are aggregated into a
// summary, with no implicit rollback. Partial success is reported through the
// updated-record count, never as a hard failure.
package membership

import (
	"context"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/campusboard/backend/domain"
	"github.com/campusboard/backend/repository"
	"github.com/campusboard/backend/usecase"
	"github.com/campusboard/backend/usecase/fetcher"
)

type UseCase struct {
	store   repository.RecordStore
	journal usecase.OperationJournal
	logger  *zap.Logger
}

func New(store repository.RecordStore, journal usecase.OperationJournal, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		store:   store,
		journal: journal,
		logger:  logger,
	}
}

// LeaveTeam deactivates the caller's member records for the given team. The
// sentinel domain.TeamUnknown targets every Active member regardless of team.
// Resolution prefers the profile's own member link list (strategy A) and
// falls back to a member-table query (strategy B) only when A updated zero
// records. Zero matches overall is success with a zero count.
func (uc *UseCase) LeaveTeam(ctx context.Context, contactID, teamID string) (domain.MutationResult, error) {
	if strings.TrimSpace(contactID) == "" {
		return domain.MutationResult{}, domain.MissingInput("contact id is required")
	}
	if strings.TrimSpace(teamID) == "" {
		return domain.MutationResult{}, domain.MissingInput("team id is required (use the unknown sentinel when unresolved)")
	}

	var failures []string
	targets := 0
	updated := 0

	members, errA := uc.membersFromProfile(ctx, contactID, teamID)
	if errA != nil {
		uc.logger.Warn("leave team: profile link resolution failed",
			zap.String("contact_id", contactID),
			zap.Error(errA))
	}
	targets += len(members)
	updated += uc.deactivateMembers(ctx, members, &failures)

	var errB error
	if updated == 0 {
		var queried []domain.Member
		queried, errB = uc.membersFromQuery(ctx, contactID, teamID)
		if errB != nil {
			uc.logger.Warn("leave team: member query fallback failed",
				zap.String("contact_id", contactID),
				zap.Error(errB))
		}
		targets += len(queried)
		updated += uc.deactivateMembers(ctx, queried, &failures)
	}

	if errA != nil && errB != nil {
		return domain.MutationResult{}, domain.StoreFault("unable to resolve member records", multierror.Append(errA, errB))
	}

	uc.record(ctx, domain.OperationRecord{
		ContactID: contactID,
		Operation: domain.OperationLeaveTeam,
		Targets:   targets,
		Updated:   updated,
		Failures:  failures,
	})

	return domain.MutationSuccess(updated, "deactivated %d member record(s)", updated), nil
}

// membersFromProfile is resolution strategy A: traverse the profile's
// denormalized member link list. Member fetches fan out; a failed fetch drops
// that candidate without aborting the rest.
func (uc *UseCase) membersFromProfile(ctx context.Context, contactID, teamID string) ([]domain.Member, error) {
	rec, err := uc.store.Find(ctx, repository.TableContacts, contactID)
	if err != nil {
		return nil, err
	}
	profile := fetcher.ProfileFromRecord(*rec)
	if len(profile.MemberRefs) == 0 {
		return nil, nil
	}

	results := make([]*domain.Member, len(profile.MemberRefs))
	var wg sync.WaitGroup
	for i, memberID := range profile.MemberRefs {
		wg.Add(1)
		go func(i int, memberID string) {
			defer wg.Done()
			memberRec, err := uc.store.Find(ctx, repository.TableMembers, memberID)
			if err != nil {
				uc.logger.Warn("leave team: member fetch failed",
					zap.String("member_id", memberID),
					zap.Error(err))
				return
			}
			member := fetcher.MemberFromRecord(*memberRec)
			results[i] = &member
		}(i, memberID)
	}
	wg.Wait()

	var members []domain.Member
	for _, member := range results {
		if member == nil {
			continue
		}
		if member.Status != domain.StatusActive {
			continue
		}
		if !member.OnTeam(teamID) {
			continue
		}
		members = append(members, *member)
	}
	return members, nil
}

// membersFromQuery is resolution strategy B: query the member table directly.
func (uc *UseCase) membersFromQuery(ctx context.Context, contactID, teamID string) ([]domain.Member, error) {
	filter := repository.Filter{
		repository.FieldContact: contactID,
		repository.FieldStatus:  domain.StatusActive,
	}
	if teamID != domain.TeamUnknown {
		filter[repository.FieldTeam] = teamID
	}
	records, err := uc.store.Query(ctx, repository.TableMembers, filter)
	if err != nil {
		return nil, err
	}
	members := make([]domain.Member, 0, len(records))
	for _, rec := range records {
		members = append(members, fetcher.MemberFromRecord(rec))
	}
	return members, nil
}

func (uc *UseCase) deactivateMembers(ctx context.Context, members []domain.Member, failures *[]string) int {
	updated := 0
	for _, member := range members {
		if _, err := uc.store.Update(ctx, repository.TableMembers, member.ID, map[string]interface{}{
			repository.FieldStatus: domain.StatusInactive,
		}); err != nil {
			*failures = append(*failures, member.ID)
			uc.logger.Error("leave team: member deactivation failed",
				zap.String("member_id", member.ID),
				zap.Error(err))
			continue
		}
		updated++
	}
	return updated
}

// LeaveParticipation deactivates the caller's participation records matched
// by participation id, cohort id or initiative id; at least one is required.
// The direct id path validates ownership and capacity before acting so an
// unintended record is never touched. The scan path queries by contact and
// filters relationship fields in-process because the store's filter language
// cannot express the cohort-to-initiative join.
func (uc *UseCase) LeaveParticipation(ctx context.Context, contactID, participationID, cohortID, initiativeID string) (domain.MutationResult, error) {
	if strings.TrimSpace(contactID) == "" {
		return domain.MutationResult{}, domain.MissingInput("contact id is required")
	}
	if participationID == "" && cohortID == "" && initiativeID == "" {
		return domain.MutationResult{}, domain.MissingInput("a participation, cohort or initiative id is required")
	}

	var targets []domain.Participation
	if participationID != "" {
		participation, err := uc.validatedParticipation(ctx, contactID, participationID)
		if err != nil {
			return domain.MutationResult{}, err
		}
		targets = []domain.Participation{*participation}
	} else {
		matched, err := uc.scanParticipations(ctx, contactID, cohortID, initiativeID)
		if err != nil {
			return domain.MutationResult{}, domain.StoreFault("unable to resolve participation records", err)
		}
		targets = matched
	}

	var failures []string
	updated := 0
	for _, participation := range targets {
		if _, err := uc.store.Update(ctx, repository.TableParticipations, participation.ID, map[string]interface{}{
			repository.FieldStatus: domain.StatusInactive,
		}); err != nil {
			failures = append(failures, participation.ID)
			uc.logger.Error("leave participation: deactivation failed",
				zap.String("participation_id", participation.ID),
				zap.Error(err))
			continue
		}
		updated++
	}

	uc.record(ctx, domain.OperationRecord{
		ContactID: contactID,
		Operation: domain.OperationLeaveParticipation,
		Targets:   len(targets),
		Updated:   updated,
		Failures:  failures,
	})

	return domain.MutationSuccess(updated, "deactivated %d participation record(s)", updated), nil
}

func (uc *UseCase) validatedParticipation(ctx context.Context, contactID, participationID string) (*domain.Participation, error) {
	rec, err := uc.store.Find(ctx, repository.TableParticipations, participationID)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, err
		}
		return nil, domain.StoreFault("unable to fetch participation", err)
	}
	participation := fetcher.ParticipationFromRecord(*rec)
	if !participation.BelongsTo(contactID) {
		return nil, domain.ErrNotAuthorized
	}
	if participation.Capacity != domain.CapacityParticipant {
		return nil, domain.NewError(domain.ErrCodeNotAuthorized, "participation is not participant capacity")
	}
	return &participation, nil
}

func (uc *UseCase) scanParticipations(ctx context.Context, contactID, cohortID, initiativeID string) ([]domain.Participation, error) {
	records, err := uc.store.Query(ctx, repository.TableParticipations, repository.Filter{
		repository.FieldContact: contactID,
	})
	if err != nil {
		return nil, err
	}

	cohortInitiatives := make(map[string]string)
	var matched []domain.Participation
	for _, rec := range records {
		participation := fetcher.ParticipationFromRecord(rec)
		if !participation.IsLeavable() {
			continue
		}
		switch {
		case cohortID != "":
			if !containsID(participation.CohortRefs, cohortID) {
				continue
			}
		case initiativeID != "":
			if !uc.participationInInitiative(ctx, participation, initiativeID, cohortInitiatives) {
				continue
			}
		}
		matched = append(matched, participation)
	}
	return matched, nil
}

// participationInInitiative resolves the cohort's initiative reference,
// caching cohort lookups for the duration of the scan. The denormalized
// initiative lookup on the participation is checked first; the cohort fetch
// covers records where the lookup was never copied over.
func (uc *UseCase) participationInInitiative(ctx context.Context, participation domain.Participation, initiativeID string, cache map[string]string) bool {
	if containsID(participation.InitiativeRefs, initiativeID) {
		return true
	}
	for _, cohortID := range participation.CohortRefs {
		resolved, ok := cache[cohortID]
		if !ok {
			cohort, err := uc.fetchCohort(ctx, cohortID)
			if err != nil {
				uc.logger.Warn("leave participation: cohort resolution failed",
					zap.String("cohort_id", cohortID),
					zap.Error(err))
				cache[cohortID] = ""
				continue
			}
			resolved = cohort.InitiativeID()
			cache[cohortID] = resolved
		}
		if resolved == initiativeID {
			return true
		}
	}
	return false
}

func (uc *UseCase) fetchCohort(ctx context.Context, cohortID string) (*domain.Cohort, error) {
	rec, err := uc.store.Find(ctx, repository.TableCohorts, cohortID)
	if err != nil {
		return nil, err
	}
	cohort := fetcher.CohortFromRecord(*rec)
	return &cohort, nil
}

// DeleteTeamInvitation removes a pending invitation: the member record must
// belong to the team and still carry Invited status. Deleting the member is
// the success criterion; cleanup of invite records referencing it is
// best-effort and never propagated.
func (uc *UseCase) DeleteTeamInvitation(ctx context.Context, memberID, teamID string) (domain.MutationResult, error) {
	if strings.TrimSpace(memberID) == "" {
		return domain.MutationResult{}, domain.MissingInput("member id is required")
	}
	if strings.TrimSpace(teamID) == "" {
		return domain.MutationResult{}, domain.MissingInput("team id is required")
	}

	rec, err := uc.store.Find(ctx, repository.TableMembers, memberID)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return domain.MutationResult{}, err
		}
		return domain.MutationResult{}, domain.StoreFault("unable to fetch member", err)
	}
	member := fetcher.MemberFromRecord(*rec)
	if !member.OnTeam(teamID) {
		return domain.MutationResult{}, domain.ErrNotAuthorized
	}
	if member.Status != domain.StatusInvited {
		return domain.MutationResult{}, domain.NewError(domain.ErrCodeInvalid, "member is not a pending invitation")
	}

	if err := uc.store.Destroy(ctx, repository.TableMembers, memberID); err != nil {
		return domain.MutationResult{}, domain.StoreFault("unable to delete member record", err)
	}
	updated := 1

	var failures []string
	invites, err := uc.store.Query(ctx, repository.TableInvites, repository.Filter{
		repository.FieldMember: memberID,
	})
	if err != nil {
		uc.logger.Warn("delete invitation: invite lookup failed",
			zap.String("member_id", memberID),
			zap.Error(err))
	}
	for _, invite := range invites {
		if err := uc.store.Destroy(ctx, repository.TableInvites, invite.ID); err != nil {
			failures = append(failures, invite.ID)
			uc.logger.Warn("delete invitation: invite cleanup failed",
				zap.String("invite_id", invite.ID),
				zap.Error(err))
			continue
		}
		updated++
	}

	contactID := ""
	if len(member.ContactRefs) > 0 {
		contactID = member.ContactRefs[0]
	}
	uc.record(ctx, domain.OperationRecord{
		ContactID: contactID,
		Operation: domain.OperationDeleteInvitation,
		Targets:   1 + len(invites),
		Updated:   updated,
		Failures:  failures,
	})

	return domain.MutationSuccess(updated, "deleted invitation and %d invite record(s)", updated-1), nil
}

func (uc *UseCase) record(ctx context.Context, record domain.OperationRecord) {
	if uc.journal == nil {
		return
	}
	if err := uc.journal.Record(ctx, record); err != nil {
		uc.logger.Warn("journal append failed",
			zap.String("operation", record.Operation),
			zap.Error(err))
	}
}

func containsID(refs []string, id string) bool {
	for _, ref := range refs {
		if ref == id {
			return true
		}
	}
	return false
}
