// Package dashboard orchestrates the exported surface: fetch fan-out,
// aggregation, per-session selection state, caching and the cascading leave
// operations, wired together for the page layer.
package dashboard

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/campusboard/backend/domain"
	"github.com/campusboard/backend/internal/cache"
	"github.com/campusboard/backend/internal/prefetch"
	"github.com/campusboard/backend/usecase/aggregate"
	"github.com/campusboard/backend/usecase/fetcher"
	"github.com/campusboard/backend/usecase/membership"
	"github.com/campusboard/backend/usecase/selection"
)

// Session bundles the state owned by one user context: the keyed cache and
// the active-selection tracker. It is created lazily and mutated only through
// the use case methods called on behalf of its user.
type Session struct {
	userID  string
	cache   *cache.Store
	tracker *selection.Tracker

	// milestoneEpoch invalidates in-flight submission warm-ups: the warmer
	// checks the epoch before every batch and stops once the active program
	// has moved on.
	milestoneEpoch atomic.Int64
}

func (s *Session) bumpMilestoneEpoch() int64 {
	return s.milestoneEpoch.Add(1)
}

// UseCase is the dashboard orchestrator.
type UseCase struct {
	fetch      *fetcher.Service
	membership *membership.UseCase
	warmer     *prefetch.Warmer
	logger     *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

func New(fetch *fetcher.Service, membershipUC *membership.UseCase, warmer *prefetch.Warmer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		fetch:      fetch,
		membership: membershipUC,
		warmer:     warmer,
		logger:     logger,
		sessions:   make(map[string]*Session),
	}
}

func (uc *UseCase) session(userID string) *Session {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if sess, ok := uc.sessions[userID]; ok {
		return sess
	}
	sess := &Session{
		userID:  userID,
		cache:   cache.New(0),
		tracker: selection.NewTracker(),
	}
	uc.sessions[userID] = sess
	return sess
}

// EnhancedProfile returns the aggregated view for the user, recomputing it
// only when the composed cache entry is missing. Profile and participation
// fetches fan out; the team fetch depends on the discovered cohorts and runs
// after.
func (uc *UseCase) EnhancedProfile(ctx context.Context, userID string) (*domain.EnhancedProfile, error) {
	if userID == "" {
		return nil, domain.MissingInput("user id is required")
	}
	sess := uc.session(userID)
	if cached, ok := sess.cache.Get(cache.KeyProfileComposed); ok {
		if ep, ok := cached.(*domain.EnhancedProfile); ok {
			return ep, nil
		}
	}

	var (
		profile        *domain.Profile
		participations []domain.Participation
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = uc.fetch.ProfileByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		participations, err = uc.fetch.ParticipationsByContact(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	teams, err := uc.fetch.TeamsForCohorts(ctx, cohortIDs(participations))
	if err != nil {
		return nil, err
	}

	ep := aggregate.Build(profile, participations, teams)
	sess.cache.Set(cache.KeyProfile, profile)
	sess.cache.Set(cache.KeyContactCurrent, profile)
	sess.cache.Set(cache.KeyParticipation, participations)
	sess.cache.Set(cache.KeyProfileComposed, ep)
	return ep, nil
}

// UpdateProfile edits the contact record and drops the profile-derived cache
// entries so the next read reflects the change.
func (uc *UseCase) UpdateProfile(ctx context.Context, userID string, fields map[string]interface{}) (*domain.Profile, error) {
	if userID == "" {
		return nil, domain.MissingInput("user id is required")
	}
	if len(fields) == 0 {
		return nil, domain.ErrInvalidPayload
	}
	profile, err := uc.fetch.UpdateProfile(ctx, userID, fields)
	if err != nil {
		return nil, err
	}
	sess := uc.session(userID)
	sess.cache.Invalidate(cache.KeyProfile, cache.KeyContactCurrent, cache.KeyEducationUser, cache.KeyProfileComposed)
	return profile, nil
}

// ProgramInitiatives returns the user's logical initiative memberships in
// discovery order.
func (uc *UseCase) ProgramInitiatives(ctx context.Context, userID string) ([]domain.InitiativeSummary, error) {
	ep, err := uc.EnhancedProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ep.ActiveInitiatives, nil
}

// SetActiveProgram switches the session's active initiative. A changed
// selection bumps the milestone epoch (stopping stale warm-ups) and drops the
// milestone cache.
func (uc *UseCase) SetActiveProgram(ctx context.Context, userID, initiativeID string) error {
	if userID == "" || initiativeID == "" {
		return domain.MissingInput("user id and initiative id are required")
	}
	sess := uc.session(userID)
	if sess.tracker.SetActiveInitiative(initiativeID) {
		sess.bumpMilestoneEpoch()
		sess.cache.Invalidate(cache.KeyMilestones)
		sess.cache.InvalidateSubmissions()
	}
	return nil
}

// ActiveProgramData resolves the fully joined view for one initiative; an
// empty id falls back to the tracked then first discovered initiative.
func (uc *UseCase) ActiveProgramData(ctx context.Context, userID, initiativeID string) (domain.ProgramData, error) {
	ep, err := uc.EnhancedProfile(ctx, userID)
	if err != nil {
		return domain.ProgramData{}, err
	}
	sess := uc.session(userID)
	return sess.tracker.ActiveProgramData(ep, initiativeID), nil
}

// TeamsForProgram lists the user's resolvable teams for an initiative.
func (uc *UseCase) TeamsForProgram(ctx context.Context, userID, initiativeID string) ([]domain.Team, error) {
	if initiativeID == "" {
		return nil, domain.MissingInput("initiative id is required")
	}
	ep, err := uc.EnhancedProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	sess := uc.session(userID)
	return sess.tracker.TeamsForInitiative(ep, initiativeID), nil
}

// Milestones returns the active cohort's milestones and kicks off a
// background warm-up of per-milestone submission data.
func (uc *UseCase) Milestones(ctx context.Context, userID string) ([]domain.Milestone, error) {
	sess := uc.session(userID)
	if cached, ok := sess.cache.Get(cache.KeyMilestones); ok {
		if milestones, ok := cached.([]domain.Milestone); ok {
			return milestones, nil
		}
	}

	ep, err := uc.EnhancedProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	program := sess.tracker.ActiveProgramData(ep, "")
	if !program.HasActiveProgram || program.CohortID == "" {
		return nil, nil
	}

	milestones, err := uc.fetch.MilestonesByCohort(ctx, program.CohortID)
	if err != nil {
		return nil, err
	}
	sess.cache.Set(cache.KeyMilestones, milestones)

	uc.warmSubmissions(sess, milestones)
	return milestones, nil
}

func (uc *UseCase) warmSubmissions(sess *Session, milestones []domain.Milestone) {
	if uc.warmer == nil || len(milestones) == 0 {
		return
	}
	epoch := sess.bumpMilestoneEpoch()
	ids := make([]string, 0, len(milestones))
	for _, milestone := range milestones {
		ids = append(ids, milestone.ID)
	}

	// Detached from the request: the warm-up outlives the HTTP call and is
	// bounded by the epoch check instead.
	go uc.warmer.Warm(context.Background(), ids,
		func() bool { return sess.milestoneEpoch.Load() == epoch },
		func(ctx context.Context, milestoneID string) error {
			submissions, err := uc.fetch.SubmissionsByMilestone(ctx, milestoneID)
			if err != nil {
				return err
			}
			sess.cache.Set(cache.SubmissionsKey(milestoneID), submissions)
			return nil
		})
}

// LeaveTeam runs the cascading leave and invalidates every cache key whose
// derived data could have changed.
func (uc *UseCase) LeaveTeam(ctx context.Context, userID, teamID string) (domain.MutationResult, error) {
	result, err := uc.membership.LeaveTeam(ctx, userID, teamID)
	if err == nil && result.Success {
		uc.invalidateDerived(userID)
	}
	return result, err
}

// LeaveParticipation runs the cascading leave and invalidates derived state.
func (uc *UseCase) LeaveParticipation(ctx context.Context, userID, participationID, cohortID, initiativeID string) (domain.MutationResult, error) {
	result, err := uc.membership.LeaveParticipation(ctx, userID, participationID, cohortID, initiativeID)
	if err == nil && result.Success {
		uc.invalidateDerived(userID)
	}
	return result, err
}

// DeleteTeamInvitation removes a pending invitation and invalidates derived
// state for the caller.
func (uc *UseCase) DeleteTeamInvitation(ctx context.Context, userID, memberID, teamID string) (domain.MutationResult, error) {
	result, err := uc.membership.DeleteTeamInvitation(ctx, memberID, teamID)
	if err == nil && result.Success {
		uc.invalidateDerived(userID)
	}
	return result, err
}

// RefreshData drops cached state for one scope ("profile", "participation",
// "milestones") or everything when the scope is empty or "all".
func (uc *UseCase) RefreshData(userID, scope string) error {
	sess := uc.session(userID)
	switch scope {
	case "", "all":
		sess.bumpMilestoneEpoch()
		sess.cache.Flush()
	case "profile":
		sess.cache.Invalidate(cache.KeyProfile, cache.KeyContactCurrent, cache.KeyEducationUser, cache.KeyProfileComposed)
	case "participation":
		sess.cache.Invalidate(cache.KeyParticipation, cache.KeyProfileComposed)
	case "milestones":
		sess.bumpMilestoneEpoch()
		sess.cache.Invalidate(cache.KeyMilestones)
		sess.cache.InvalidateSubmissions()
	default:
		return domain.NewError(domain.ErrCodeInvalid, "unknown refresh scope")
	}
	return nil
}

func (uc *UseCase) invalidateDerived(userID string) {
	sess := uc.session(userID)
	sess.bumpMilestoneEpoch()
	sess.cache.Invalidate(cache.DerivedKeys()...)
	sess.cache.InvalidateSubmissions()
}

func cohortIDs(participations []domain.Participation) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, p := range participations {
		for _, cohortID := range p.CohortRefs {
			if cohortID == "" || seen[cohortID] {
				continue
			}
			seen[cohortID] = true
			ids = append(ids, cohortID)
		}
	}
	return ids
}
