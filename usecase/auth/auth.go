package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campusboard/backend/domain"
	"github.com/campusboard/backend/repository"
	"github.com/campusboard/backend/usecase/fetcher"
)

// UseCase issues and maintains authentication sessions. The identity the
// rest of the core consumes is just the stable user id and email carried in
// the signed token.
type UseCase struct {
	store     repository.RecordStore
	sessions  repository.SessionRepository
	jwtSecret string
	jwtIssuer string
	logger    *zap.Logger
}

func New(store repository.RecordStore, sessions repository.SessionRepository, jwtSecret, jwtIssuer string, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		store:     store,
		sessions:  sessions,
		jwtSecret: jwtSecret,
		jwtIssuer: jwtIssuer,
		logger:    logger,
	}
}

// CreateSession validates the contact exists, stores a session and returns it
// with a signed bearer token.
func (uc *UseCase) CreateSession(ctx context.Context, userID string, ttl time.Duration) (*domain.Session, error) {
	rec, err := uc.store.Find(ctx, repository.TableContacts, userID)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	profile := fetcher.ProfileFromRecord(*rec)

	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Email:     profile.Email,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(ttl),
	}

	token, err := uc.signToken(session)
	if err != nil {
		return nil, err
	}
	session.Token = token

	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (uc *UseCase) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsExpired(time.Now()) {
		_ = uc.sessions.Delete(ctx, sessionID)
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// RefreshSession extends the session and re-signs its token for the new
// expiry.
func (uc *UseCase) RefreshSession(ctx context.Context, sessionID string, ttl time.Duration) (*domain.Session, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := uc.sessions.Extend(ctx, sessionID, int(ttl.Seconds())); err != nil {
		return nil, err
	}
	session.ExpiresAt = time.Now().Add(ttl)

	token, err := uc.signToken(session)
	if err != nil {
		return nil, err
	}
	session.Token = token
	return session, nil
}

func (uc *UseCase) RevokeSession(ctx context.Context, sessionID string) error {
	return uc.sessions.Delete(ctx, sessionID)
}

func (uc *UseCase) signToken(session *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"user_id": session.UserID,
		"email":   session.Email,
		"iss":     uc.jwtIssuer,
		"iat":     session.CreatedAt.Unix(),
		"exp":     session.ExpiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(uc.jwtSecret))
}
