package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/onlineshop/order-system/internal/core/domain"
	"github.com/onlineshop/order-system/internal/core/ports"
	"github.com/onlineshop/order-system/internal/core/token"
)

// LoginLimiter throttles repeated failed login attempts (Redis-backed).
type LoginLimiter interface {
	TooManyAttempts(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// AuditSink receives auth events for asynchronous persistence.
type AuditSink interface {
	Record(event domain.AuthEvent)
}

// AuthService implements registration, login, refresh-token rotation,
// and logout. All mutable token state lives in the refresh-token store;
// the service itself holds no shared mutable state, so concurrent
// requests need no coordination beyond the store's atomic deletes.
type AuthService struct {
	users     ports.UserRepository
	roles     ports.RoleRepository
	customers ports.CustomerRepository
	tokens    ports.RefreshTokenRepository
	codec     *token.Codec
	limiter   LoginLimiter
	audit     AuditSink
	log       zerolog.Logger
	now       func() time.Time
}

func NewAuthService(
	users ports.UserRepository,
	roles ports.RoleRepository,
	customers ports.CustomerRepository,
	tokens ports.RefreshTokenRepository,
	codec *token.Codec,
	limiter LoginLimiter,
	audit AuditSink,
	log zerolog.Logger,
) *AuthService {
	if limiter == nil {
		limiter = noopLimiter{}
	}
	if audit == nil {
		audit = noopAudit{}
	}
	return &AuthService{
		users:     users,
		roles:     roles,
		customers: customers,
		tokens:    tokens,
		codec:     codec,
		limiter:   limiter,
		audit:     audit,
		log:       log,
		now:       time.Now,
	}
}

// Register creates a user with the default customer role and a linked
// customer profile. No tokens are issued; an explicit login is required.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	exists, err := s.users.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		s.record(domain.AuditRegister, in.Username, "", false, "username taken")
		return nil, domain.ErrUsernameTaken
	}

	role, err := s.roles.FindByName(ctx, domain.RoleCustomer)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user, err := s.users.Create(ctx, &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Roles:        []string{role.Name},
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	customer, err := s.customers.Create(ctx, &domain.Customer{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		PhoneNumber: in.PhoneNumber,
		UserID:      user.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		s.releaseUsername(ctx, user)
		return nil, err
	}

	if err := s.users.LinkCustomer(ctx, user.ID, customer.ID); err != nil {
		if delErr := s.customers.Delete(ctx, customer.ID); delErr != nil {
			s.log.Warn().Err(delErr).Str("username", user.Username).Msg("failed to remove customer profile after registration failure")
		}
		s.releaseUsername(ctx, user)
		return nil, err
	}
	user.CustomerID = customer.ID

	s.log.Info().Str("username", user.Username).Msg("user registered")
	s.record(domain.AuditRegister, user.Username, user.ID, true, "")
	return user, nil
}

// Login verifies credentials and, on success, issues an access token
// and persists a new refresh token. Unknown user and wrong password are
// indistinguishable in the returned error to prevent user enumeration.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.TokenPair, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	limited, err := s.limiter.TooManyAttempts(ctx, username)
	if err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("login limiter check failed, proceeding")
	} else if limited {
		s.record(domain.AuditLogin, username, "", false, "rate limited")
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, s.failLogin(ctx, username, "unknown user")
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, s.failLogin(ctx, username, "wrong password")
	}

	if err := s.limiter.Reset(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("login limiter reset failed")
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", username).Msg("login succeeded")
	s.record(domain.AuditLogin, username, user.ID, true, "")
	return pair, nil
}

// Refresh rotates a refresh token: the presented value is consumed
// exactly once and replaced by a fresh value for the same subject.
// A value that was already consumed, or that lost a concurrent rotation
// race, fails with ErrInvalidRefreshToken and can never validate again.
func (s *AuthService) Refresh(ctx context.Context, refreshValue string) (*ports.TokenPair, error) {
	if refreshValue == "" {
		return nil, domain.ErrInvalidRefreshToken
	}

	rt, err := s.tokens.FindByValue(ctx, refreshValue)
	if err != nil {
		if err == domain.ErrInvalidRefreshToken {
			s.record(domain.AuditRefresh, "", "", false, "unknown token")
		}
		return nil, err
	}

	if rt.Expired(s.now()) {
		if _, err := s.tokens.DeleteByValue(ctx, rt.Value); err != nil {
			s.log.Warn().Err(err).Msg("failed to delete expired refresh token")
		}
		s.record(domain.AuditRefresh, "", rt.UserID, false, "expired")
		return nil, domain.ErrRefreshTokenExpired
	}

	// Consume the old value. The store's delete is atomic and reports
	// whether a document was removed; losing the race to a concurrent
	// rotation of the same value must fail, never double-issue.
	deleted, err := s.tokens.DeleteByValue(ctx, rt.Value)
	if err != nil {
		return nil, err
	}
	if !deleted {
		s.record(domain.AuditRefresh, "", rt.UserID, false, "lost rotation race")
		return nil, domain.ErrInvalidRefreshToken
	}

	user, err := s.users.FindByID(ctx, rt.UserID)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrInvalidRefreshToken
		}
		return nil, err
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, err
	}

	s.record(domain.AuditRefresh, user.Username, user.ID, true, "")
	return pair, nil
}

// Logout revokes every outstanding refresh token of the subject, across
// all devices. Subsequent refresh calls with any previously issued
// value fail with ErrInvalidRefreshToken.
func (s *AuthService) Logout(ctx context.Context, username string) error {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if err := s.tokens.DeleteByUser(ctx, user.ID); err != nil {
		return err
	}
	s.log.Info().Str("username", username).Msg("logged out, refresh tokens revoked")
	s.record(domain.AuditLogout, username, user.ID, true, "")
	return nil
}

// releaseUsername removes a user whose profile creation failed partway,
// so the username stays available for a retry. Best effort: a failure
// here only logs, and the orphan row surfaces as ErrUsernameTaken until
// an operator removes it.
func (s *AuthService) releaseUsername(ctx context.Context, user *domain.User) {
	if err := s.users.Delete(ctx, user.ID); err != nil {
		s.log.Warn().Err(err).Str("username", user.Username).Msg("failed to remove user after registration failure")
	}
}

// issuePair produces a new access token plus a new persisted refresh token.
func (s *AuthService) issuePair(ctx context.Context, user *domain.User) (*ports.TokenPair, error) {
	access, err := s.codec.Issue(user.Username, user.Roles)
	if err != nil {
		return nil, err
	}
	rt, err := s.tokens.Create(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &ports.TokenPair{AccessToken: access, RefreshToken: rt.Value}, nil
}

func (s *AuthService) failLogin(ctx context.Context, username, detail string) error {
	if err := s.limiter.RecordFailure(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("login limiter record failed")
	}
	s.record(domain.AuditLogin, username, "", false, detail)
	return domain.ErrInvalidCredentials
}

func (s *AuthService) record(action domain.AuthAction, username, userID string, success bool, detail string) {
	s.audit.Record(domain.AuthEvent{
		Username:  username,
		UserID:    userID,
		Action:    action,
		Success:   success,
		Detail:    detail,
		Timestamp: s.now().UTC(),
	})
}

type noopLimiter struct{}

func (noopLimiter) TooManyAttempts(context.Context, string) (bool, error) { return false, nil }
func (noopLimiter) RecordFailure(context.Context, string) error           { return nil }
func (noopLimiter) Reset(context.Context, string) error                   { return nil }

type noopAudit struct{}

func (noopAudit) Record(domain.AuthEvent) {}
