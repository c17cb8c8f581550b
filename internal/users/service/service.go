package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,TokenIssuer,Lockout,AuditPublisher

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"

	"cdp/internal/audit"
	"cdp/internal/users/metrics"
	"cdp/internal/users/models"
	"cdp/internal/users/passwords"
	"cdp/pkg/attrs"
	id "cdp/pkg/domain"
	dErrors "cdp/pkg/domain-errors"
	"cdp/pkg/email"
	"cdp/pkg/platform/sentinel"
	"cdp/pkg/requestcontext"
)

type Store interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, userID id.UserID) error
	Count(ctx context.Context) (int, error)
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	GenerateAccessToken(userID id.UserID, role id.Role, expiresIn time.Duration) (string, time.Time, error)
}

// Lockout throttles repeated failed logins per email and client IP.
type Lockout interface {
	Check(ctx context.Context, email, ip string) error
	RecordFailure(ctx context.Context, email, ip string) (bool, error)
	Clear(ctx context.Context, email, ip string) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

const defaultTokenTTL = 8 * time.Hour

// Service manages accounts and logins.
type Service struct {
	store          Store
	tokens         TokenIssuer
	hasher         passwords.Hasher
	tokenTTL       time.Duration
	logger         *slog.Logger
	metrics        *metrics.Metrics
	auditPublisher AuditPublisher
	lockout        Lockout
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

// WithHasher overrides the bcrypt cost.
func WithLockout(l Lockout) Option {
	return func(s *Service) {
		s.lockout = l
	}
}

func WithHasher(h passwords.Hasher) Option {
	return func(s *Service) {
		s.hasher = h
	}
}

func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.tokenTTL = ttl
		}
	}
}

func New(store Store, tokens TokenIssuer, opts ...Option) *Service {
	s := &Service{
		store:    store,
		tokens:   tokens,
		tokenTTL: defaultTokenTTL,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateInput is a new account request. An empty Nom is derived from the email.
type CreateInput struct {
	Email    string
	Nom      string
	Role     id.Role
	Password string
}

// SeedAdmin creates the administrator account when the store is empty. It
// reports whether an account was created.
func (s *Service) SeedAdmin(ctx context.Context, in CreateInput) (bool, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count users")
	}
	if n > 0 {
		return false, nil
	}
	in.Role = id.RoleAdmin
	u, err := s.newUser(ctx, in)
	if err != nil {
		return false, err
	}
	u.SeedAdmin = true
	if err := s.insert(ctx, u); err != nil {
		return false, err
	}
	s.logger.InfoContext(ctx, "seeded administrator account", "email", u.Email)
	return true, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*models.User, error) {
	u, err := s.newUser(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.insert(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) newUser(ctx context.Context, in CreateInput) (*models.User, error) {
	address := models.NormalizeEmail(in.Email)
	if err := validateEmail(address); err != nil {
		return nil, err
	}
	if !in.Role.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid role")
	}
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	nom := strings.TrimSpace(in.Nom)
	if nom == "" {
		nom = email.DisplayName(address)
	}
	now := requestcontext.Now(ctx)
	return &models.User{
		ID:           id.UserID(uuid.New()),
		Email:        address,
		Nom:          nom,
		Role:         in.Role,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (s *Service) insert(ctx context.Context, u *models.User) error {
	if err := s.store.Create(ctx, u); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return dErrors.New(dErrors.CodeConflict, "a user with this email already exists")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}
	s.metrics.IncrementUsersCreated()
	s.logAudit(ctx, audit.ActionUserCreated,
		"subject", u.Email,
		"user_id", u.ID.String(),
		"role", u.Role.String(),
	)
	return nil
}

func (s *Service) Get(ctx context.Context, userID id.UserID) (*models.User, error) {
	u, err := s.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	return u, nil
}

func (s *Service) List(ctx context.Context) ([]*models.User, error) {
	out, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list users")
	}
	return out, nil
}

// Update changes the name, the role or the password. The seeded
// administrator keeps the admin role.
func (s *Service) Update(ctx context.Context, userID id.UserID, update models.Update) (*models.User, error) {
	u, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if update.Nom != nil {
		nom := strings.TrimSpace(*update.Nom)
		if nom == "" {
			return nil, dErrors.New(dErrors.CodeInvalidInput, "nom cannot be empty")
		}
		u.Nom = nom
	}
	if update.Role != nil {
		if !update.Role.IsValid() {
			return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid role")
		}
		if u.SeedAdmin && *update.Role != id.RoleAdmin {
			return nil, dErrors.New(dErrors.CodeInvariantViolation, "the seeded administrator must keep the admin role")
		}
		u.Role = *update.Role
	}
	rotated := update.Password != nil
	if rotated {
		hash, err := s.hasher.Hash(*update.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	u.UpdatedAt = requestcontext.Now(ctx)
	if err := s.store.Update(ctx, u); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update user")
	}
	s.logAudit(ctx, audit.ActionUserUpdated,
		"subject", u.Email,
		"role", u.Role.String(),
		"password_rotated", rotated,
	)
	return u, nil
}

// Delete removes an account. The seeded administrator cannot be deleted.
func (s *Service) Delete(ctx context.Context, userID id.UserID) error {
	u, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	if u.SeedAdmin {
		return dErrors.New(dErrors.CodeForbidden, "the seeded administrator cannot be deleted")
	}
	if err := s.store.Delete(ctx, userID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete user")
	}
	s.logAudit(ctx, audit.ActionUserDeleted, "subject", u.Email, "user_id", u.ID.String())
	return nil
}

// Authenticate checks credentials and issues a session token. Unknown
// emails and wrong passwords fail the same way.
func (s *Service) Authenticate(ctx context.Context, address, password string) (*models.Session, error) {
	address = models.NormalizeEmail(address)
	invalid := dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
	ip := requestcontext.ClientIP(ctx)

	if s.lockout != nil {
		if err := s.lockout.Check(ctx, address, ip); err != nil {
			s.loginFailed(ctx, address, ip, false)
			return nil, err
		}
	}

	u, err := s.store.FindByEmail(ctx, address)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
		}
		s.loginFailed(ctx, address, ip, true)
		return nil, invalid
	}
	if err := s.hasher.Verify(password, u.PasswordHash); err != nil {
		if !dErrors.HasCode(err, dErrors.CodeUnauthorized) {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to verify credentials")
		}
		s.loginFailed(ctx, address, ip, true)
		return nil, invalid
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(u.ID, u.Role, s.tokenTTL)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}
	if s.lockout != nil {
		if err := s.lockout.Clear(ctx, address, ip); err != nil {
			s.logger.WarnContext(ctx, "failed to clear login failures", "error", err)
		}
	}
	s.metrics.IncrementLogin(true)
	s.logAudit(requestcontext.WithPrincipal(ctx, u.ID, u.Role), audit.ActionLoginSucceeded,
		"subject", u.Email,
		"user_id", u.ID.String(),
	)
	return &models.Session{Token: token, ExpiresAt: expiresAt, User: u}, nil
}

// loginFailed records a rejected attempt. count is false for attempts
// refused by an active lock, which must not extend it.
func (s *Service) loginFailed(ctx context.Context, address, ip string, count bool) {
	s.metrics.IncrementLogin(false)
	s.logAudit(ctx, audit.ActionLoginFailed, "subject", address)
	if !count || s.lockout == nil {
		return
	}
	if _, err := s.lockout.RecordFailure(ctx, address, ip); err != nil {
		s.logger.WarnContext(ctx, "failed to record login failure", "error", err)
	}
}

func validateEmail(address string) error {
	if !govalidator.StringLength(address, "1", "255") || !govalidator.IsEmail(address) {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid email address")
	}
	return nil
}

func (s *Service) logAudit(ctx context.Context, action audit.Action, attributes ...any) {
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", string(action), "log_type", "audit")
	s.logger.InfoContext(ctx, string(action), args...)
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, audit.Event{
		Action:  action,
		Subject: attrs.String(attributes, "subject"),
	}); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "event", string(action), "error", err)
	}
}
