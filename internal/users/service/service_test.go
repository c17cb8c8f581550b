package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"cdp/internal/audit"
	jwttoken "cdp/internal/jwt_token"
	"cdp/internal/users/lockout"
	"cdp/internal/users/models"
	"cdp/internal/users/passwords"
	"cdp/internal/users/service/mocks"
	"cdp/internal/users/store"
	id "cdp/pkg/domain"
	dErrors "cdp/pkg/domain-errors"
	"cdp/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	ctx     context.Context
	audit   *audit.InMemoryStore
	jwt     *jwttoken.JWTService
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC))
	s.audit = audit.NewInMemoryStore()
	s.jwt = jwttoken.NewJWTService("test-key", "cdp-test")
	s.service = New(store.NewInMemoryStore(), s.jwt,
		WithHasher(passwords.Hasher{Cost: bcrypt.MinCost}),
		WithTokenTTL(time.Hour),
		WithAuditPublisher(audit.NewPublisher(s.audit)),
	)
}

func (s *ServiceSuite) actions() []audit.Action {
	events, err := s.audit.ListRecent(context.Background(), 0)
	s.Require().NoError(err)
	out := make([]audit.Action, len(events))
	for i, e := range events {
		out[len(events)-1-i] = e.Action
	}
	return out
}

func (s *ServiceSuite) seed() *models.User {
	created, err := s.service.SeedAdmin(s.ctx, CreateInput{Email: "admin@cdp.sn", Password: "admin123", Nom: "Administrateur CDP"})
	s.Require().NoError(err)
	s.Require().True(created)
	all, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 1)
	return all[0]
}

func (s *ServiceSuite) TestSeedAdminOnlyOnEmptyStore() {
	admin := s.seed()
	s.Equal(id.RoleAdmin, admin.Role)
	s.True(admin.SeedAdmin)

	created, err := s.service.SeedAdmin(s.ctx, CreateInput{Email: "other@cdp.sn", Password: "password1"})
	s.Require().NoError(err)
	s.False(created)

	all, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 1)
}

func (s *ServiceSuite) TestCreate() {
	s.Run("normalises email and derives the name", func() {
		u, err := s.service.Create(s.ctx, CreateInput{Email: " Awa.Diop@CDP.sn ", Role: id.RoleAgentCDP, Password: "motdepasse"})
		s.Require().NoError(err)
		s.Equal("awa.diop@cdp.sn", u.Email)
		s.Equal("Awa Diop", u.Nom)
		s.NotEqual("motdepasse", u.PasswordHash)
		s.False(u.SeedAdmin)
	})

	s.Run("duplicate email is a conflict", func() {
		_, err := s.service.Create(s.ctx, CreateInput{Email: "awa.diop@cdp.sn", Role: id.RoleDemandeur, Password: "motdepasse"})
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("invalid input", func() {
		for name, in := range map[string]CreateInput{
			"email":    {Email: "not-an-email", Role: id.RoleDemandeur, Password: "motdepasse"},
			"role":     {Email: "x@cdp.sn", Role: "superviseur", Password: "motdepasse"},
			"password": {Email: "x@cdp.sn", Role: id.RoleDemandeur, Password: "court"},
		} {
			_, err := s.service.Create(s.ctx, in)
			s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput), name)
		}
	})

	s.Equal([]audit.Action{audit.ActionUserCreated}, s.actions())
}

func (s *ServiceSuite) TestAuthenticate() {
	u, err := s.service.Create(s.ctx, CreateInput{Email: "agent@cdp.sn", Role: id.RoleAgentCDP, Password: "motdepasse"})
	s.Require().NoError(err)

	s.Run("valid credentials issue a token for the role", func() {
		session, err := s.service.Authenticate(s.ctx, "AGENT@cdp.sn", "motdepasse")
		s.Require().NoError(err)
		s.Equal(u.ID, session.User.ID)

		claims, err := jwttoken.NewJWTServiceAdapter(s.jwt).ValidateToken(session.Token)
		s.Require().NoError(err)
		s.Equal(u.ID, claims.UserID)
		s.Equal(id.RoleAgentCDP, claims.Role)
	})

	s.Run("wrong password and unknown email fail alike", func() {
		_, errWrong := s.service.Authenticate(s.ctx, "agent@cdp.sn", "mauvais-mot")
		_, errUnknown := s.service.Authenticate(s.ctx, "nobody@cdp.sn", "motdepasse")
		s.True(dErrors.HasCode(errWrong, dErrors.CodeUnauthorized))
		s.True(dErrors.HasCode(errUnknown, dErrors.CodeUnauthorized))
		s.Equal(errWrong.Error(), errUnknown.Error())
	})

	s.Equal([]audit.Action{
		audit.ActionUserCreated,
		audit.ActionLoginSucceeded,
		audit.ActionLoginFailed,
		audit.ActionLoginFailed,
	}, s.actions())
}

func (s *ServiceSuite) TestUpdate() {
	admin := s.seed()
	u, err := s.service.Create(s.ctx, CreateInput{Email: "user@cdp.sn", Role: id.RoleDemandeur, Password: "ancienmdp"})
	s.Require().NoError(err)

	s.Run("password rotation", func() {
		next := "nouveaumdp"
		_, err := s.service.Update(s.ctx, u.ID, models.Update{Password: &next})
		s.Require().NoError(err)
		_, err = s.service.Authenticate(s.ctx, "user@cdp.sn", "ancienmdp")
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
		_, err = s.service.Authenticate(s.ctx, "user@cdp.sn", "nouveaumdp")
		s.NoError(err)
	})

	s.Run("role and name change", func() {
		role := id.RoleAgentCDP
		nom := " Moussa Sarr "
		updated, err := s.service.Update(s.ctx, u.ID, models.Update{Role: &role, Nom: &nom})
		s.Require().NoError(err)
		s.Equal(id.RoleAgentCDP, updated.Role)
		s.Equal("Moussa Sarr", updated.Nom)
	})

	s.Run("seeded admin keeps the admin role", func() {
		role := id.RoleDemandeur
		_, err := s.service.Update(s.ctx, admin.ID, models.Update{Role: &role})
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("short password rejected", func() {
		short := "abc"
		_, err := s.service.Update(s.ctx, u.ID, models.Update{Password: &short})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *ServiceSuite) TestDelete() {
	admin := s.seed()
	u, err := s.service.Create(s.ctx, CreateInput{Email: "user@cdp.sn", Role: id.RoleDemandeur, Password: "motdepasse"})
	s.Require().NoError(err)

	s.True(dErrors.HasCode(s.service.Delete(s.ctx, admin.ID), dErrors.CodeForbidden))
	s.Require().NoError(s.service.Delete(s.ctx, u.ID))
	s.True(dErrors.HasCode(s.service.Delete(s.ctx, u.ID), dErrors.CodeNotFound))
	s.True(dErrors.HasCode(s.service.Delete(s.ctx, id.UserID(uuid.New())), dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestDependencyFailures() {
	ctrl := gomock.NewController(s.T())
	st := mocks.NewMockStore(ctrl)
	tokens := mocks.NewMockTokenIssuer(ctrl)
	hasher := passwords.Hasher{Cost: bcrypt.MinCost}
	svc := New(st, tokens, WithHasher(hasher), WithTokenTTL(30*time.Minute))
	boom := errors.New("connection refused")

	s.Run("seed count failure", func() {
		st.EXPECT().Count(gomock.Any()).Return(0, boom)
		_, err := svc.SeedAdmin(s.ctx, CreateInput{Email: "admin@cdp.sn", Password: "admin123"})
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("lookup failure during login is internal", func() {
		st.EXPECT().FindByEmail(gomock.Any(), "a@cdp.sn").Return(nil, boom)
		_, err := svc.Authenticate(s.ctx, "a@cdp.sn", "motdepasse")
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("token signing failure is internal", func() {
		hash, err := hasher.Hash("motdepasse")
		s.Require().NoError(err)
		u := &models.User{ID: id.UserID(uuid.New()), Email: "a@cdp.sn", Role: id.RoleAdmin, PasswordHash: hash}
		st.EXPECT().FindByEmail(gomock.Any(), "a@cdp.sn").Return(u, nil)
		tokens.EXPECT().GenerateAccessToken(u.ID, id.RoleAdmin, 30*time.Minute).Return("", time.Time{}, boom)

		_, err = svc.Authenticate(s.ctx, "a@cdp.sn", "motdepasse")
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *ServiceSuite) TestAuthenticateLockout() {
	locks := lockout.New(lockout.NewInMemoryStore(), lockout.WithConfig(lockout.Config{
		MaxAttempts: 3, Window: 15 * time.Minute, LockDuration: 15 * time.Minute,
	}))
	svc := New(store.NewInMemoryStore(), s.jwt,
		WithHasher(passwords.Hasher{Cost: bcrypt.MinCost}),
		WithLockout(locks),
	)
	_, err := svc.Create(s.ctx, CreateInput{Email: "agent@cdp.sn", Role: id.RoleAgentCDP, Password: "motdepasse"})
	s.Require().NoError(err)
	ctx := requestcontext.WithClientMetadata(s.ctx, "10.0.0.7", "test")

	for range 3 {
		_, err := svc.Authenticate(ctx, "agent@cdp.sn", "mauvais-mot")
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	}

	s.Run("correct password is refused while locked", func() {
		_, err := svc.Authenticate(ctx, "agent@cdp.sn", "motdepasse")
		s.True(dErrors.HasCode(err, dErrors.CodeRateLimited))
	})

	s.Run("another client address can still log in", func() {
		other := requestcontext.WithClientMetadata(s.ctx, "10.0.0.8", "test")
		_, err := svc.Authenticate(other, "agent@cdp.sn", "motdepasse")
		s.NoError(err)
	})

	s.Run("lock lifts after its duration", func() {
		later := requestcontext.WithTime(ctx, requestcontext.Now(s.ctx).Add(16*time.Minute))
		_, err := svc.Authenticate(later, "agent@cdp.sn", "motdepasse")
		s.NoError(err)
	})
}

func (s *ServiceSuite) TestLockoutInteractions() {
	ctrl := gomock.NewController(s.T())
	locks := mocks.NewMockLockout(ctrl)
	svc := New(store.NewInMemoryStore(), s.jwt,
		WithHasher(passwords.Hasher{Cost: bcrypt.MinCost}),
		WithLockout(locks),
	)
	_, err := svc.Create(s.ctx, CreateInput{Email: "agent@cdp.sn", Role: id.RoleAgentCDP, Password: "motdepasse"})
	s.Require().NoError(err)

	s.Run("success clears failures even if clearing fails", func() {
		locks.EXPECT().Check(gomock.Any(), "agent@cdp.sn", "").Return(nil)
		locks.EXPECT().Clear(gomock.Any(), "agent@cdp.sn", "").Return(errors.New("redis down"))
		_, err := svc.Authenticate(s.ctx, "agent@cdp.sn", "motdepasse")
		s.NoError(err)
	})

	s.Run("locked attempts are not counted", func() {
		locks.EXPECT().Check(gomock.Any(), "agent@cdp.sn", "").Return(lockout.ErrLocked)
		_, err := svc.Authenticate(s.ctx, "agent@cdp.sn", "motdepasse")
		s.ErrorIs(err, lockout.ErrLocked)
	})

	s.Run("failures are recorded", func() {
		locks.EXPECT().Check(gomock.Any(), "agent@cdp.sn", "").Return(nil)
		locks.EXPECT().RecordFailure(gomock.Any(), "agent@cdp.sn", "").Return(false, nil)
		_, err := svc.Authenticate(s.ctx, "agent@cdp.sn", "mauvais-mot")
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}
