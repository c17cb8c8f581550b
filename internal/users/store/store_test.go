package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"cdp/internal/users/models"
	id "cdp/pkg/domain"
	"cdp/pkg/platform/sentinel"
)

type userStore interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, userID id.UserID) error
	Count(ctx context.Context) (int, error)
}

type StoreSuite struct {
	suite.Suite
	newStore func(t *testing.T) userStore
	store    userStore
	ctx      context.Context
}

func TestInMemoryStore(t *testing.T) {
	suite.Run(t, &StoreSuite{newStore: func(*testing.T) userStore { return NewInMemoryStore() }})
}

func (s *StoreSuite) SetupTest() {
	s.store = s.newStore(s.T())
	s.ctx = context.Background()
}

func user(email string, role id.Role) *models.User {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return &models.User{
		ID:           id.UserID(uuid.New()),
		Email:        email,
		Nom:          "Awa Diop",
		Role:         role,
		PasswordHash: "$2a$04$hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (s *StoreSuite) TestCreateAndLookup() {
	u := user("awa.diop@cdp.sn", id.RoleAgentCDP)
	u.SeedAdmin = true
	s.Require().NoError(s.store.Create(s.ctx, u))

	byID, err := s.store.FindByID(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Equal(u.Email, byID.Email)
	s.Equal(id.RoleAgentCDP, byID.Role)
	s.Equal(u.PasswordHash, byID.PasswordHash)
	s.True(byID.SeedAdmin)

	byEmail, err := s.store.FindByEmail(s.ctx, "awa.diop@cdp.sn")
	s.Require().NoError(err)
	s.Equal(u.ID, byEmail.ID)

	_, err = s.store.FindByEmail(s.ctx, "missing@cdp.sn")
	s.True(errors.Is(err, sentinel.ErrNotFound))
	_, err = s.store.FindByID(s.ctx, id.UserID(uuid.New()))
	s.True(errors.Is(err, sentinel.ErrNotFound))
}

func (s *StoreSuite) TestEmailIsUnique() {
	s.Require().NoError(s.store.Create(s.ctx, user("a@cdp.sn", id.RoleAdmin)))
	err := s.store.Create(s.ctx, user("a@cdp.sn", id.RoleDemandeur))
	s.True(errors.Is(err, sentinel.ErrAlreadyUsed))
}

func (s *StoreSuite) TestListUpdateDeleteCount() {
	b := user("b@cdp.sn", id.RoleDemandeur)
	a := user("a@cdp.sn", id.RoleAdmin)
	s.Require().NoError(s.store.Create(s.ctx, b))
	s.Require().NoError(s.store.Create(s.ctx, a))

	all, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("a@cdp.sn", all[0].Email)

	b.Role = id.RoleAgentCDP
	b.Nom = "Moussa Sarr"
	s.Require().NoError(s.store.Update(s.ctx, b))
	got, err := s.store.FindByID(s.ctx, b.ID)
	s.Require().NoError(err)
	s.Equal(id.RoleAgentCDP, got.Role)
	s.Equal("Moussa Sarr", got.Nom)

	s.Require().NoError(s.store.Delete(s.ctx, b.ID))
	s.True(errors.Is(s.store.Delete(s.ctx, b.ID), sentinel.ErrNotFound))
	s.True(errors.Is(s.store.Update(s.ctx, b), sentinel.ErrNotFound))

	n, err := s.store.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, n)
}
