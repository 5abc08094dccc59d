package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/orbitwise/fdsaas/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) sampleUser() *model.User {
	return &model.User{
		ID:             "user-1",
		Username:       "user01",
		PasswordDigest: "digest",
		CreatedAt:      time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *StorageSuite) TestCreateAndGetUser() {
	err := s.storage.CreateUser(s.ctx, s.sampleUser())
	s.Require().NoError(err)

	user, err := s.storage.GetUser(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal("user01", user.Username)
	s.Equal("digest", user.PasswordDigest)
}

func (s *StorageSuite) TestCreateUserTakenUsernameFails() {
	s.Require().NoError(s.storage.CreateUser(s.ctx, s.sampleUser()))

	other := s.sampleUser()
	other.ID = "user-2"
	err := s.storage.CreateUser(s.ctx, other)
	s.ErrorIs(err, model.ErrDuplicateUser)

	// The original record is untouched
	user, err := s.storage.GetUserByUsername(s.ctx, "user01")
	s.Require().NoError(err)
	s.Equal(model.UserID("user-1"), user.ID)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "missing")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestGetUserByUsername() {
	_ = s.storage.CreateUser(s.ctx, s.sampleUser())

	user, err := s.storage.GetUserByUsername(s.ctx, "user01")
	s.Require().NoError(err)
	s.Equal(model.UserID("user-1"), user.ID)
}

func (s *StorageSuite) TestGetUserByUsernameNotFound() {
	_, err := s.storage.GetUserByUsername(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestDeleteUserRemovesUsernameIndex() {
	_ = s.storage.CreateUser(s.ctx, s.sampleUser())

	err := s.storage.DeleteUser(s.ctx, "user-1")
	s.Require().NoError(err)

	_, err = s.storage.GetUser(s.ctx, "user-1")
	s.ErrorIs(err, model.ErrUserNotFound)
	_, err = s.storage.GetUserByUsername(s.ctx, "user01")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestDeleteUserNotFound() {
	err := s.storage.DeleteUser(s.ctx, "missing")
	s.ErrorIs(err, model.ErrUserNotFound)
}
