package controllers

import (
	"context"
	"testing"

	"server/src/models"
	"server/src/repositories"
	"server/src/schemas"
	"server/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUsersController(t *testing.T) (*UsersController, repositories.UserRepository) {
	t.Helper()
	repo := repositories.NewInMemoryUserRepository()
	tokenAuth := utils.NewTokenAuth("test-secret")
	return NewUsersController(repo, tokenAuth, 100000), repo
}

func seedUser(t *testing.T, repo repositories.UserRepository, username, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), &models.User{
		Username: username,
		Password: string(hash),
		Email:    username + "@x.com",
		Cash:     100000,
	})
	require.NoError(t, err)
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		controller, _ := newUsersController(t)

		res, err := controller.CreateUser(ctx, &schemas.CreateUserRequest{
			Username: "alice",
			Password: "pw",
			Email:    "a@x.com",
		})
		require.NoError(t, err)

		assert.Equal(t, "new user created: alice.", res.Msg)
		assert.Equal(t, "alice", res.User.Username)
		assert.Equal(t, "a@x.com", res.User.Email)
		assert.Equal(t, 100000.0, res.User.Cash)
		assert.Empty(t, res.User.Stocks)
		assert.Empty(t, res.User.History)
		assert.NotEmpty(t, res.Token)
	})

	t.Run("PasswordIsStoredHashed", func(t *testing.T) {
		controller, repo := newUsersController(t)

		_, err := controller.CreateUser(ctx, &schemas.CreateUserRequest{
			Username: "alice", Password: "pw", Email: "a@x.com",
		})
		require.NoError(t, err)

		stored, err := repo.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.NotEqual(t, "pw", stored.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("pw")))
	})

	t.Run("MissingFieldsFailBeforeAnyMutation", func(t *testing.T) {
		controller, repo := newUsersController(t)

		_, err := controller.CreateUser(ctx, &schemas.CreateUserRequest{Username: "alice"})
		require.Error(t, err)

		_, err = repo.GetByUsername(ctx, "alice")
		assert.ErrorIs(t, err, repositories.ErrUserNotFound)
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		controller, _ := newUsersController(t)

		req := &schemas.CreateUserRequest{Username: "alice", Password: "pw", Email: "a@x.com"}
		_, err := controller.CreateUser(ctx, req)
		require.NoError(t, err)

		_, err = controller.CreateUser(ctx, req)
		require.Error(t, err)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		controller, repo := newUsersController(t)
		seedUser(t, repo, "alice", "pw")

		res, err := controller.Login(ctx, &schemas.LoginRequest{Username: "alice", Password: "pw"})
		require.NoError(t, err)

		assert.Equal(t, "You have logged in successfully. Welcome, alice.", res.Msg)
		assert.Equal(t, "alice", res.User.Username)
		assert.NotEmpty(t, res.Token)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		controller, _ := newUsersController(t)

		_, err := controller.Login(ctx, &schemas.LoginRequest{Username: "ghost", Password: "pw"})
		require.Error(t, err)

		httpErr, ok := err.(*utils.HTTPError)
		require.True(t, ok)
		assert.Equal(t, 401, httpErr.Code)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		controller, repo := newUsersController(t)
		seedUser(t, repo, "alice", "pw")

		_, err := controller.Login(ctx, &schemas.LoginRequest{Username: "alice", Password: "nope"})
		require.Error(t, err)
	})
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("UpdatesExactlyOneField", func(t *testing.T) {
		controller, repo := newUsersController(t)
		seedUser(t, repo, "alice", "pw")

		res, err := controller.UpdateUser(ctx, "alice", &schemas.UpdateUserRequest{NewEmail: "new@x.com"})
		require.NoError(t, err)
		assert.Equal(t, "Request processed.", res.Msg)
		assert.Equal(t, int64(1), res.Result)

		stored, err := repo.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "new@x.com", stored.Email)
	})

	t.Run("RenameMovesAccount", func(t *testing.T) {
		controller, repo := newUsersController(t)
		seedUser(t, repo, "alice", "pw")

		_, err := controller.UpdateUser(ctx, "alice", &schemas.UpdateUserRequest{NewUsername: "alice2"})
		require.NoError(t, err)

		_, err = repo.GetByUsername(ctx, "alice")
		assert.ErrorIs(t, err, repositories.ErrUserNotFound)
		_, err = repo.GetByUsername(ctx, "alice2")
		assert.NoError(t, err)
	})

	t.Run("RenameOntoTakenUsernameFails", func(t *testing.T) {
		controller, repo := newUsersController(t)
		seedUser(t, repo, "alice", "pw")
		seedUser(t, repo, "bob", "pw")

		_, err := controller.UpdateUser(ctx, "alice", &schemas.UpdateUserRequest{NewUsername: "bob"})
		require.Error(t, err)

		// Both accounts survive the rejected rename.
		alice, err := repo.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice@x.com", alice.Email)
		bob, err := repo.GetByUsername(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, "bob@x.com", bob.Email)
	})

	t.Run("NonExistentAccountFailsWithoutCreating", func(t *testing.T) {
		controller, repo := newUsersController(t)

		_, err := controller.UpdateUser(ctx, "ghost", &schemas.UpdateUserRequest{NewUsername: "alice2"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "incorrect credentials")

		_, err = repo.GetByUsername(ctx, "alice2")
		assert.ErrorIs(t, err, repositories.ErrUserNotFound)
	})

	t.Run("NoFieldSupplied", func(t *testing.T) {
		controller, repo := newUsersController(t)
		seedUser(t, repo, "alice", "pw")

		_, err := controller.UpdateUser(ctx, "alice", &schemas.UpdateUserRequest{})
		require.Error(t, err)
	})
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		controller, repo := newUsersController(t)
		seedUser(t, repo, "alice", "pw")

		res, err := controller.DeleteUser(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, res.Deleted)

		_, err = repo.GetByUsername(ctx, "alice")
		assert.ErrorIs(t, err, repositories.ErrUserNotFound)
	})

	t.Run("NothingToDelete", func(t *testing.T) {
		controller, _ := newUsersController(t)

		_, err := controller.DeleteUser(ctx, "ghost")
		require.Error(t, err)
	})
}
