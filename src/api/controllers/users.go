package controllers

import (
	"context"
	"errors"
	"fmt"

	"server/src/models"
	"server/src/repositories"
	"server/src/schemas"
	"server/src/utils"

	"github.com/go-chi/jwtauth"
	"golang.org/x/crypto/bcrypt"
)

type UsersControllerI interface {
	CreateUser(ctx context.Context, req *schemas.CreateUserRequest) (*schemas.UserResponse, error)
	Login(ctx context.Context, req *schemas.LoginRequest) (*schemas.UserResponse, error)
	UpdateUser(ctx context.Context, username string, req *schemas.UpdateUserRequest) (*schemas.UpdateUserResponse, error)
	DeleteUser(ctx context.Context, username string) (*schemas.DeleteUserResponse, error)
}

type UsersController struct {
	users        repositories.UserRepository
	tokenAuth    *jwtauth.JWTAuth
	startingCash float64
}

func NewUsersController(users repositories.UserRepository, tokenAuth *jwtauth.JWTAuth, startingCash float64) *UsersController {
	return &UsersController{users: users, tokenAuth: tokenAuth, startingCash: startingCash}
}

func (c *UsersController) CreateUser(ctx context.Context, req *schemas.CreateUserRequest) (*schemas.UserResponse, error) {
	if req.Username == "" || req.Password == "" || req.Email == "" {
		return nil, utils.ValidationError("missing information: please include username, password & email address")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := c.users.Create(ctx, &models.User{
		Username: req.Username,
		Password: string(hash),
		Email:    req.Email,
		Cash:     utils.To2dp(c.startingCash),
		Stocks:   []models.Stock{},
		History:  []models.Transaction{},
	})
	if err != nil {
		utils.LoggerFromContext(ctx).WithError(err).Warning("user creation failed")
		return nil, utils.PersistenceError(fmt.Sprintf("an error occurred when creating a new user: %s", err))
	}

	token, err := utils.IssueToken(c.tokenAuth, user.Username)
	if err != nil {
		return nil, err
	}

	return &schemas.UserResponse{
		Msg:   fmt.Sprintf("new user created: %s.", user.Username),
		User:  schemas.NewUserState(user),
		Token: token,
	}, nil
}

func (c *UsersController) Login(ctx context.Context, req *schemas.LoginRequest) (*schemas.UserResponse, error) {
	user, err := c.users.GetByUsername(ctx, req.Username)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return nil, utils.AuthError("no user found")
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, utils.AuthError("incorrect credentials")
	}

	token, err := utils.IssueToken(c.tokenAuth, user.Username)
	if err != nil {
		return nil, err
	}

	return &schemas.UserResponse{
		Msg:   fmt.Sprintf("You have logged in successfully. Welcome, %s.", user.Username),
		User:  schemas.NewUserState(user),
		Token: token,
	}, nil
}

// UpdateUser replaces exactly one credential field per call. When the update
// matches no record the failure is reported as incorrect credentials, even
// though the account may simply have vanished between request and update.
func (c *UsersController) UpdateUser(ctx context.Context, username string, req *schemas.UpdateUserRequest) (*schemas.UpdateUserResponse, error) {
	var (
		affected int64
		err      error
	)
	switch {
	case req.NewPassword != "":
		var hash []byte
		hash, err = bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		affected, err = c.users.UpdatePassword(ctx, username, string(hash))
	case req.NewEmail != "":
		affected, err = c.users.UpdateEmail(ctx, username, req.NewEmail)
	case req.NewUsername != "":
		affected, err = c.users.UpdateUsername(ctx, username, req.NewUsername)
	default:
		return nil, utils.ValidationError("missing credential field: supply newPassword, newEmail or newUsername")
	}
	if err != nil {
		utils.LoggerFromContext(ctx).WithError(err).Warning("credential update failed")
		return nil, utils.PersistenceError(err.Error())
	}
	if affected == 0 {
		return nil, utils.ValidationError("incorrect credentials")
	}

	return &schemas.UpdateUserResponse{Msg: "Request processed.", Result: affected}, nil
}

func (c *UsersController) DeleteUser(ctx context.Context, username string) (*schemas.DeleteUserResponse, error) {
	affected, err := c.users.Delete(ctx, username)
	if err != nil {
		return nil, utils.PersistenceError(err.Error())
	}
	if affected == 0 {
		return nil, utils.ValidationError("incorrect credentials")
	}

	return &schemas.DeleteUserResponse{
		Msg:     fmt.Sprintf("delete successful: %s", username),
		Deleted: true,
	}, nil
}
