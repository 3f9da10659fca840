package schemas

import "server/src/models"

type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateUserRequest carries exactly one credential change per call; the
// first non-empty field in the order password, email, username wins.
type UpdateUserRequest struct {
	NewPassword string `json:"newPassword,omitempty"`
	NewEmail    string `json:"newEmail,omitempty"`
	NewUsername string `json:"newUsername,omitempty"`
}

// UserState is the public projection of an account. The password never
// appears here.
type UserState struct {
	Username string               `json:"username"`
	Email    string               `json:"email"`
	Cash     float64              `json:"cash"`
	Stocks   []models.Stock       `json:"stocks"`
	History  []models.Transaction `json:"history"`
}

type UserResponse struct {
	Msg   string    `json:"msg"`
	User  UserState `json:"user"`
	Token string    `json:"token"`
}

type UpdateUserResponse struct {
	Msg    string `json:"msg"`
	Result int64  `json:"result"`
}

type DeleteUserResponse struct {
	Msg     string `json:"msg"`
	Deleted bool   `json:"deleted"`
}

// NewUserState projects a user document into its public shape, normalizing
// nil slices so clients always see arrays.
func NewUserState(user *models.User) UserState {
	stocks := user.Stocks
	if stocks == nil {
		stocks = []models.Stock{}
	}
	history := user.History
	if history == nil {
		history = []models.Transaction{}
	}
	return UserState{
		Username: user.Username,
		Email:    user.Email,
		Cash:     user.Cash,
		Stocks:   stocks,
		History:  history,
	}
}
