package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"server/src/api/controllers"
	"server/src/repositories"
	"server/src/utils"

	"github.com/go-chi/jwtauth"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	Users     controllers.UsersControllerI
	Portfolio controllers.PortfolioControllerI
	Logger    *logrus.Logger
}

func NewHandler(users repositories.UserRepository, tokenAuth *jwtauth.JWTAuth, startingCash float64, logger *logrus.Logger) *Handler {
	return &Handler{
		Users:     controllers.NewUsersController(users, tokenAuth, startingCash),
		Portfolio: controllers.NewPortfolioController(users),
		Logger:    logger,
	}
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

// HandleErrors is the terminal error boundary: every failure becomes a JSON
// body and nothing is rethrown past the handler. Failures from the cash
// stage keep their historical {msg} shape; everything else reports {err}.
func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	var stageErr *controllers.StageError
	var httpErr *utils.HTTPError

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		h.respond(w, nil, map[string]string{"err": "request timed out"}, http.StatusGatewayTimeout)
	case errors.As(err, &stageErr):
		key := "err"
		if stageErr.Stage == "updateCash" {
			key = "msg"
		}
		h.respond(w, nil, map[string]string{key: stageErr.Error()}, stageErr.Code())
	case errors.As(err, &httpErr):
		h.respond(w, nil, map[string]string{"err": httpErr.Message}, httpErr.Code)
	default:
		h.respond(w, nil, map[string]string{"err": err.Error()}, http.StatusInternalServerError)
	}
}

// usernameFromToken pulls the session identity attached by the jwtauth
// middleware.
func usernameFromToken(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", utils.AuthError("invalid session token")
	}
	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return "", utils.AuthError("invalid session token")
	}
	return username, nil
}
