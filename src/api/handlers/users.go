package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"server/src/schemas"
	"server/src/utils"
)

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	var req = new(schemas.CreateUserRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.HandleErrors(w, utils.ValidationError(err.Error()))
		return
	}

	res, err := h.Users.CreateUser(ctx, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, res, 200)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	var req = new(schemas.LoginRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.HandleErrors(w, utils.ValidationError(err.Error()))
		return
	}

	res, err := h.Users.Login(ctx, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, res, 200)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	username, err := usernameFromToken(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	var req = new(schemas.UpdateUserRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.HandleErrors(w, utils.ValidationError(err.Error()))
		return
	}

	res, err := h.Users.UpdateUser(ctx, username, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, res, 200)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	username, err := usernameFromToken(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	res, err := h.Users.DeleteUser(ctx, username)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, res, 200)
}
