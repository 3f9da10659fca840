package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"server/src/schemas"
	"server/src/utils"
)

// AddStock executes a buy/sell order against the authenticated account and
// responds with the full account state after all pipeline stages applied.
func (h *Handler) AddStock(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	username, err := usernameFromToken(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	var req = new(schemas.AddStockRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.HandleErrors(w, utils.ValidationError(err.Error()))
		return
	}

	res, err := h.Portfolio.ExecuteTrade(ctx, username, req.AddStock)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, res, 200)
}
