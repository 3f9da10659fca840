package controllers

import (
	"context"
	"errors"
	"time"

	"server/src/repositories"
	"server/src/schemas"
	"server/src/services"
	"server/src/utils"
)

type PortfolioControllerI interface {
	ExecuteTrade(ctx context.Context, username string, order schemas.StockOrder) (*schemas.TradeResponse, error)
}

type PortfolioController struct {
	users repositories.UserRepository
	now   func() time.Time
}

func NewPortfolioController(users repositories.UserRepository) *PortfolioController {
	return &PortfolioController{users: users, now: time.Now}
}

// ExecuteTrade runs the trade pipeline: reconcile positions, adjust cash,
// record the transaction. Stages run sequentially against a fresh snapshot
// of the persisted account; each stage writes one field back. There is no
// cross-stage transaction and no compensation: a stage failure leaves the
// earlier stages applied and is reported with its stage name.
//
// Two concurrent trades on the same account can race and lose updates; no
// serialization is enforced here.
func (c *PortfolioController) ExecuteTrade(ctx context.Context, username string, order schemas.StockOrder) (*schemas.TradeResponse, error) {
	snapshot, err := c.users.GetByUsername(ctx, username)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return nil, stageError(ctx, "addStock", utils.AuthError("no user found"))
	}
	if err != nil {
		return nil, stageError(ctx, "addStock", err)
	}

	// Stage 1: reconcile positions and persist the new set.
	stocks, cost, err := services.ReconcilePositions(snapshot.Stocks, order)
	if err != nil {
		return nil, stageError(ctx, "addStock", err)
	}
	affected, err := c.users.ReplaceStocks(ctx, username, stocks)
	if err != nil {
		return nil, stageError(ctx, "addStock", utils.PersistenceError(err.Error()))
	}
	if affected == 0 {
		return nil, stageError(ctx, "addStock", utils.ValidationError("incorrect credentials"))
	}

	// Stage 2: debit (buy) or credit (sell) the cash balance.
	newCash := utils.To2dp(snapshot.Cash - cost)
	affected, err = c.users.UpdateCash(ctx, username, newCash)
	if err != nil {
		return nil, stageError(ctx, "updateCash", utils.PersistenceError(err.Error()))
	}
	if affected == 0 {
		return nil, stageError(ctx, "updateCash", utils.PersistenceError("an error occurred whilst updating the user"))
	}

	// Stage 3: append the immutable history record.
	transaction := services.NewTransaction(order, c.now())
	affected, err = c.users.AppendTransaction(ctx, username, transaction)
	if err != nil {
		return nil, stageError(ctx, "addHistory", utils.PersistenceError(err.Error()))
	}
	if affected == 0 {
		return nil, stageError(ctx, "addHistory", utils.PersistenceError("unable to append transaction"))
	}

	// Re-read rather than patching the snapshot, so the response reflects
	// what was actually written.
	user, err := c.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, stageError(ctx, "addHistory", err)
	}

	return &schemas.TradeResponse{User: schemas.NewUserState(user)}, nil
}
