package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"server/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrUserNotFound is returned when a username lookup matches no row.
var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdatePassword(ctx context.Context, username, passwordHash string) (int64, error)
	UpdateEmail(ctx context.Context, username, email string) (int64, error)
	UpdateUsername(ctx context.Context, username, newUsername string) (int64, error)
	Delete(ctx context.Context, username string) (int64, error)
	UpdateCash(ctx context.Context, username string, cash float64) (int64, error)
	ReplaceStocks(ctx context.Context, username string, stocks []models.Stock) (int64, error)
	AppendTransaction(ctx context.Context, username string, transaction models.Transaction) (int64, error)
}

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	stocks, err := json.Marshal(emptyIfNilStocks(user.Stocks))
	if err != nil {
		return nil, err
	}
	history, err := json.Marshal(emptyIfNilHistory(user.History))
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx,
		`INSERT INTO users (username, password, email, cash, stocks, history)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		user.Username, user.Password, user.Email, user.Cash, stocks, history,
	).Scan(&user.ID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	var stocks, history []byte

	err := r.db.QueryRow(ctx,
		`SELECT id, username, password, email, cash, stocks, history
		FROM users
		WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.Username, &u.Password, &u.Email, &u.Cash, &stocks, &history)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(stocks, &u.Stocks); err != nil {
		return nil, fmt.Errorf("corrupt stocks document for %s: %w", username, err)
	}
	if err := json.Unmarshal(history, &u.History); err != nil {
		return nil, fmt.Errorf("corrupt history document for %s: %w", username, err)
	}
	return &u, nil
}

func (r *userRepo) UpdatePassword(ctx context.Context, username, passwordHash string) (int64, error) {
	return r.updateColumn(ctx, username, "password", passwordHash)
}

func (r *userRepo) UpdateEmail(ctx context.Context, username, email string) (int64, error) {
	return r.updateColumn(ctx, username, "email", email)
}

func (r *userRepo) UpdateUsername(ctx context.Context, username, newUsername string) (int64, error) {
	return r.updateColumn(ctx, username, "username", newUsername)
}

func (r *userRepo) updateColumn(ctx context.Context, username, column, value string) (int64, error) {
	ct, err := r.db.Exec(ctx,
		fmt.Sprintf(`UPDATE users SET %s = $1, updated_at = now() WHERE username = $2`, column),
		value, username)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

func (r *userRepo) Delete(ctx context.Context, username string) (int64, error) {
	// Stocks and history live on the row, so the delete cascades by itself.
	ct, err := r.db.Exec(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

func (r *userRepo) UpdateCash(ctx context.Context, username string, cash float64) (int64, error) {
	ct, err := r.db.Exec(ctx,
		`UPDATE users SET cash = $1, updated_at = now() WHERE username = $2`,
		cash, username)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

func (r *userRepo) ReplaceStocks(ctx context.Context, username string, stocks []models.Stock) (int64, error) {
	doc, err := json.Marshal(emptyIfNilStocks(stocks))
	if err != nil {
		return 0, err
	}
	ct, err := r.db.Exec(ctx,
		`UPDATE users SET stocks = $1, updated_at = now() WHERE username = $2`,
		doc, username)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

func (r *userRepo) AppendTransaction(ctx context.Context, username string, transaction models.Transaction) (int64, error) {
	doc, err := json.Marshal(transaction)
	if err != nil {
		return 0, err
	}
	// jsonb || preserves insertion order; records are never rewritten.
	ct, err := r.db.Exec(ctx,
		`UPDATE users SET history = history || $1::jsonb, updated_at = now() WHERE username = $2`,
		doc, username)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

func emptyIfNilStocks(stocks []models.Stock) []models.Stock {
	if stocks == nil {
		return []models.Stock{}
	}
	return stocks
}

func emptyIfNilHistory(history []models.Transaction) []models.Transaction {
	if history == nil {
		return []models.Transaction{}
	}
	return history
}
