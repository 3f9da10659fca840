package repositories

import (
	"context"
	"fmt"
	"sync"

	"server/src/models"
)

// memoryUserRepo is an in-memory UserRepository with the same rows-affected
// semantics as the Postgres implementation. It backs tests and local runs
// without a database.
type memoryUserRepo struct {
	mu     sync.RWMutex
	nextID uint
	users  map[string]*models.User
}

func NewInMemoryUserRepository() UserRepository {
	return &memoryUserRepo{nextID: 1, users: make(map[string]*models.User)}
}

func (r *memoryUserRepo) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username]; ok {
		return nil, fmt.Errorf("duplicate key value violates unique constraint: %s", user.Username)
	}
	user.ID = r.nextID
	r.nextID++
	stored := copyUser(user)
	r.users[user.Username] = stored
	return copyUser(stored), nil
}

func (r *memoryUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	return copyUser(user), nil
}

func (r *memoryUserRepo) UpdatePassword(_ context.Context, username, passwordHash string) (int64, error) {
	return r.update(username, func(u *models.User) { u.Password = passwordHash })
}

func (r *memoryUserRepo) UpdateEmail(_ context.Context, username, email string) (int64, error) {
	return r.update(username, func(u *models.User) { u.Email = email })
}

func (r *memoryUserRepo) UpdateUsername(_ context.Context, username, newUsername string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[username]
	if !ok {
		return 0, nil
	}
	if _, taken := r.users[newUsername]; taken && newUsername != username {
		return 0, fmt.Errorf("duplicate key value violates unique constraint: %s", newUsername)
	}
	delete(r.users, username)
	user.Username = newUsername
	r.users[newUsername] = user
	return 1, nil
}

func (r *memoryUserRepo) Delete(_ context.Context, username string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[username]; !ok {
		return 0, nil
	}
	delete(r.users, username)
	return 1, nil
}

func (r *memoryUserRepo) UpdateCash(_ context.Context, username string, cash float64) (int64, error) {
	return r.update(username, func(u *models.User) { u.Cash = cash })
}

func (r *memoryUserRepo) ReplaceStocks(_ context.Context, username string, stocks []models.Stock) (int64, error) {
	return r.update(username, func(u *models.User) {
		u.Stocks = append([]models.Stock{}, stocks...)
	})
}

func (r *memoryUserRepo) AppendTransaction(_ context.Context, username string, transaction models.Transaction) (int64, error) {
	return r.update(username, func(u *models.User) {
		u.History = append(u.History, transaction)
	})
}

func (r *memoryUserRepo) update(username string, apply func(*models.User)) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[username]
	if !ok {
		return 0, nil
	}
	apply(user)
	return 1, nil
}

func copyUser(user *models.User) *models.User {
	out := *user
	out.Stocks = append([]models.Stock{}, user.Stocks...)
	out.History = append([]models.Transaction{}, user.History...)
	return &out
}
