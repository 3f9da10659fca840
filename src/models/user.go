package models

// User is an account document: identity, credentials, cash balance,
// holdings and transaction history. Stocks and History are stored as jsonb
// alongside the scalar columns so the row is read and written as one unit.
type User struct {
	ID       uint          `db:"id" json:"-"`
	Username string        `db:"username" json:"username"`
	Password string        `db:"password" json:"-"`
	Email    string        `db:"email" json:"email"`
	Cash     float64       `db:"cash" json:"cash"`
	Stocks   []Stock       `db:"stocks" json:"stocks"`
	History  []Transaction `db:"history" json:"history"`
}
