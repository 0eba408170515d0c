package models

import "time"

const (
	TransactionIncome  = "INCOME"
	TransactionExpense = "EXPENSE"
)

// Budget account types mirror the kinds of places people actually keep money.
const (
	AccountBank       = "BANK"
	AccountEwallet    = "EWALLET"
	AccountCash       = "CASH"
	AccountInvestment = "INVESTMENT"
	AccountCreditCard = "CREDIT_CARD"
)

type User struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash *string   `db:"password_hash" json:"-"`
	Image        *string   `db:"image" json:"image,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

type Category struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type BudgetAccount struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	Type      string    `db:"type" json:"type"`
	Balance   int64     `db:"balance" json:"-"`
	Color     *string   `db:"color" json:"color,omitempty"`
	Icon      *string   `db:"icon" json:"icon,omitempty"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type Transaction struct {
	ID              string    `db:"id" json:"id"`
	UserID          string    `db:"user_id" json:"user_id"`
	CategoryID      string    `db:"category_id" json:"category_id"`
	BudgetAccountID *string   `db:"budget_account_id" json:"budget_account_id,omitempty"`
	Amount          int64     `db:"amount" json:"-"`
	Type            string    `db:"type" json:"type"`
	Description     string    `db:"description" json:"description"`
	Date            time.Time `db:"date" json:"date"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

func ValidTransactionType(value string) bool {
	return value == TransactionIncome || value == TransactionExpense
}

func ValidAccountType(value string) bool {
	switch value {
	case AccountBank, AccountEwallet, AccountCash, AccountInvestment, AccountCreditCard:
		return true
	}
	return false
}
