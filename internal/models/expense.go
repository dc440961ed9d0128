package models

import "github.com/shopspring/decimal"

// ExpenseStatus is the payment state of an expense.
type ExpenseStatus string

const (
	ExpenseStatusPaid      ExpenseStatus = "PAID"
	ExpenseStatusPending   ExpenseStatus = "PENDING"
	ExpenseStatusOverdue   ExpenseStatus = "OVERDUE"
	ExpenseStatusCancelled ExpenseStatus = "CANCELLED"
)

// Valid reports whether s is one of the known statuses.
func (s ExpenseStatus) Valid() bool {
	switch s {
	case ExpenseStatusPaid, ExpenseStatusPending, ExpenseStatusOverdue, ExpenseStatusCancelled:
		return true
	}
	return false
}

// Expense is a recorded outflow. Category is filled client-side from
// CategoryID after every fetch and is never sent to the backend.
type Expense struct {
	ID           ID              `json:"id,omitempty"`
	UserID       ID              `json:"userId,omitempty"`
	Name         string          `json:"name" validate:"required,max=100"`
	Description  string          `json:"description,omitempty" validate:"max=255"`
	Value        decimal.Decimal `json:"value" validate:"gte=0"`
	CreationDate Date            `json:"creationDate"`
	DueDate      Date            `json:"dueDate"`
	Status       ExpenseStatus   `json:"status" validate:"required,expense_status"`
	CategoryID   *ID             `json:"categoryId"`
	Category     *Category       `json:"category,omitempty"`
}

// Key returns the backend identifier.
func (e Expense) Key() ID { return e.ID }

// Amount returns the expense's value.
func (e Expense) Amount() decimal.Decimal { return e.Value }
