package models

import "github.com/shopspring/decimal"

// Earning is a recorded inflow of money.
type Earning struct {
	ID           ID              `json:"id,omitempty"`
	UserID       ID              `json:"userId,omitempty"`
	Name         string          `json:"name" validate:"required,max=100"`
	Description  string          `json:"description,omitempty" validate:"max=255"`
	Value        decimal.Decimal `json:"value" validate:"gte=0"`
	CreationDate Date            `json:"creationDate"`
	ReceivedDate Date            `json:"receivedDate"`
	Recurring    bool            `json:"recurring"`
}

// Key returns the backend identifier.
func (e Earning) Key() ID { return e.ID }

// Amount returns the earning's value.
func (e Earning) Amount() decimal.Decimal { return e.Value }
