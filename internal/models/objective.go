package models

import "github.com/shopspring/decimal"

// Objective is a savings target funded by the investments that point at it.
type Objective struct {
	ID           ID              `json:"id,omitempty"`
	UserID       ID              `json:"userId,omitempty"`
	Name         string          `json:"name" validate:"required,max=100"`
	Target       decimal.Decimal `json:"target" validate:"gte=0"`
	Term         Date            `json:"term"`
	CreationDate Date            `json:"creationDate"`
}

// Key returns the backend identifier.
func (o Objective) Key() ID { return o.ID }

// Amount returns the objective's target.
func (o Objective) Amount() decimal.Decimal { return o.Target }
