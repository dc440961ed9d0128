package models

import "github.com/shopspring/decimal"

// InvestmentType selects the withholding-tax rule for an investment.
type InvestmentType string

const (
	InvestmentTypeTesouro  InvestmentType = "TESOURO"
	InvestmentTypeFIIs     InvestmentType = "FIIS"
	InvestmentTypeAcoes    InvestmentType = "ACOES"
	InvestmentTypePoupanca InvestmentType = "POUPANCA"
	InvestmentTypeCDI      InvestmentType = "CDI"
	InvestmentTypeCrypto   InvestmentType = "CRYPTO"
)

// Valid reports whether t is one of the known investment types.
func (t InvestmentType) Valid() bool {
	switch t {
	case InvestmentTypeTesouro, InvestmentTypeFIIs, InvestmentTypeAcoes,
		InvestmentTypePoupanca, InvestmentTypeCDI, InvestmentTypeCrypto:
		return true
	}
	return false
}

// Investment is a capital allocation with an annual rate over a term in months.
type Investment struct {
	ID             ID              `json:"id,omitempty"`
	UserID         ID              `json:"userId,omitempty"`
	Name           string          `json:"name" validate:"required,max=100"`
	Description    string          `json:"description,omitempty" validate:"max=255"`
	Value          decimal.Decimal `json:"value" validate:"gte=0"`
	Percentage     decimal.Decimal `json:"percentage" validate:"gte=0"`
	Months         int             `json:"months" validate:"gte=1"`
	InvestmentType InvestmentType  `json:"investmentType" validate:"required,investment_type"`
	CreationDate   Date            `json:"creationDate"`
	ObjectiveID    *ID             `json:"objectiveId"`
}

// Key returns the backend identifier.
func (i Investment) Key() ID { return i.ID }

// Amount returns the invested value.
func (i Investment) Amount() decimal.Decimal { return i.Value }
