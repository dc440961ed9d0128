package models

// Category groups expenses. It is referenced by Expense.CategoryID.
type Category struct {
	ID          ID     `json:"id,omitempty"`
	UserID      ID     `json:"userId,omitempty"`
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description,omitempty" validate:"max=255"`
	Color       string `json:"color,omitempty" validate:"omitempty,hex_color"`
}

// Key returns the backend identifier.
func (c Category) Key() ID { return c.ID }
