package models

// Snapshot is a point-in-time copy of every collection of one user.
type Snapshot struct {
	Categories  []Category   `json:"categories"`
	Earnings    []Earning    `json:"earnings"`
	Expenses    []Expense    `json:"expenses"`
	Investments []Investment `json:"investments"`
	Objectives  []Objective  `json:"objectives"`
}
