package testutil

import (
	"encoding/json"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finboard/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Money parses a decimal literal, failing loudly on typos.
func Money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Ref returns a pointer to id.
func Ref(id models.ID) *models.ID { return &id }

// TestUser returns a backend user with a unique e-mail.
func TestUser() models.User {
	n := nextID()
	return models.User{
		ID:    models.ID(fmt.Sprint(n)),
		Name:  fmt.Sprintf("Estudante %d", n),
		Email: fmt.Sprintf("user%d@test.com", n),
	}
}

// TestCategory returns an unsaved category.
func TestCategory(name string) models.Category {
	return models.Category{Name: name, Color: "#3366ff"}
}

// TestEarning returns an unsaved earning received on date.
func TestEarning(value string, date models.Date) models.Earning {
	return models.Earning{
		Name:         fmt.Sprintf("Receita %d", nextID()),
		Value:        Money(value),
		ReceivedDate: date,
	}
}

// TestExpense returns an unsaved pending expense due on date.
func TestExpense(value string, date models.Date, categoryID *models.ID) models.Expense {
	return models.Expense{
		Name:       fmt.Sprintf("Despesa %d", nextID()),
		Value:      Money(value),
		DueDate:    date,
		Status:     models.ExpenseStatusPending,
		CategoryID: categoryID,
	}
}

// TestInvestment returns an unsaved investment.
func TestInvestment(value string, typ models.InvestmentType, months int, objectiveID *models.ID) models.Investment {
	return models.Investment{
		Name:           fmt.Sprintf("Investimento %d", nextID()),
		Value:          Money(value),
		Percentage:     Money("12"),
		Months:         months,
		InvestmentType: typ,
		ObjectiveID:    objectiveID,
	}
}

// TestObjective returns an unsaved objective.
func TestObjective(target string) models.Objective {
	return models.Objective{
		Name:   fmt.Sprintf("Objetivo %d", nextID()),
		Target: Money(target),
	}
}

// CreateTestActivityLog stores an activity entry for userID.
func CreateTestActivityLog(t *testing.T, db *gorm.DB, userID, action, resourceType string) *models.ActivityLog {
	t.Helper()

	changes, _ := json.Marshal(map[string]any{"name": "fixture"})
	entry := &models.ActivityLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   fmt.Sprint(nextID()),
		IPAddress:    "127.0.0.1",
		Changes:      string(changes),
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test activity log: %v", err)
	}
	return entry
}
