package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"spendwise/internal/models"
	"spendwise/internal/money"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// DefaultCategorySeed mirrors the eight global categories seeded by the
// deployment migration.
var DefaultCategorySeed = []models.Category{
	{Name: "Food & Dining", Icon: "fas fa-utensils", Color: "#EF4444"},
	{Name: "Transportation", Icon: "fas fa-car", Color: "#10B981"},
	{Name: "Shopping", Icon: "fas fa-shopping-bag", Color: "#8B5CF6"},
	{Name: "Entertainment", Icon: "fas fa-film", Color: "#F59E0B"},
	{Name: "Bills & Utilities", Icon: "fas fa-lightbulb", Color: "#06B6D4"},
	{Name: "Healthcare", Icon: "fas fa-hospital", Color: "#EC4899"},
	{Name: "Education", Icon: "fas fa-book", Color: "#6366F1"},
	{Name: "Other", Icon: "fas fa-folder", Color: "#6B7280"},
}

// SeedDefaultCategories inserts the global default categories and returns them.
func SeedDefaultCategories(t *testing.T, db *gorm.DB) []models.Category {
	t.Helper()

	seeded := make([]models.Category, len(DefaultCategorySeed))
	for i, def := range DefaultCategorySeed {
		cat := def
		if err := db.Create(&cat).Error; err != nil {
			t.Fatalf("failed to seed default category %q: %v", def.Name, err)
		}
		seeded[i] = cat
	}
	return seeded
}

// CreateTestUser creates a user with a hashed password and unique username/email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	n := nextID()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username:     fmt.Sprintf("user%d", n),
		Email:        fmt.Sprintf("user%d@test.com", n),
		PasswordHash: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory creates a personal category for the given user.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID uint) *models.Category {
	t.Helper()

	category := &models.Category{
		Name:   fmt.Sprintf("Test Category %d", nextID()),
		Icon:   models.DefaultCategoryIcon,
		Color:  models.DefaultCategoryColor,
		UserID: &userID,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestGlobalCategory creates an owner-less shared category.
func CreateTestGlobalCategory(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()

	category := &models.Category{
		Name:  fmt.Sprintf("Global Category %d", nextID()),
		Icon:  models.DefaultCategoryIcon,
		Color: models.DefaultCategoryColor,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test global category: %v", err)
	}
	return category
}

// CreateTestExpense creates an expense on the given date with the amount in cents.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID, categoryID uint, amount money.Cents, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID:     userID,
		CategoryID: categoryID,
		Amount:     amount,
		Date:       date,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// Date builds a UTC calendar date for fixtures.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
