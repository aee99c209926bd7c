package models

// Default values applied when a category is created without an icon or color.
const (
	DefaultCategoryIcon  = "fas fa-folder"
	DefaultCategoryColor = "#6B7280"
)

// Category labels expenses. A category with a nil UserID is a global
// default visible to every user; otherwise it belongs to exactly one user.
type Category struct {
	Base
	Name   string `gorm:"size:100;not null" json:"name"`
	Icon   string `gorm:"size:30" json:"icon"`
	Color  string `gorm:"size:7" json:"color"`
	UserID *uint  `gorm:"index" json:"user_id"`

	Expenses []Expense `gorm:"foreignKey:CategoryID" json:"expenses,omitempty"`
}

// IsGlobal reports whether the category is a shared default.
func (c *Category) IsGlobal() bool {
	return c.UserID == nil
}
