package models

// User represents the user model in the database
type User struct {
	Base
	Username         string `gorm:"uniqueIndex;size:80;not null" json:"username"`
	Email            string `gorm:"uniqueIndex;size:120;not null" json:"email"`
	PasswordHash     string `gorm:"size:255;not null" json:"-"`
	RefreshTokenHash string `gorm:"size:64" json:"-"`

	Categories []Category `gorm:"foreignKey:UserID" json:"categories,omitempty"`
	Expenses   []Expense  `gorm:"foreignKey:UserID" json:"expenses,omitempty"`
}
