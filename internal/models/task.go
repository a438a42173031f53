package models

import "time"

type Task struct {
	ID            string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title         string    `gorm:"type:varchar(255);not null" json:"title"`
	Description   *string   `gorm:"type:text" json:"description"`
	Status        Status    `gorm:"type:varchar(20);not null" json:"status"`
	StartDate     Date      `gorm:"not null" json:"start_date"`
	DueDate       Date      `gorm:"not null" json:"due_date"`
	CompletedDate *Date     `json:"completed_date"`
	Progress      int       `gorm:"not null;default:0" json:"progress"`
	Priority      Priority  `gorm:"type:varchar(20);not null" json:"priority"`
	UserID        string    `gorm:"type:varchar(36);not null;index" json:"user_id"`
	MilestoneID   *string   `gorm:"type:varchar(36);index" json:"milestone_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relations
	User      User       `gorm:"foreignKey:UserID" json:"-"`
	Milestone *Milestone `gorm:"foreignKey:MilestoneID" json:"-"`
}

// TaskView is a task joined with its owner's name and milestone title for list screens.
type TaskView struct {
	Task
	UserName       *string `json:"user_name,omitempty"`
	MilestoneTitle *string `json:"milestone_title,omitempty"`
}
