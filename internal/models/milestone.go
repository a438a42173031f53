package models

import "time"

type Milestone struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProjectID   string    `gorm:"type:varchar(36);not null;index" json:"project_id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description"`
	StartDate   *Date     `json:"start_date"`
	DueDate     Date      `gorm:"not null" json:"due_date"`
	Status      Status    `gorm:"type:varchar(20);not null" json:"status"`
	Progress    int       `gorm:"not null;default:0" json:"progress"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
	Tasks   []Task  `gorm:"foreignKey:MilestoneID" json:"-"`
}
