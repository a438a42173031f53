package models

import "time"

type Project struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	StartDate   Date      `gorm:"not null" json:"start_date"`
	EndDate     Date      `gorm:"not null" json:"end_date"`
	Progress    int       `gorm:"not null;default:0" json:"progress"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Milestones []Milestone `gorm:"foreignKey:ProjectID" json:"-"`
	Proposals  []Proposal  `gorm:"foreignKey:ProjectID" json:"-"`
}
