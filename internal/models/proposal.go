package models

import "time"

type Proposal struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProjectID string    `gorm:"type:varchar(36);not null;index" json:"project_id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Project   Project           `gorm:"foreignKey:ProjectID" json:"-"`
	Sections  []ProposalSection `gorm:"foreignKey:ProposalID" json:"-"`
	Documents []Document        `gorm:"foreignKey:ProposalID" json:"-"`
}

// ProposalView adds the owning project's name for list screens.
type ProposalView struct {
	Proposal
	ProjectName *string `json:"project_name,omitempty"`
}

type ProposalSection struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProposalID string    `gorm:"type:varchar(36);not null;index" json:"proposal_id"`
	Title      string    `gorm:"type:varchar(255);not null" json:"title"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	OrderNum   int       `gorm:"not null" json:"order_num"`
	CreatedAt  time.Time `gorm:"precision:6" json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Proposal Proposal `gorm:"foreignKey:ProposalID" json:"-"`
}
