package models

import "time"

type Document struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description"`
	FileURL     string    `gorm:"type:varchar(500);not null" json:"file_url"`
	FileType    string    `gorm:"type:varchar(50);not null" json:"file_type"`
	UploadDate  Date      `gorm:"not null" json:"upload_date"`
	ProposalID  *string   `gorm:"type:varchar(36);index" json:"proposal_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Proposal *Proposal `gorm:"foreignKey:ProposalID" json:"-"`
}

// DocumentView adds the owning proposal's title for list screens.
type DocumentView struct {
	Document
	ProposalTitle *string `json:"proposal_title,omitempty"`
}
