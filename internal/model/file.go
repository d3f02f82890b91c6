package model

import (
	"time"

	"gorm.io/gorm"
)

type File struct {
	gorm.Model
	FileNumber  string   `json:"file_number" gorm:"unique;not null"`
	Name        string   `json:"name" gorm:"not null"`
	Type        FileType `json:"type" gorm:"type:varchar(20);not null;index"`
	OwnerID     uint     `json:"owner_id" gorm:"index"`
	Description string   `json:"description"`

	// RecordCount is filled by list queries, not stored.
	RecordCount int64 `json:"record_count" gorm:"->;-:migration"`

	Owner   *Admin   `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Records []Record `json:"records,omitempty" gorm:"foreignKey:FileID;constraint:OnDelete:CASCADE"`
}

type Record struct {
	gorm.Model
	FileID         uint         `json:"file_id" gorm:"not null;index"`
	UniqueNumber   string       `json:"unique_number" gorm:"unique;not null"`
	Type           string       `json:"type"`
	Date           string       `json:"date"` // YYYY-MM-DD
	From           string       `json:"from" gorm:"column:from_party"`
	To             string       `json:"to" gorm:"column:to_party"`
	Subject        string       `json:"subject" gorm:"not null"`
	Content        string       `json:"content" gorm:"type:text"`
	Attachment     string       `json:"attachment"`
	Status         RecordStatus `json:"status" gorm:"type:varchar(20);not null;default:pending;index"`
	Reference      string       `json:"reference"`
	TrackingNumber string       `json:"tracking_number" gorm:"unique;not null"`
	CreatedBy      uint         `json:"created_by"`

	Forwards []ForwardedRecord `json:"forwards,omitempty" gorm:"foreignKey:RecordID;constraint:OnDelete:CASCADE"`
}

type ForwardedRecord struct {
	gorm.Model
	RecordID      uint          `json:"record_id" gorm:"not null;index"`
	FileID        uint          `json:"file_id" gorm:"not null;index"`
	ForwardedBy   uint          `json:"forwarded_by" gorm:"not null;index"`
	RecipientID   uint          `json:"recipient_id" gorm:"not null;index"`
	RecipientType Role          `json:"recipient_type" gorm:"type:varchar(32)"`
	Status        ForwardStatus `json:"status" gorm:"type:varchar(20);not null;default:Pending;index"`
	Notes         string        `json:"notes" gorm:"type:text"`
	ForwardedAt   time.Time     `json:"forwarded_at"`

	Record    *Record  `json:"record,omitempty" gorm:"foreignKey:RecordID"`
	Sender    *Admin   `json:"sender,omitempty" gorm:"foreignKey:ForwardedBy"`
	Recipient *Admin   `json:"recipient,omitempty" gorm:"foreignKey:RecipientID"`
	Reviews   []Review `json:"reviews,omitempty" gorm:"foreignKey:ForwardedRecordID;constraint:OnDelete:CASCADE"`
}

type Review struct {
	gorm.Model
	ForwardedRecordID uint           `json:"forwarded_record_id" gorm:"not null;index"`
	RecordID          uint           `json:"record_id" gorm:"not null;index"`
	ReviewerID        uint           `json:"reviewer_id" gorm:"not null"`
	Decision          ReviewDecision `json:"decision" gorm:"type:varchar(10);not null"`
	Note              string         `json:"note" gorm:"type:text"`
	Department        string         `json:"department"`
}
