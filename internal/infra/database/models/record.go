package models

import (
	"time"
)

// Record is a content record of some registered content type.
type Record struct {
	ID    string    `json:"id" gorm:"primaryKey;type:text"`
	Type  string    `json:"type" gorm:"type:text;index"`
	Title string    `json:"title" gorm:"type:text"`
	Body  string    `json:"body" gorm:"type:text"`
	CDate time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

// FieldValue is one persisted custom field value, keyed by record and
// field storage key.
type FieldValue struct {
	RecordID string    `json:"recordID" gorm:"primaryKey;type:text"`
	FieldKey string    `json:"fieldKey" gorm:"primaryKey;type:text"`
	Value    string    `json:"value" gorm:"type:text"`
	MDate    time.Time `json:"mdate" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
}
