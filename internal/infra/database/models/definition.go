package models

import (
	"time"
)

// ContentType is one stored content-type definition. Rows are append-only;
// insertion order is the canonical list order.
type ContentType struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"type:text;not null"`
	Slug        string    `json:"slug" gorm:"type:text;index:content_type_slug,unique"`
	Description string    `json:"description" gorm:"type:text"`
	CDate       time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

// Taxonomy is one stored taxonomy definition. PostTypes holds the bound
// content-type slugs as a JSON array.
type Taxonomy struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"type:text;not null"`
	Slug        string    `json:"slug" gorm:"type:text;index:taxonomy_slug,unique"`
	Description string    `json:"description" gorm:"type:text"`
	PostTypes   string    `json:"postTypes" gorm:"type:text"`
	CDate       time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

// MetaBox is one stored meta-box definition. Fields holds the ordered
// field rows as a JSON array; titles are not unique.
type MetaBox struct {
	ID       int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title    string    `json:"title" gorm:"type:text;not null"`
	PostType string    `json:"postType" gorm:"type:text;index"`
	Fields   string    `json:"fields" gorm:"type:text"`
	CDate    time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}
