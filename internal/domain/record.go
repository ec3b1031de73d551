package domain

import "time"

// Record is a stored content record of some registered content type.
type Record struct {
	ID    string    `json:"id"`
	Type  string    `json:"type"`
	Title string    `json:"title"`
	Body  string    `json:"body"`
	CDate time.Time `json:"cdate"`
}
