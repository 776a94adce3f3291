package models

import "time"

// Milestone is one entry of the append-only milestone log.
type Milestone struct {
	Id        int64
	Title     string
	Note      string
	CreatedAt time.Time
}
