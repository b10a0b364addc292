package entity

import "time"

// Training capacitación presencial con cupo y temario.
type Training struct {
	ID            int64
	Name          string
	Description   string
	Location      string
	StartDateTime time.Time
	EndDateTime   time.Time
	Topics        []string
	Capacity      int
	ImageURL      string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
