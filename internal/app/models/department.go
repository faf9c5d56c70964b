package models

import "time"

// Department is the lookup entity every course belongs to
type Department struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Budget    float64   `json:"budget" db:"budget"`
	StartDate time.Time `json:"startDate" db:"start_date"`
}
