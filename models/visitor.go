package models

import (
	"time"
)

// Visitor status constants
const (
	StatusCheckedIn  = "Checked In"
	StatusCheckedOut = "Checked Out"
	StatusExpected   = "Expected"
)

// Visitor is a row of the visitors table and of the gate register.
type Visitor struct {
	ID       string     `json:"id" db:"id"`
	Name     string     `json:"name" db:"name"`
	Email    string     `json:"email" db:"email"`
	Phone    string     `json:"phone" db:"phone"`
	Company  string     `json:"company" db:"company"`
	Host     string     `json:"host" db:"host"`
	Purpose  string     `json:"purpose" db:"purpose"`
	CheckIn  *time.Time `json:"checkIn" db:"check_in"`
	CheckOut *time.Time `json:"checkOut" db:"check_out"`
	Status   string     `json:"status" db:"status"`
}

// DBStatus is the body of a successful status probe.
type DBStatus struct {
	Status string    `json:"status"`
	DBTime time.Time `json:"dbTime"`
}
