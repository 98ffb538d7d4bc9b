// Package records holds the user-owned domain records of Aure: jobs,
// payments, and agencies. Every record belongs to exactly one user and every
// query is scoped by user_id.
package records

import (
	"database/sql"
	"time"
)

// JobStatus enumerates the lifecycle of a booked job.
type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobConfirmed JobStatus = "confirmed"
	JobCompleted JobStatus = "completed"
	JobCancelled JobStatus = "cancelled"
)

// PaymentStatus enumerates the collection state of a payment.
type PaymentStatus string

const (
	PaymentExpected PaymentStatus = "expected"
	PaymentInvoiced PaymentStatus = "invoiced"
	PaymentReceived PaymentStatus = "received"
	PaymentOverdue  PaymentStatus = "overdue"
)

type Job struct {
	ID         string
	UserID     string
	AgencyID   sql.NullString
	Title      string
	ClientName string
	Location   string
	RateCents  int64
	Status     JobStatus
	StartsAt   time.Time
	EndsAt     time.Time
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Payment struct {
	ID          string
	UserID      string
	JobID       sql.NullString
	AmountCents int64
	Currency    string
	Status      PaymentStatus
	DueDate     time.Time
	ReceivedAt  sql.NullTime
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Agency struct {
	ID                string
	UserID            string
	Name              string
	ContactName       string
	Email             string
	Phone             string
	CommissionPercent float64
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
