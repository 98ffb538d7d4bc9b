// Package api defines the JSON wire types shared by the Aure server and
// client. Domain records always carry user_id so clients can re-validate
// ownership after every fetch.
package api

import "time"

type ErrorResponse struct {
	Error string `json:"error"`
}

type SignUpRequest struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// TokenPair is returned by refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Session is returned by sign-up and sign-in.
type Session struct {
	User User `json:"user"`
	TokenPair
}

type Job struct {
	ID         string    `json:"id,omitempty"`
	UserID     string    `json:"user_id,omitempty"`
	AgencyID   *string   `json:"agency_id,omitempty"`
	Title      string    `json:"title"`
	ClientName string    `json:"client_name"`
	Location   string    `json:"location"`
	RateCents  int64     `json:"rate_cents"`
	Status     string    `json:"status"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
	Notes      string    `json:"notes"`
}

type Payment struct {
	ID          string     `json:"id,omitempty"`
	UserID      string     `json:"user_id,omitempty"`
	JobID       *string    `json:"job_id,omitempty"`
	AmountCents int64      `json:"amount_cents"`
	Currency    string     `json:"currency"`
	Status      string     `json:"status"`
	DueDate     time.Time  `json:"due_date"`
	ReceivedAt  *time.Time `json:"received_at,omitempty"`
	Notes       string     `json:"notes"`
}

type Agency struct {
	ID                string  `json:"id,omitempty"`
	UserID            string  `json:"user_id,omitempty"`
	Name              string  `json:"name"`
	ContactName       string  `json:"contact_name"`
	Email             string  `json:"email"`
	Phone             string  `json:"phone"`
	CommissionPercent float64 `json:"commission_percent"`
	Notes             string  `json:"notes"`
}

type Document struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id,omitempty"`
	FileName     string    `json:"file_name"`
	ContentType  string    `json:"content_type"`
	SizeBytes    int64     `json:"size_bytes"`
	UploadStatus string    `json:"upload_status"`
	Year         int       `json:"year"`
	CreatedAt    time.Time `json:"created_at"`
}

type UploadRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	Year        int    `json:"year"`
}

type UploadResponse struct {
	Document Document `json:"document"`
	URL      string   `json:"url"`
}

type DownloadResponse struct {
	URL string `json:"url"`
}
