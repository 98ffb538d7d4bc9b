package httpapi

import (
	"database/sql"
	"time"

	"github.com/aureapp/aure/internal/api"
	"github.com/aureapp/aure/internal/server/documents"
	"github.com/aureapp/aure/internal/server/records"
	"github.com/aureapp/aure/internal/server/users"
)

func nullStringToPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func ptrToNullString(v *string) sql.NullString {
	if v == nil || *v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func nullTimeToPtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

func ptrToNullTime(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *v, Valid: true}
}

func toAPIUser(u *users.User) api.User {
	return api.User{ID: u.ID, Email: u.Email, DisplayName: u.DisplayName}
}

func toAPIJob(j *records.Job) api.Job {
	return api.Job{
		ID:         j.ID,
		UserID:     j.UserID,
		AgencyID:   nullStringToPtr(j.AgencyID),
		Title:      j.Title,
		ClientName: j.ClientName,
		Location:   j.Location,
		RateCents:  j.RateCents,
		Status:     string(j.Status),
		StartsAt:   j.StartsAt,
		EndsAt:     j.EndsAt,
		Notes:      j.Notes,
	}
}

func fromAPIJob(j *api.Job) *records.Job {
	return &records.Job{
		ID:         j.ID,
		AgencyID:   ptrToNullString(j.AgencyID),
		Title:      j.Title,
		ClientName: j.ClientName,
		Location:   j.Location,
		RateCents:  j.RateCents,
		Status:     records.JobStatus(j.Status),
		StartsAt:   j.StartsAt,
		EndsAt:     j.EndsAt,
		Notes:      j.Notes,
	}
}

func toAPIPayment(p *records.Payment) api.Payment {
	return api.Payment{
		ID:          p.ID,
		UserID:      p.UserID,
		JobID:       nullStringToPtr(p.JobID),
		AmountCents: p.AmountCents,
		Currency:    p.Currency,
		Status:      string(p.Status),
		DueDate:     p.DueDate,
		ReceivedAt:  nullTimeToPtr(p.ReceivedAt),
		Notes:       p.Notes,
	}
}

func fromAPIPayment(p *api.Payment) *records.Payment {
	return &records.Payment{
		ID:          p.ID,
		JobID:       ptrToNullString(p.JobID),
		AmountCents: p.AmountCents,
		Currency:    p.Currency,
		Status:      records.PaymentStatus(p.Status),
		DueDate:     p.DueDate,
		ReceivedAt:  ptrToNullTime(p.ReceivedAt),
		Notes:       p.Notes,
	}
}

func toAPIAgency(a *records.Agency) api.Agency {
	return api.Agency{
		ID:                a.ID,
		UserID:            a.UserID,
		Name:              a.Name,
		ContactName:       a.ContactName,
		Email:             a.Email,
		Phone:             a.Phone,
		CommissionPercent: a.CommissionPercent,
		Notes:             a.Notes,
	}
}

func fromAPIAgency(a *api.Agency) *records.Agency {
	return &records.Agency{
		ID:                a.ID,
		Name:              a.Name,
		ContactName:       a.ContactName,
		Email:             a.Email,
		Phone:             a.Phone,
		CommissionPercent: a.CommissionPercent,
		Notes:             a.Notes,
	}
}

func toAPIDocument(d *documents.Document) api.Document {
	return api.Document{
		ID:           d.ID,
		UserID:       d.UserID,
		FileName:     d.FileName,
		ContentType:  d.ContentType,
		SizeBytes:    d.SizeBytes,
		UploadStatus: string(d.UploadStatus),
		Year:         d.Year,
		CreatedAt:    d.CreatedAt,
	}
}
