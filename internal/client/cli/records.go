package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aureapp/aure/internal/api"
	"github.com/aureapp/aure/internal/client/guard"
	"github.com/aureapp/aure/internal/client/services"
)

// renderScreen runs the guard and, for RenderContent, hands off to render.
func (a *App) renderScreen(render func()) {
	switch a.screenGuard.Evaluate(a.session.Snapshot()) {
	case guard.RenderContent:
		render()
	case guard.RenderLoading:
		fmt.Println("Loading...")
	case guard.RenderRedirect:
		fmt.Println("You are signed out.")
	case guard.RenderEmptyState:
		fmt.Println("(nothing to show)")
	}
}

func listHeader[T any](loader *services.Loader[T], kind string) ([]T, bool) {
	if loader.LoadFailed() {
		fmt.Printf("Could not load %s. Type 'refresh' to retry.\n", kind)
		return nil, false
	}
	items := loader.Items()
	if len(items) == 0 {
		fmt.Printf("No %s yet.\n", kind)
		return nil, false
	}
	return items, true
}

func (a *App) showJobs(_ context.Context) {
	a.renderScreen(func() {
		jobs, ok := listHeader(a.jobs, "jobs")
		if !ok {
			return
		}
		for _, j := range jobs {
			fmt.Printf("%s  %-20s %-16s %s  $%.2f\n",
				j.ID, j.Title, j.ClientName, j.Status, float64(j.RateCents)/100)
		}
	})
}

func (a *App) showPayments(_ context.Context) {
	a.renderScreen(func() {
		payments, ok := listHeader(a.payments, "payments")
		if !ok {
			return
		}
		for _, p := range payments {
			fmt.Printf("%s  %8.2f %s  %-9s due %s\n",
				p.ID, float64(p.AmountCents)/100, p.Currency, p.Status, p.DueDate.Format("2006-01-02"))
		}
	})
}

func (a *App) showAgencies(_ context.Context) {
	a.renderScreen(func() {
		agencies, ok := listHeader(a.agencies, "agencies")
		if !ok {
			return
		}
		for _, ag := range agencies {
			fmt.Printf("%s  %-20s %-20s %.1f%%\n", ag.ID, ag.Name, ag.ContactName, ag.CommissionPercent)
		}
	})
}

// AddJob prompts for job fields and creates the record. Other mounted
// screens reload via the refresh signal.
func (a *App) AddJob(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Job title", os.Stdout)
	if err != nil {
		return err
	}
	clientName, err := getSimpleText(a.reader, "Client name", os.Stdout)
	if err != nil {
		return err
	}
	location, err := getSimpleText(a.reader, "Location", os.Stdout)
	if err != nil {
		return err
	}
	rate, err := getSimpleText(a.reader, "Rate (in cents)", os.Stdout)
	if err != nil {
		return err
	}
	rateCents, err := strconv.ParseInt(rate, 10, 64)
	if err != nil {
		fmt.Println("Rate must be a whole number of cents")
		return err
	}
	notes, err := GetMultiline(a.reader, "Notes", os.Stdout)
	if err != nil {
		return err
	}

	job := api.Job{
		Title:      title,
		ClientName: clientName,
		Location:   location,
		RateCents:  rateCents,
		Status:     "pending",
		StartsAt:   time.Now(),
		EndsAt:     time.Now().Add(8 * time.Hour),
		Notes:      notes,
	}

	if _, err := a.api.CreateJob(ctx, job); err != nil {
		fmt.Println("Could not create job:", err.Error())
		return err
	}

	a.session.NotifyDataChanged()
	fmt.Println("Job created")
	return nil
}

func (a *App) AddPayment(ctx context.Context) error {
	amount, err := getSimpleText(a.reader, "Amount (in cents)", os.Stdout)
	if err != nil {
		return err
	}
	amountCents, err := strconv.ParseInt(amount, 10, 64)
	if err != nil {
		fmt.Println("Amount must be a whole number of cents")
		return err
	}
	due, err := getSimpleText(a.reader, "Due date (YYYY-MM-DD)", os.Stdout)
	if err != nil {
		return err
	}
	dueDate, err := time.Parse("2006-01-02", due)
	if err != nil {
		fmt.Println("Invalid date:", due)
		return err
	}

	payment := api.Payment{
		AmountCents: amountCents,
		Currency:    "USD",
		Status:      "expected",
		DueDate:     dueDate,
	}

	if _, err := a.api.CreatePayment(ctx, payment); err != nil {
		fmt.Println("Could not create payment:", err.Error())
		return err
	}

	a.session.NotifyDataChanged()
	fmt.Println("Payment created")
	return nil
}

func (a *App) AddAgency(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Agency name", os.Stdout)
	if err != nil {
		return err
	}
	contact, err := getSimpleText(a.reader, "Contact name", os.Stdout)
	if err != nil {
		return err
	}
	commission, err := getSimpleText(a.reader, "Commission percent", os.Stdout)
	if err != nil {
		return err
	}
	percent, err := strconv.ParseFloat(commission, 64)
	if err != nil {
		fmt.Println("Commission must be a number")
		return err
	}

	agency := api.Agency{
		Name:              name,
		ContactName:       contact,
		CommissionPercent: percent,
	}

	if _, err := a.api.CreateAgency(ctx, agency); err != nil {
		fmt.Println("Could not create agency:", err.Error())
		return err
	}

	a.session.NotifyDataChanged()
	fmt.Println("Agency created")
	return nil
}
