package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aureapp/aure/internal/client/session"
)

func (a *App) getStatus() string {
	snap := a.session.Snapshot()

	switch snap.Status {
	case session.StatusAuthenticated:
		if snap.User != nil {
			return fmt.Sprintf("(%s)", snap.User.Email)
		}
		return "(signed in)"
	case session.StatusLoading:
		return "(...)"
	default:
		return ""
	}
}

func (a *App) Root(ctx context.Context) {

	fmt.Println("Welcome to Aure CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("aure %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: jobs, payments, agencies, taxdocs, addjob, addpayment, addagency, upload, refresh, logout, exit")
			} else {
				fmt.Println("Available commands: register, login, onboard, exit")
			}

		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "onboard":
			_ = a.Onboard(ctx)
		case "jobs":
			a.showJobs(ctx)
		case "payments":
			a.showPayments(ctx)
		case "agencies":
			a.showAgencies(ctx)
		case "taxdocs":
			a.showDocuments(ctx)
		case "addjob":
			_ = a.AddJob(ctx)
		case "addpayment":
			_ = a.AddPayment(ctx)
		case "addagency":
			_ = a.AddAgency(ctx)
		case "upload":
			_ = a.Upload(ctx)
		case "refresh":
			a.session.NotifyDataChanged()
		case "logout":
			a.Logout(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}
