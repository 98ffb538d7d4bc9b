package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aureapp/aure/internal/client/onboarding"
)

// Onboard walks the first-run wizard. Each step validates before advancing;
// 'back' returns to the previous step with input kept.
func (a *App) Onboard(ctx context.Context) error {

	w := onboarding.NewWizard()
	a.session.AdvancePhase()

	for !w.Done() {
		var prompt string
		switch w.Step() {
		case onboarding.StepEmail:
			prompt = "Enter email (or 'back')"
		case onboarding.StepPhone:
			prompt = "Enter phone number (or 'back')"
		case onboarding.StepPassword:
			prompt = "Choose a password (or 'back')"
		case onboarding.StepVerification:
			prompt = "Enter the 6-digit verification code (or 'back')"
		}

		input, err := getSimpleText(a.reader, prompt, os.Stdout)
		if err != nil {
			return err
		}

		if input == "back" {
			if err := w.Back(); err != nil {
				fmt.Println(err.Error())
			}
			continue
		}

		switch w.Step() {
		case onboarding.StepEmail:
			w.Email = input
		case onboarding.StepPhone:
			w.Phone = input
		case onboarding.StepPassword:
			w.Password = input
		case onboarding.StepVerification:
			w.Code = input
		}

		if err := w.Next(); err != nil {
			fmt.Println(err.Error())
		}
	}

	a.session.CompleteOnboarding()

	fmt.Println("Creating your account...")
	displayName := strings.SplitN(w.Email, "@", 2)[0]
	err := a.session.SignUp(ctx, displayName, w.Email, w.Password)
	if err != nil {
		fmt.Println("Sign-up failed:", err.Error())
		return err
	}

	a.persistSession(ctx)
	fmt.Println("Welcome to Aure!")
	return nil
}
