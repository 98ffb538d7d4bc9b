// Package onboarding implements the first-run wizard as an explicit step
// state machine.
package onboarding

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Step is one screen of the wizard. Steps advance strictly in order.
type Step int

const (
	StepEmail Step = iota
	StepPhone
	StepPassword
	StepVerification
	stepDone
)

func (s Step) String() string {
	switch s {
	case StepEmail:
		return "email"
	case StepPhone:
		return "phone"
	case StepPassword:
		return "password"
	case StepVerification:
		return "verification"
	case stepDone:
		return "done"
	}
	return "unknown"
}

var (
	ErrAlreadyDone = errors.New("onboarding already completed")
	ErrAtFirstStep = errors.New("already at the first step")
)

var phoneRe = regexp.MustCompile(`^\+?[0-9 \-()]{7,20}$`)

// Wizard collects sign-up details step by step. Next validates the current
// step's input before advancing, so a later step can rely on everything
// before it.
type Wizard struct {
	step Step

	Email    string
	Phone    string
	Password string
	Code     string
}

func NewWizard() *Wizard {
	return &Wizard{step: StepEmail}
}

func (w *Wizard) Step() Step {
	return w.step
}

// Done reports whether the verification step was passed.
func (w *Wizard) Done() bool {
	return w.step == stepDone
}

// Next validates the current step and advances to the following one.
func (w *Wizard) Next() error {
	if err := w.validateCurrent(); err != nil {
		return err
	}

	switch w.step {
	case StepEmail, StepPhone, StepPassword, StepVerification:
		w.step++
		return nil
	default:
		return ErrAlreadyDone
	}
}

// Back returns to the previous step. Input already collected is kept.
func (w *Wizard) Back() error {
	switch w.step {
	case StepEmail:
		return ErrAtFirstStep
	case stepDone:
		return ErrAlreadyDone
	default:
		w.step--
		return nil
	}
}

func (w *Wizard) validateCurrent() error {
	switch w.step {
	case StepEmail:
		email := strings.TrimSpace(w.Email)
		at := strings.Index(email, "@")
		if at < 1 || at == len(email)-1 {
			return fmt.Errorf("invalid email %q", w.Email)
		}
		w.Email = strings.ToLower(email)
		return nil

	case StepPhone:
		if !phoneRe.MatchString(strings.TrimSpace(w.Phone)) {
			return fmt.Errorf("invalid phone number %q", w.Phone)
		}
		return nil

	case StepPassword:
		if len(w.Password) < 8 {
			return errors.New("password must be at least 8 characters")
		}
		return nil

	case StepVerification:
		code := strings.TrimSpace(w.Code)
		if len(code) != 6 {
			return errors.New("verification code must be 6 digits")
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				return errors.New("verification code must be 6 digits")
			}
		}
		return nil
	}
	return ErrAlreadyDone
}
