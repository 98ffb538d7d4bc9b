package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/aureapp/aure/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for profile details and creates an account. On success
// the session manager holds an authenticated session and the token pair is
// mirrored locally. The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	displayName, err := getSimpleText(a.reader, "Enter display name", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.SignUp(ctx, displayName, email, string(password)); err != nil {
		fmt.Println("Registration failed:", err.Error())
		return err
	}

	a.persistSession(ctx)
	fmt.Println("Success!")
	return nil
}

// Login prompts for credentials and authenticates. A failure leaves the
// session NotAuthenticated with no retry; the error text comes from the
// session toast so it matches what a UI would show.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.SignIn(ctx, email, string(password)); err != nil {
		fmt.Println("Login failed:", a.session.Snapshot().Toast)
		return err
	}

	a.persistSession(ctx)
	fmt.Println("Login successful")
	return nil
}

// Logout revokes the session; the manager wipes the mirror and clipboard.
func (a *App) Logout(ctx context.Context) {
	a.session.SignOut(ctx)
	fmt.Println("Signed out")
}
