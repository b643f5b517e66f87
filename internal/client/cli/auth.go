package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/chatflow/chatflow-cli/internal/client/api"
	"github.com/chatflow/chatflow-cli/internal/client/models"
	"github.com/chatflow/chatflow-cli/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates. On success the
// returned record becomes the current user and the server's message is
// shown. On failure the server's status message is surfaced verbatim;
// a transport failure gets the generic connection message.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	user, message, err := a.authService.Login(ctx, email, password)
	if err != nil {
		printlnFn(loginFailureMessage(err))
		return err
	}

	a.currentUser = user
	a.refreshStatus(ctx)
	if message == "" {
		message = "Login successful"
	}
	printlnFn(message)
	return nil
}

func loginFailureMessage(err error) string {
	if errors.Is(err, api.ErrUnavailable) {
		return "No response from server. Please check your connection."
	}
	var srvErr *api.ServerError
	if errors.As(err, &srvErr) {
		return srvErr.Message
	}
	return err.Error()
}

// Signup prompts for the new account's fields and creates it. Local
// validation failures are printed and never reach the server. On
// success the user is routed to login.
func (a *App) Signup(ctx context.Context) error {
	req := models.SignupRequest{}
	prompts := []struct {
		label string
		dst   *string
	}{
		{"Enter name", &req.Name},
		{"Enter username", &req.Username},
		{"Enter email", &req.Email},
	}
	for _, p := range prompts {
		v, err := getSimpleText(a.reader, p.label, os.Stdout)
		if err != nil {
			return err
		}
		*p.dst = v
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	req.Password = password

	message, err := a.authService.Signup(ctx, req)
	if err != nil {
		if errors.Is(err, common.ErrValidation) {
			printlnFn(err.Error())
		} else {
			printlnFn(loginFailureMessage(err))
		}
		return err
	}

	if message == "" {
		message = "Account created"
	}
	printlnFn(fmt.Sprintf("%s. Please log in.", message))
	return nil
}

// Logout clears the session. The current user is dropped even when the
// server-side invalidation fails.
func (a *App) Logout(ctx context.Context) error {
	err := a.authService.Logout(ctx)
	a.currentUser = nil
	a.refreshStatus(ctx)
	if err != nil {
		printlnFn("Logged out locally, but the server could not be reached.")
		return err
	}
	printlnFn("Logged out.")
	return nil
}
