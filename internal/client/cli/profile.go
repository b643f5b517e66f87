package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/chatflow/chatflow-cli/internal/client/api"
	"github.com/chatflow/chatflow-cli/internal/client/models"
	"github.com/chatflow/chatflow-cli/internal/client/profile"
	"github.com/chatflow/chatflow-cli/internal/common"
)

// Profile shows the authoritative profile record, re-fetched on every
// entry. Failures replace the screen with an error line and a manual
// retry hint, never an automatic retry.
func (a *App) Profile(ctx context.Context) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	user, err := a.userService.Refresh(ctx)
	if err != nil {
		printlnFn("Could not load your profile. Check your connection and type 'profile' to retry.")
		return err
	}

	printUser(user)
	return nil
}

func printUser(u *models.User) {
	printlnFn(fmt.Sprintf("Name:     %s", u.Name))
	printlnFn(fmt.Sprintf("Username: %s", u.Username))
	printlnFn(fmt.Sprintf("Email:    %s", u.Email))
	if u.Avatar != "" {
		printlnFn(fmt.Sprintf("Avatar:   %s", u.Avatar))
	}
	if u.Bio != "" {
		printlnFn(fmt.Sprintf("Bio:      %s", u.Bio))
	}
}

// Edit runs the profile edit flow: snapshot the current record, prompt
// for the editable fields (email is never editable), validate locally,
// short-circuit unchanged saves, and submit the partial update. On
// server failure the user stays in the edit loop with the server's
// message shown verbatim.
func (a *App) Edit(ctx context.Context) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	baseline, err := a.userService.Refresh(ctx)
	if err != nil {
		printlnFn("Could not load your profile. Check your connection and type 'edit' to retry.")
		return err
	}

	ed := profile.NewEditor(*baseline)
	ed.StartEdit()

	for {
		cancelled, err := a.promptEditFields(ed)
		if err != nil {
			return err
		}
		if cancelled {
			ed.Cancel()
			printlnFn("Edit cancelled.")
			return nil
		}

		req, ok, err := ed.Save()
		if err != nil {
			if errors.Is(err, common.ErrValidation) {
				printlnFn(err.Error())
				continue
			}
			return err
		}
		if !ok {
			printlnFn("No changes to save.")
			return nil
		}

		updated, err := a.userService.Update(ctx, req)
		if err != nil {
			printlnFn(updateFailureMessage(err))
			continue
		}

		ed.Adopt(*updated)
		printlnFn("Profile updated successfully!")
		printUser(updated)
		return nil
	}
}

// promptEditFields fills the edit buffer from user input. An empty
// answer keeps the buffer's current value; typing "cancel" at any
// prompt abandons the edit.
func (a *App) promptEditFields(ed *profile.Editor) (cancelled bool, err error) {
	fields := []struct {
		label string
		get   func() string
		set   func(string)
	}{
		{"Name", func() string { return ed.Buffer().Name }, ed.SetName},
		{"Username", func() string { return ed.Buffer().Username }, ed.SetUsername},
		{"Avatar URL", func() string { return ed.Buffer().Avatar }, ed.SetAvatar},
	}
	for _, f := range fields {
		prompt := fmt.Sprintf("%s [%s] (enter to keep, 'cancel' to discard)", f.label, f.get())
		v, err := getSimpleText(a.reader, prompt, os.Stdout)
		if err != nil {
			return false, err
		}
		if v == "cancel" {
			return true, nil
		}
		if v != "" {
			f.set(v)
		}
	}
	return false, nil
}

func updateFailureMessage(err error) string {
	if errors.Is(err, api.ErrUnavailable) {
		return "Could not save your changes. Please check your connection."
	}
	var srvErr *api.ServerError
	if errors.As(err, &srvErr) && srvErr.Message != "" {
		return srvErr.Message
	}
	return "Failed to update profile. Please try again."
}
