package cli

import (
	"context"
)

// requireSession is the auth gate every protected screen passes through:
// one verification attempt per screen entry, no retry. On failure the
// local session is already cleared by the service and the user is routed
// back to the logged-out prompt.
func (a *App) requireSession(ctx context.Context) error {
	user, err := a.authService.Verify(ctx)
	if err != nil {
		a.currentUser = nil
		a.refreshStatus(ctx)
		printlnFn("Session expired. Please log in again.")
		return err
	}
	a.currentUser = user
	a.refreshStatus(ctx)
	return nil
}
