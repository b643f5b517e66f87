package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/chatflow/chatflow-cli/internal/client/models"
	"github.com/chatflow/chatflow-cli/internal/client/services"
)

// placeholder identity rendered when no identity can be resolved at all.
var placeholderIdentity = services.Identity{Name: "User", Email: "user@example.com"}

// refreshStatus re-resolves the prompt's identity segment and caches the
// rendered line. Resolution is three-tier: fresh backend record, stored
// snapshot, hard-coded placeholder; it never surfaces an error. Called on
// login, logout and protected-screen entry, not per prompt, so an idle
// prompt costs no network round trip.
func (a *App) refreshStatus(ctx context.Context) {
	if !a.isLoggedIn() {
		a.status = ""
		return
	}
	id, ok := a.identity.Resolve(ctx)
	if !ok {
		id = placeholderIdentity
	}
	// The name's initial stands in for the avatar circle.
	badge := models.User{Name: id.Name}.Initial()
	a.status = fmt.Sprintf("([%s] %s <%s>)", badge, id.Name, id.Email)
}

func (a *App) getStatus() string {
	return a.status
}

// Root restores any persisted session and runs the REPL until exit.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to ChatFlow CLI (type 'help' for commands)")

	if err := a.authService.RestoreSession(ctx); err != nil {
		a.log.Warn(ctx, "could not restore persisted session", "error", err)
	} else if user, err := a.authService.Verify(ctx); err == nil {
		a.currentUser = user
		a.refreshStatus(ctx)
		printlnFn(fmt.Sprintf("Welcome back, %s!", user.Name))
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
