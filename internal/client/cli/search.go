package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chatflow/chatflow-cli/internal/client/api"
	"github.com/chatflow/chatflow-cli/internal/client/models"
	"github.com/chatflow/chatflow-cli/internal/client/search"
)

// Search runs the user search screen. Each entered line goes through
// the debouncer and its sequence-number scheme, so a late answer to an
// older query can never be rendered. Secondary filters re-slice the
// already-fetched result set without a new request.
//
// Screen commands:
//
//	/filter all|online|recent — re-filter the current results
//	/open <n>                 — open a conversation with result n
//	/quit                     — leave the screen
//
// Anything else is treated as a search query.
func (a *App) Search(ctx context.Context) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	s := search.NewSearcher(a.client, *a.currentUser, a.config.SearchDebounce, a.log)
	defer s.Close()

	var (
		fetched []models.User
		filter  = search.FilterAll
		view    []models.User
	)

	printlnFn("Search users (type a query; /filter, /open <n>, /quit)")
	for {
		line, err := getSimpleText(a.reader, "search", os.Stdout)
		if err != nil {
			return nil
		}

		switch {
		case line == "/quit":
			return nil

		case strings.HasPrefix(line, "/filter"):
			filter = search.ParseFilter(strings.TrimSpace(strings.TrimPrefix(line, "/filter")))
			view = search.Apply(fetched, filter)
			renderResults(view)

		case strings.HasPrefix(line, "/open"):
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "/open")))
			if err != nil || n < 1 || n > len(view) {
				printlnFn("Usage: /open <result number>")
				continue
			}
			a.openThread(a.inbox.OpenWith(view[n-1]))

		default:
			s.Input(line)
			s.Flush()
			r, open := <-s.Results()
			if !open {
				return nil
			}
			if r.Err != nil {
				if errors.Is(r.Err, api.ErrUnauthorized) {
					a.currentUser = nil
					a.refreshStatus(ctx)
					printlnFn("Session expired. Please log in again.")
					return r.Err
				}
				printlnFn("Search failed. Please check your connection.")
				continue
			}
			if r.Query == "" {
				fetched = nil
				view = nil
				printlnFn("Enter at least 2 characters to search.")
				continue
			}
			fetched = r.Users
			view = search.Apply(fetched, filter)
			renderResults(view)
		}
	}
}

func renderResults(users []models.User) {
	if len(users) == 0 {
		printlnFn("No users found.")
		return
	}
	for i, u := range users {
		marker := " "
		if u.IsOnline {
			marker = "*"
		}
		printlnFn(fmt.Sprintf("%d. %s %s (@%s)", i+1, marker, u.Name, u.Username))
	}
}
