package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chatflow/chatflow-cli/internal/client/inbox"
)

// Messages runs the inbox screen over the sample conversation data.
//
// Screen commands:
//
//	<n>          — open conversation n
//	/find <name> — filter conversations by peer name
//	/quit        — leave the screen
func (a *App) Messages(ctx context.Context) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	term := ""
	for {
		view := a.inbox.Filter(term)
		renderConversations(view)

		line, err := getSimpleText(a.reader, "messages", os.Stdout)
		if err != nil {
			return nil
		}

		switch {
		case line == "/quit":
			return nil

		case strings.HasPrefix(line, "/find"):
			term = strings.TrimSpace(strings.TrimPrefix(line, "/find"))

		default:
			n, err := strconv.Atoi(line)
			if err != nil || n < 1 || n > len(view) {
				printlnFn("Type a conversation number, /find <name>, or /quit")
				continue
			}
			a.openThread(view[n-1])
		}
	}
}

func renderConversations(convs []inbox.Conversation) {
	if len(convs) == 0 {
		printlnFn("No conversations.")
		return
	}
	for i, c := range convs {
		marker := " "
		if c.Peer.Online {
			marker = "*"
		}
		preview := c.Last.Text
		if c.Last.Outgoing && preview != "" {
			preview = "You: " + preview
		}
		unread := ""
		if c.Last.Unread > 0 {
			unread = fmt.Sprintf(" [%d]", c.Last.Unread)
		}
		if c.Typing {
			preview += " (typing...)"
		}
		printlnFn(fmt.Sprintf("%d. %s %s%s - %s", i+1, marker, c.Peer.Name, unread, preview))
	}
}

// openThread shows a conversation's transcript and lets the user compose
// locally. Nothing leaves the process; there is no messaging transport.
func (a *App) openThread(c inbox.Conversation) {
	printlnFn(fmt.Sprintf("--- %s ---", c.Peer.Name))
	msgs, ok := a.inbox.Thread(c.ID)
	if !ok {
		printlnFn("Conversation not found.")
		return
	}
	renderMessages(msgs)

	for {
		line, err := getSimpleText(a.reader, "message ('/back' to return)", os.Stdout)
		if err != nil {
			return
		}
		if line == "/back" {
			return
		}
		if line == "" {
			continue
		}
		if m, ok := a.inbox.Compose(c.ID, line); ok {
			renderMessages([]inbox.Message{m})
		}
	}
}

func renderMessages(msgs []inbox.Message) {
	for _, m := range msgs {
		who := "them"
		if m.Outgoing {
			who = "you"
		}
		printlnFn(fmt.Sprintf("[%s] %s: %s", m.Time, who, m.Text))
	}
}
