// Package inbox is the mocked messaging screen's data layer. There is
// no transport behind it: conversations and transcripts are fixture
// data, composing appends locally, and nothing leaves the process.
package inbox

import (
	"strings"

	"github.com/google/uuid"

	"github.com/chatflow/chatflow-cli/internal/client/models"
)

// Peer is the other party of a conversation.
type Peer struct {
	ID       string
	Name     string
	Avatar   string
	Online   bool
	LastSeen string
}

// Message is one transcript entry. Times are display strings, the same
// shape the fixtures carry.
type Message struct {
	ID       string
	Text     string
	Time     string
	Outgoing bool
}

// LastMessage is the list-row preview of a conversation.
type LastMessage struct {
	Text     string
	Time     string
	Unread   int
	Outgoing bool
}

type Conversation struct {
	ID     string
	Peer   Peer
	Last   LastMessage
	Typing bool

	messages []Message
}

// Inbox holds the conversation list and per-conversation transcripts.
type Inbox struct {
	conversations []*Conversation
}

// NewSampleInbox seeds the fixture conversations the messaging screen
// renders.
func NewSampleInbox() *Inbox {
	peers := []struct {
		peer   Peer
		last   LastMessage
		typing bool
	}{
		{
			peer: Peer{ID: "user1", Name: "Emma Watson", Online: true, LastSeen: "2 min ago"},
			last: LastMessage{Text: "See you tomorrow at the meeting!", Time: "2:30 PM", Unread: 3},
		},
		{
			peer:   Peer{ID: "user2", Name: "Michael Scott", Online: true, LastSeen: "5 min ago"},
			last:   LastMessage{Text: "That sounds like a great plan!", Time: "1:45 PM", Outgoing: true},
			typing: true,
		},
		{
			peer: Peer{ID: "user3", Name: "Sarah Johnson", LastSeen: "1 hour ago"},
			last: LastMessage{Text: "Check out this cool design I found", Time: "11:20 AM", Unread: 1},
		},
		{
			peer: Peer{ID: "user4", Name: "Alex Turner", Online: true, LastSeen: "Just now"},
			last: LastMessage{Text: "Thanks for your help yesterday!", Time: "Yesterday", Outgoing: true},
		},
		{
			peer: Peer{ID: "user5", Name: "Olivia Parker", LastSeen: "2 hours ago"},
			last: LastMessage{Text: "Are we still on for Friday?", Time: "Yesterday", Unread: 2},
		},
	}

	in := &Inbox{}
	for _, p := range peers {
		in.conversations = append(in.conversations, &Conversation{
			ID:       uuid.NewString(),
			Peer:     p.peer,
			Last:     p.last,
			Typing:   p.typing,
			messages: sampleTranscript(),
		})
	}
	return in
}

func sampleTranscript() []Message {
	return []Message{
		{ID: uuid.NewString(), Text: "Hey there! How are you?", Time: "2:25 PM", Outgoing: true},
		{ID: uuid.NewString(), Text: "I'm good! Just finished work", Time: "2:26 PM"},
		{ID: uuid.NewString(), Text: "Want to grab coffee tomorrow?", Time: "2:27 PM", Outgoing: true},
		{ID: uuid.NewString(), Text: "Sure! 10 AM at our usual place?", Time: "2:28 PM"},
		{ID: uuid.NewString(), Text: "Perfect! See you then", Time: "2:30 PM", Outgoing: true},
	}
}

// Conversations returns the list in inbox order.
func (in *Inbox) Conversations() []Conversation {
	out := make([]Conversation, 0, len(in.conversations))
	for _, c := range in.conversations {
		out = append(out, *c)
	}
	return out
}

// Filter returns the conversations whose peer name contains term,
// case-insensitively. An empty term returns everything.
func (in *Inbox) Filter(term string) []Conversation {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]Conversation, 0, len(in.conversations))
	for _, c := range in.conversations {
		if term == "" || strings.Contains(strings.ToLower(c.Peer.Name), term) {
			out = append(out, *c)
		}
	}
	return out
}

// Thread opens a conversation's transcript and clears its unread count.
func (in *Inbox) Thread(conversationID string) ([]Message, bool) {
	c := in.find(conversationID)
	if c == nil {
		return nil, false
	}
	c.Last.Unread = 0
	msgs := make([]Message, len(c.messages))
	copy(msgs, c.messages)
	return msgs, true
}

// OpenWith is the handoff target for search: it returns the existing
// conversation with the given user, or starts an empty one.
func (in *Inbox) OpenWith(user models.User) Conversation {
	for _, c := range in.conversations {
		if c.Peer.ID == user.ID {
			return *c
		}
	}
	c := &Conversation{
		ID: uuid.NewString(),
		Peer: Peer{
			ID:     user.ID,
			Name:   user.Name,
			Avatar: user.Avatar,
			Online: user.IsOnline,
		},
	}
	in.conversations = append(in.conversations, c)
	return *c
}

// Compose appends an outgoing message to the transcript locally and
// updates the list-row preview. Nothing is delivered anywhere.
func (in *Inbox) Compose(conversationID, text string) (Message, bool) {
	c := in.find(conversationID)
	if c == nil {
		return Message{}, false
	}
	m := Message{ID: uuid.NewString(), Text: text, Time: "Just now", Outgoing: true}
	c.messages = append(c.messages, m)
	c.Last = LastMessage{Text: text, Time: m.Time, Outgoing: true}
	return m, true
}

func (in *Inbox) find(conversationID string) *Conversation {
	for _, c := range in.conversations {
		if c.ID == conversationID {
			return c
		}
	}
	return nil
}
