package inbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatflow/chatflow-cli/internal/client/models"
)

func TestNewSampleInbox_Fixtures(t *testing.T) {
	in := NewSampleInbox()
	convs := in.Conversations()
	require.Len(t, convs, 5)

	names := make([]string, 0, len(convs))
	for _, c := range convs {
		names = append(names, c.Peer.Name)
	}
	assert.Equal(t, []string{"Emma Watson", "Michael Scott", "Sarah Johnson", "Alex Turner", "Olivia Parker"}, names)

	assert.Equal(t, 3, convs[0].Last.Unread)
	assert.True(t, convs[1].Typing)
	assert.True(t, convs[1].Last.Outgoing)
	assert.False(t, convs[2].Peer.Online)
}

func TestFilter_ByPeerName(t *testing.T) {
	in := NewSampleInbox()

	got := in.Filter("son")
	require.Len(t, got, 2)
	assert.Equal(t, "Emma Watson", got[0].Peer.Name)
	assert.Equal(t, "Sarah Johnson", got[1].Peer.Name)

	assert.Len(t, in.Filter("  MICHAEL "), 1)
	assert.Len(t, in.Filter(""), 5)
	assert.Empty(t, in.Filter("nobody"))
}

func TestThread_ReturnsTranscriptAndClearsUnread(t *testing.T) {
	in := NewSampleInbox()
	emma := in.Conversations()[0]
	require.Equal(t, 3, emma.Last.Unread)

	msgs, ok := in.Thread(emma.ID)
	require.True(t, ok)
	require.Len(t, msgs, 5)
	assert.Equal(t, "Hey there! How are you?", msgs[0].Text)
	assert.True(t, msgs[0].Outgoing)
	assert.False(t, msgs[1].Outgoing)

	assert.Equal(t, 0, in.Conversations()[0].Last.Unread)
}

func TestThread_UnknownConversation(t *testing.T) {
	in := NewSampleInbox()
	_, ok := in.Thread("no-such-id")
	assert.False(t, ok)
}

func TestOpenWith_ExistingPeerReturnsConversation(t *testing.T) {
	in := NewSampleInbox()
	c := in.OpenWith(models.User{ID: "user2", Name: "Someone Else"})
	assert.Equal(t, "Michael Scott", c.Peer.Name)
	assert.Len(t, in.Conversations(), 5, "no duplicate conversation is created")
}

func TestOpenWith_NewPeerStartsEmptyConversation(t *testing.T) {
	in := NewSampleInbox()
	u := models.User{ID: "u-new", Name: "Nina Fresh", Email: "nina@example.com", IsOnline: true}

	c := in.OpenWith(u)
	assert.Equal(t, "Nina Fresh", c.Peer.Name)
	assert.True(t, c.Peer.Online)

	msgs, ok := in.Thread(c.ID)
	require.True(t, ok)
	assert.Empty(t, msgs)
	assert.Len(t, in.Conversations(), 6)
}

func TestCompose_AppendsLocallyAndUpdatesPreview(t *testing.T) {
	in := NewSampleInbox()
	emma := in.Conversations()[0]

	m, ok := in.Compose(emma.ID, "On my way")
	require.True(t, ok)
	assert.True(t, m.Outgoing)

	msgs, ok := in.Thread(emma.ID)
	require.True(t, ok)
	require.Len(t, msgs, 6)
	assert.Equal(t, "On my way", msgs[5].Text)

	refreshed := in.Conversations()[0]
	assert.Equal(t, "On my way", refreshed.Last.Text)
	assert.True(t, refreshed.Last.Outgoing)
}

func TestCompose_UnknownConversation(t *testing.T) {
	in := NewSampleInbox()
	_, ok := in.Compose("no-such-id", "hello")
	assert.False(t, ok)
}
