// Package profile holds the edit state machine for the current user's
// profile screen. It is deliberately free of I/O: the caller feeds it
// input, asks it for a pending update request, and reports the server's
// answer back via Adopt.
package profile

import (
	"strings"

	"github.com/chatflow/chatflow-cli/internal/client/models"
)

// State is the editor's mode.
type State int

const (
	StateViewing State = iota
	StateEditing
)

// Buffer holds the in-progress edits. Email is intentionally absent:
// it is the reconciliation key and is never editable.
type Buffer struct {
	Name     string
	Username string
	Avatar   string
}

// Editor is a two-state machine over a baseline user record. StartEdit
// moves viewing to editing by snapshotting the baseline into the buffer.
// Cancel, a no-op Save, and Adopt all return to viewing. A Save with
// actual changes keeps the editor in editing until the caller reports
// the outcome: Adopt on success, nothing on failure.
type Editor struct {
	state    State
	baseline models.User
	buf      Buffer
}

func NewEditor(baseline models.User) *Editor {
	return &Editor{state: StateViewing, baseline: baseline}
}

func (e *Editor) State() State          { return e.state }
func (e *Editor) Baseline() models.User { return e.baseline }
func (e *Editor) Buffer() Buffer        { return e.buf }

// StartEdit snapshots the current baseline into the edit buffer.
// A no-op while already editing, so accidental double entry does not
// wipe in-progress edits.
func (e *Editor) StartEdit() {
	if e.state == StateEditing {
		return
	}
	e.buf = Buffer{
		Name:     e.baseline.Name,
		Username: e.baseline.Username,
		Avatar:   e.baseline.Avatar,
	}
	e.state = StateEditing
}

// Cancel discards the buffer and returns to viewing. No network call is
// implied; the baseline is untouched.
func (e *Editor) Cancel() {
	e.buf = Buffer{}
	e.state = StateViewing
}

func (e *Editor) SetName(v string)     { e.buf.Name = v }
func (e *Editor) SetUsername(v string) { e.buf.Username = v }
func (e *Editor) SetAvatar(v string)   { e.buf.Avatar = v }

// Save validates the buffer and decides what happens next:
//
//   - invalid buffer: returns the validation error, stays in editing,
//     and the caller must not issue a request;
//   - valid but unchanged versus the baseline: returns ok == false with
//     no error, transitions back to viewing (no-op write avoided);
//   - valid and changed: returns the partial update request with
//     ok == true and stays in editing until Adopt or Cancel.
func (e *Editor) Save() (req models.UpdateUserRequest, ok bool, err error) {
	name := strings.TrimSpace(e.buf.Name)
	username := strings.TrimSpace(e.buf.Username)
	avatar := strings.TrimSpace(e.buf.Avatar)

	if err := models.ValidateName(name); err != nil {
		return models.UpdateUserRequest{}, false, err
	}
	if err := models.ValidateUsername(username); err != nil {
		return models.UpdateUserRequest{}, false, err
	}

	if name == e.baseline.Name && username == e.baseline.Username && avatar == e.baseline.Avatar {
		e.state = StateViewing
		return models.UpdateUserRequest{}, false, nil
	}

	return models.UpdateUserRequest{Name: name, Username: username, Avatar: avatar}, true, nil
}

// Adopt installs the server's returned record as the new baseline and
// returns to viewing. Called after a successful update round trip.
func (e *Editor) Adopt(u models.User) {
	e.baseline = u
	e.buf = Buffer{}
	e.state = StateViewing
}
