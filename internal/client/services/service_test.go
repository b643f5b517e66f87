package services

import (
	"context"
	"database/sql"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/chatflow/chatflow-cli/internal/client/models"
	"github.com/chatflow/chatflow-cli/internal/client/session"
	"github.com/chatflow/chatflow-cli/internal/logging"
)

// ---- helpers ----

func setupStore(t *testing.T) *session.SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", "file:servicestest?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE session (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return session.NewSQLiteStore(db)
}

func testLogger() logging.Logger {
	return logging.NewTextLogger(io.Discard, 0)
}

// ---- fake client ----

// fakeClient implements api.Client for service unit tests.
type fakeClient struct {
	LoginUser  *models.User
	LoginMsg   string
	LoginErr   error
	LoginCalls int

	SignupMsg   string
	SignupErr   error
	SignupCalls int

	VerifyUser *models.User
	VerifyErr  error

	GetUserRet   *models.User
	GetUserErr   error
	GetUserCalls int
	// GetUserHook runs before GetUser returns, letting tests interleave
	// a concurrent store write with an in-flight fetch.
	GetUserHook func()

	UpdateRet   *models.User
	UpdateErr   error
	UpdateCalls int

	SearchRet []models.User
	SearchErr error

	LogoutErr   error
	LogoutCalls int

	cookie string

	LastLoginEmail   string
	LastGetUserEmail string
	LastUpdateEmail  string
	LastUpdateReq    models.UpdateUserRequest
	LastSearchQuery  string
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	f.LoginCalls++
	f.LastLoginEmail = email
	return f.LoginUser, f.LoginMsg, f.LoginErr
}

func (f *fakeClient) Signup(ctx context.Context, req models.SignupRequest) (string, error) {
	f.SignupCalls++
	return f.SignupMsg, f.SignupErr
}

func (f *fakeClient) Verify(ctx context.Context) (*models.User, error) {
	return f.VerifyUser, f.VerifyErr
}

func (f *fakeClient) GetUser(ctx context.Context, email string) (*models.User, error) {
	f.GetUserCalls++
	f.LastGetUserEmail = email
	if f.GetUserHook != nil {
		f.GetUserHook()
	}
	return f.GetUserRet, f.GetUserErr
}

func (f *fakeClient) UpdateUser(ctx context.Context, email string, req models.UpdateUserRequest) (*models.User, error) {
	f.UpdateCalls++
	f.LastUpdateEmail = email
	f.LastUpdateReq = req
	return f.UpdateRet, f.UpdateErr
}

func (f *fakeClient) SearchUsers(ctx context.Context, query string) ([]models.User, error) {
	f.LastSearchQuery = query
	return f.SearchRet, f.SearchErr
}

func (f *fakeClient) Logout(ctx context.Context) error {
	f.LogoutCalls++
	return f.LogoutErr
}

func (f *fakeClient) SessionCookie() string         { return f.cookie }
func (f *fakeClient) SetSessionCookie(value string) { f.cookie = value }
func (f *fakeClient) ClearSessionCookie()           { f.cookie = "" }
