package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/chatflow/chatflow-cli/internal/client/api"
	"github.com/chatflow/chatflow-cli/internal/client/config"
	"github.com/chatflow/chatflow-cli/internal/client/inbox"
	"github.com/chatflow/chatflow-cli/internal/client/models"
	"github.com/chatflow/chatflow-cli/internal/client/services"
	"github.com/chatflow/chatflow-cli/internal/logging"
)

type fakeAuthService struct {
	loginUser    *models.User
	loginMsg     string
	loginErr     error
	lastEmail    string
	lastPassword string

	signupMsg   string
	signupErr   error
	signupCalls int
	lastSignup  models.SignupRequest

	verifyUser *models.User
	verifyErr  error

	logoutErr    error
	logoutCalls  int
	restoreErr   error
	restoreCalls int
}

func (f *fakeAuthService) Login(_ context.Context, email, password string) (*models.User, string, error) {
	f.lastEmail, f.lastPassword = email, password
	return f.loginUser, f.loginMsg, f.loginErr
}

func (f *fakeAuthService) Signup(_ context.Context, req models.SignupRequest) (string, error) {
	f.signupCalls++
	f.lastSignup = req
	return f.signupMsg, f.signupErr
}

func (f *fakeAuthService) Verify(context.Context) (*models.User, error) {
	return f.verifyUser, f.verifyErr
}

func (f *fakeAuthService) Logout(context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakeAuthService) RestoreSession(context.Context) error {
	f.restoreCalls++
	return f.restoreErr
}

type fakeUserService struct {
	refreshRet *models.User
	refreshErr error

	updateRet  *models.User
	updateErr  error
	lastUpdate models.UpdateUserRequest
	updates    int
}

func (f *fakeUserService) Refresh(context.Context) (*models.User, error) {
	return f.refreshRet, f.refreshErr
}

func (f *fakeUserService) Update(_ context.Context, req models.UpdateUserRequest) (*models.User, error) {
	f.updates++
	f.lastUpdate = req
	return f.updateRet, f.updateErr
}

type fakeIdentityService struct {
	id    services.Identity
	ok    bool
	calls int
}

func (f *fakeIdentityService) Resolve(context.Context) (services.Identity, bool) {
	f.calls++
	return f.id, f.ok
}

// fakeAPI embeds api.Client so only the methods a test exercises need
// real implementations; anything else panics loudly.
type fakeAPI struct {
	api.Client

	searchRet   []models.User
	searchErr   error
	searchCalls int
	lastQuery   string
}

func (f *fakeAPI) SearchUsers(_ context.Context, query string) ([]models.User, error) {
	f.searchCalls++
	f.lastQuery = query
	return f.searchRet, f.searchErr
}

// captureOutput replaces printlnFn and returns the collected lines.
func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(args ...any) (int, error) {
		lines = append(lines, strings.TrimRight(fmt.Sprintln(args...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer) (string, error) { return pw, nil }
	t.Cleanup(func() { getPassword = orig })
}

// newTestApp builds an App over fakes, with user input scripted line by
// line. The debounce window is long so only explicit flushes promote.
func newTestApp(script string) (*App, *fakeAuthService, *fakeUserService, *fakeAPI) {
	auth := &fakeAuthService{}
	users := &fakeUserService{}
	client := &fakeAPI{}
	return &App{
		config: &config.Config{
			APIBaseURL:     "http://localhost:3046",
			RequestTimeout: time.Second,
			SearchDebounce: time.Minute,
		},
		client:      client,
		authService: auth,
		userService: users,
		identity:    &fakeIdentityService{},
		inbox:       inbox.NewSampleInbox(),
		log:         logging.NewTextLogger(io.Discard, 0),
		reader:      bufio.NewReader(strings.NewReader(script)),
	}, auth, users, client
}

func outputContains(lines []string, want string) bool {
	for _, l := range lines {
		if strings.Contains(l, want) {
			return true
		}
	}
	return false
}

func TestRefreshStatus(t *testing.T) {
	a, _, _, _ := newTestApp("")
	ctx := context.Background()

	a.refreshStatus(ctx)
	if got := a.getStatus(); got != "" {
		t.Fatalf("logged-out status should be empty, got %q", got)
	}

	a.currentUser = &models.User{ID: "u1"}
	a.refreshStatus(ctx)
	if got := a.getStatus(); got != "([U] User <user@example.com>)" {
		t.Fatalf("placeholder identity expected, got %q", got)
	}

	a.identity = &fakeIdentityService{id: services.Identity{Name: "Jo Doe", Email: "jo@example.com"}, ok: true}
	a.refreshStatus(ctx)
	if got := a.getStatus(); got != "([J] Jo Doe <jo@example.com>)" {
		t.Fatalf("resolved identity expected, got %q", got)
	}
}

func TestGetStatus_CachedBetweenPrompts(t *testing.T) {
	a, _, _, _ := newTestApp("")
	fid := &fakeIdentityService{id: services.Identity{Name: "Jo Doe", Email: "jo@example.com"}, ok: true}
	a.identity = fid
	a.currentUser = &models.User{ID: "u1"}

	a.refreshStatus(context.Background())
	for i := 0; i < 5; i++ {
		if got := a.getStatus(); got != "([J] Jo Doe <jo@example.com>)" {
			t.Fatalf("status mismatch: %q", got)
		}
	}
	if fid.calls != 1 {
		t.Fatalf("identity resolved per prompt, want once: %d calls", fid.calls)
	}
}
