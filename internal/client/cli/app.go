package cli

import (
	"bufio"
	"context"
	"database/sql"
	"os"

	"github.com/chatflow/chatflow-cli/internal/client/api"
	"github.com/chatflow/chatflow-cli/internal/client/config"
	"github.com/chatflow/chatflow-cli/internal/client/inbox"
	"github.com/chatflow/chatflow-cli/internal/client/models"
	"github.com/chatflow/chatflow-cli/internal/client/services"
	"github.com/chatflow/chatflow-cli/internal/client/session"
	"github.com/chatflow/chatflow-cli/internal/logging"
)

// App holds every screen's dependencies. Screens are methods on App and
// read user input through a.reader so tests can drive them with a
// scripted reader.
type App struct {
	config      *config.Config
	client      api.Client
	authService services.AuthService
	userService services.UserService
	identity    services.IdentityService
	inbox       *inbox.Inbox
	log         logging.Logger

	db          *sql.DB
	currentUser *models.User
	status      string
	reader      *bufio.Reader
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := session.Open(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing session database", "error", err)
		return nil, err
	}
	store := session.NewSQLiteStore(db)

	apiClient, err := api.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, log)
	if err != nil {
		return nil, err
	}

	return &App{
		config:      c,
		client:      apiClient,
		authService: services.NewAuthService(apiClient, store, log),
		userService: services.NewUserService(apiClient, store, log),
		identity:    services.NewIdentityService(apiClient, store, log),
		inbox:       inbox.NewSampleInbox(),
		log:         log,
		db:          db,
		reader:      bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if a.db != nil {
			_ = a.db.Close()
		}
	}()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.currentUser != nil
}
