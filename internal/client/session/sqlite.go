package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/chatflow/chatflow-cli/internal/client/models"
	"github.com/chatflow/chatflow-cli/internal/common"
)

// Well-known keys in the session table.
const (
	keyUser    = "user"
	keyVersion = "user_version"
	keyCookie  = "cookie"
)

// SQLiteStore persists the session snapshot in a small key/value table so
// it survives restarts. No validation is performed on the stored shape;
// whatever the last writer put in is what readers get back.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Read(ctx context.Context) (*models.User, error) {
	data, err := get(ctx, s.db, keyUser)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, common.ErrNoSession
	}
	var u models.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("corrupt session record: %w", err)
	}
	return &u, nil
}

func (s *SQLiteStore) Write(ctx context.Context, u *models.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		version, err := getVersion(ctx, tx)
		if err != nil {
			return err
		}
		if err := set(ctx, tx, keyUser, data); err != nil {
			return err
		}
		return setVersion(ctx, tx, version+1)
	})
}

func (s *SQLiteStore) Version(ctx context.Context) (int64, error) {
	return getVersion(ctx, s.db)
}

func (s *SQLiteStore) CommitFrom(ctx context.Context, base int64, u *models.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		version, err := getVersion(ctx, tx)
		if err != nil {
			return err
		}
		if version != base {
			return fmt.Errorf("%w: store at version %d, caller began at %d", common.ErrStaleWrite, version, base)
		}
		if err := set(ctx, tx, keyUser, data); err != nil {
			return err
		}
		return setVersion(ctx, tx, version+1)
	})
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session`)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Cookie(ctx context.Context) (string, error) {
	data, err := get(ctx, s.db, keyCookie)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *SQLiteStore) SetCookie(ctx context.Context, value string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		return set(ctx, tx, keyCookie, []byte(value))
	})
}

func (s *SQLiteStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()
	err = fn(tx)
	return err
}

// querier is the subset of database/sql used below; both *sql.DB and
// *sql.Tx satisfy it.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func get(ctx context.Context, q querier, key string) ([]byte, error) {
	var value []byte
	err := q.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session[%s]: %w", key, err)
	}
	return value, nil
}

func set(ctx context.Context, q querier, key string, value []byte) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", key, err)
	}
	return nil
}

func getVersion(ctx context.Context, q querier) (int64, error) {
	data, err := get(ctx, q, keyVersion)
	if err != nil {
		return 0, err
	}
	if data == nil {
		return 0, nil
	}
	version, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt session version: %w", err)
	}
	return version, nil
}

func setVersion(ctx context.Context, q querier, version int64) error {
	return set(ctx, q, keyVersion, []byte(strconv.FormatInt(version, 10)))
}
