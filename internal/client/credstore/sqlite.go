package credstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"

	"github.com/greensnap-app/greensnap-cli/internal/client/migrations"
	"github.com/greensnap-app/greensnap-cli/internal/client/models"
	"github.com/greensnap-app/greensnap-cli/internal/client/repositories/credentials"
	"github.com/greensnap-app/greensnap-cli/internal/common"
	"github.com/greensnap-app/greensnap-cli/internal/cryptox"
	"github.com/greensnap-app/greensnap-cli/internal/dbx"
	"github.com/greensnap-app/greensnap-cli/internal/filex"
	"github.com/greensnap-app/greensnap-cli/internal/logging"

	_ "modernc.org/sqlite"
)

const (
	keyToken = "token"
	keyUser  = "user"

	dbFileName     = "greensnap.db"
	secretFileName = "install.secret"

	saltSize   = 16
	secretSize = 32
)

// SQLiteStore is the production Store: sealed blobs in the client database.
type SQLiteStore struct {
	db     *sql.DB
	key    []byte
	logger logging.Logger
}

// Open prepares the data directory, loads or creates the install secret,
// opens the database, and applies pending migrations.
func Open(ctx context.Context, dir string, logger logging.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = logging.Nop()
	}

	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}

	key, err := loadOrCreateKey(filepath.Join(abs, secretFileName))
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", filepath.Join(abs, dbFileName))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &SQLiteStore{db: db, key: key, logger: logger}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// loadOrCreateKey reads the salt+secret file next to the database, creating
// it on first run, and derives the sealing key from it.
func loadOrCreateKey(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	switch {
	case err == nil && len(data) == saltSize+secretSize:
		// ok
	case err == nil || errors.Is(err, fs.ErrNotExist):
		data = common.GenerateRandByteArray(saltSize + secretSize)
		if err := os.WriteFile(path, data, 0o600); err != nil {
			return nil, fmt.Errorf("write install secret: %w", err)
		}
	default:
		return nil, fmt.Errorf("read install secret: %w", err)
	}
	return cryptox.DeriveKey(data[saltSize:], data[:saltSize]), nil
}

func (s *SQLiteStore) Save(ctx context.Context, tokenString string, user *models.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	sealedToken, err := cryptox.Seal([]byte(tokenString), s.key)
	if err != nil {
		return fmt.Errorf("seal token: %w", err)
	}
	sealedUser, err := cryptox.Seal(userJSON, s.key)
	if err != nil {
		return fmt.Errorf("seal user: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := credentials.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyToken, sealedToken); err != nil {
			return err
		}
		return repo.Set(ctx, keyUser, sealedUser)
	})
}

func (s *SQLiteStore) Load(ctx context.Context) (string, *models.User, error) {
	repo := credentials.NewSQLiteRepository(s.db)

	sealedToken, err := repo.Get(ctx, keyToken)
	if err != nil {
		return "", nil, err
	}
	sealedUser, err := repo.Get(ctx, keyUser)
	if err != nil {
		return "", nil, err
	}
	if sealedToken == nil || sealedUser == nil {
		return "", nil, nil
	}

	tokenBytes, err := cryptox.Open(sealedToken, s.key)
	if err != nil {
		s.logger.Warn(ctx, "stored token unreadable, treating as no session", "error", err)
		return "", nil, nil
	}
	userJSON, err := cryptox.Open(sealedUser, s.key)
	if err != nil {
		s.logger.Warn(ctx, "stored user unreadable, treating as no session", "error", err)
		return "", nil, nil
	}

	var user models.User
	if err := json.Unmarshal(userJSON, &user); err != nil {
		s.logger.Warn(ctx, "stored user malformed, treating as no session", "error", err)
		return "", nil, nil
	}

	return string(tokenBytes), &user, nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := credentials.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, keyToken); err != nil {
			return err
		}
		return repo.Delete(ctx, keyUser)
	})
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ Store = (*SQLiteStore)(nil)
