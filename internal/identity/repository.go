package identity

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sarifworks/augments/pkg/repository"
)

const userColumns = "id, user_name, password_hash, created_at"

type repo struct {
	db     *sql.DB
	tokens *Tokens
	logger *slog.Logger
}

// New creates an identity repository implementing the System interface.
func New(db *sql.DB, tokens *Tokens, logger *slog.Logger) System {
	return &repo{
		db:     db,
		tokens: tokens,
		logger: logger.With("system", "identity"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

// Register validates credentials, hashes the password, and persists a new
// user. A taken username reports ErrDuplicateUserName.
func (r *repo) Register(ctx context.Context, creds Credentials) (*User, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	insertQ := `
		INSERT INTO users(id, user_name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	args := []any{uuid.New(), creds.UserName, string(hash)}

	user, err := repository.QueryOne(ctx, r.db, insertQ, args, scanUser)
	if err != nil {
		return nil, repository.MapError(err, ErrUserNotFound, ErrDuplicateUserName)
	}

	r.logger.Info("user registered", "id", user.ID, "user_name", user.UserName)
	return &user, nil
}

// Login verifies credentials and issues a signed bearer token. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (r *repo) Login(ctx context.Context, creds Credentials) (string, error) {
	user, err := r.Find(ctx, creds.UserName)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(user.PasswordHash), []byte(creds.Password),
	); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := r.tokens.Issue(*user, time.Now().UTC())
	if err != nil {
		return "", err
	}

	r.logger.Info("user logged in", "id", user.ID, "user_name", user.UserName)
	return token, nil
}

func (r *repo) Find(ctx context.Context, userName string) (*User, error) {
	findQ := "SELECT " + userColumns + " FROM users WHERE user_name = $1"

	user, err := repository.QueryOne(ctx, r.db, findQ, []any{userName}, scanUser)
	if err != nil {
		return nil, repository.MapError(err, ErrUserNotFound, ErrDuplicateUserName)
	}
	return &user, nil
}

func scanUser(s repository.Scanner) (User, error) {
	var user User
	err := s.Scan(&user.ID, &user.UserName, &user.PasswordHash, &user.CreatedAt)
	return user, err
}
