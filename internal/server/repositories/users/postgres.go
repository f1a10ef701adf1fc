package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/dbx"
	"github.com/dmitrijs2005/authgate/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (email, password_hash, session_id, reset_token)
         VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.SessionID, user.ResetToken).
		Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getWhere(ctx, "email", email)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getWhere(ctx, "id", id)
}

// An empty token never matches: cleared tokens are stored as '' and would
// otherwise collide across every logged-out user.
func (r *PostgresRepository) GetBySessionID(ctx context.Context, sessionID string) (*models.User, error) {
	if sessionID == "" {
		return nil, common.ErrorNotFound
	}
	return r.getWhere(ctx, "session_id", sessionID)
}

func (r *PostgresRepository) GetByResetToken(ctx context.Context, resetToken string) (*models.User, error) {
	if resetToken == "" {
		return nil, common.ErrorNotFound
	}
	return r.getWhere(ctx, "reset_token", resetToken)
}

// getWhere runs a single-column equality lookup. The column name always
// comes from one of the typed GetBy* wrappers above, never from input.
func (r *PostgresRepository) getWhere(ctx context.Context, column string, value string) (*models.User, error) {
	query := fmt.Sprintf(
		`SELECT id, email, password_hash, session_id, reset_token, created_at
		 FROM users
		 WHERE %s = $1
		 `, column)

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, value).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.SessionID, &user.ResetToken, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, ch Changes) error {

	set := make([]string, 0, 3)
	args := make([]any, 0, 4)

	add := func(column string, v *string) {
		if v == nil {
			return
		}
		args = append(args, *v)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	add("password_hash", ch.PasswordHash)
	add("session_id", ch.SessionID)
	add("reset_token", ch.ResetToken)

	if len(set) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d`, strings.Join(set, ", "), len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}
