package sessions

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/avdeevlv/TSP-WizardService/internal/domain"
	"github.com/avdeevlv/TSP-WizardService/pkg/psqlbuilder"
)

// Repository PostgreSQL-хранилище сессий мастера
// Состояние сессии хранится одной JSONB-колонкой: сессия короткоживущая,
// реляционная модель ей не нужна, durable остается только запись бронирования
// на стороне портала
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр PostgreSQL-хранилища сессий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую сессию
func (r *Repository) Create(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("%w: Create - marshal session: %v", ErrSerialize, err)
	}

	query, args, err := psqlbuilder.Insert("wizard_sessions").
		Columns("id", "data", "expires_at", "created_at", "updated_at").
		Values(session.ID, data, session.ExpiresAt, session.CreatedAt, session.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Get читает сессию по ID
// Истекшая сессия считается отсутствующей
func (r *Repository) Get(ctx context.Context, id string) (*domain.Session, error) {
	query, args, err := psqlbuilder.Select("data").
		From("wizard_sessions").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Gt{"expires_at": time.Now()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var data []byte
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan session: %v", ErrScanRow, err)
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("%w: Get - unmarshal session: %v", ErrSerialize, err)
	}

	return &session, nil
}

// Update перезаписывает состояние сессии
func (r *Repository) Update(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("%w: Update - marshal session: %v", ErrSerialize, err)
	}

	query, args, err := psqlbuilder.Update("wizard_sessions").
		Set("data", data).
		Set("expires_at", session.ExpiresAt).
		Set("updated_at", session.UpdatedAt).
		Where(squirrel.Eq{"id": session.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// Delete удаляет сессию
func (r *Repository) Delete(ctx context.Context, id string) error {
	query, args, err := psqlbuilder.Delete("wizard_sessions").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// DeleteExpired удаляет истекшие сессии, возвращает количество удаленных
func (r *Repository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query, args, err := psqlbuilder.Delete("wizard_sessions").
		Where(squirrel.LtOrEq{"expires_at": now}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - rows affected: %v", ErrExecQuery, err)
	}

	return affected, nil
}
