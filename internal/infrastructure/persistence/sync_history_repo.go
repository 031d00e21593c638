package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"notion-config-tool/internal/domain"
	"notion-config-tool/internal/domain/entity"
	"notion-config-tool/pkg/errcodes"
)

type SyncHistoryRepository struct {
	db *sqlx.DB
}

func NewSyncHistoryRepository(db *sqlx.DB) *SyncHistoryRepository {
	return &SyncHistoryRepository{db: db}
}

// withTx runs fn inside a transaction.
func (r *SyncHistoryRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return domain.WrapError(
				fmt.Errorf("%w; rollback: %v", err, rbErr),
				errcodes.InternalServerError,
				"transaction failed",
			)
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to commit")
	}

	return nil
}

// Create stores the record and returns it with its assigned id.
func (r *SyncHistoryRepository) Create(ctx context.Context, record entity.SyncRecord) (entity.SyncRecord, error) {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO sync_history (kind, target, path, added, changed, removed, triggered_by, created_at)
			VALUES (:kind, :target, :path, :added, :changed, :removed, :triggered_by, :created_at)
			RETURNING id`

		rows, err := tx.NamedQuery(query, fromSyncRecord(record))
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to insert sync record")
		}
		defer rows.Close()

		if rows.Next() {
			if err := rows.Scan(&record.ID); err != nil {
				return domain.WrapError(err, errcodes.InternalServerError, "failed to scan sync record id")
			}
		}

		return rows.Err()
	})
	if err != nil {
		return entity.SyncRecord{}, err
	}

	return record, nil
}

func (r *SyncHistoryRepository) GetByID(ctx context.Context, id int64) (entity.SyncRecord, error) {
	query := `SELECT * FROM sync_history WHERE id = $1`

	var schema syncRecordSchema
	if err := r.db.GetContext(ctx, &schema, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.SyncRecord{}, domain.NewError(errcodes.NotFound, "sync record not found")
		}

		return entity.SyncRecord{}, domain.WrapError(err, errcodes.InternalServerError, "failed to get sync record")
	}

	return schema.toDomain(), nil
}

// List returns recent records, newest first. An empty kind matches all.
func (r *SyncHistoryRepository) List(ctx context.Context, kind entity.SyncKind, limit, offset int) ([]entity.SyncRecord, error) {
	query := `
		SELECT * FROM sync_history
		WHERE ($1 = '' OR kind = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`

	var schemas []syncRecordSchema
	if err := r.db.SelectContext(ctx, &schemas, query, string(kind), limit, offset); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list sync records")
	}

	result := make([]entity.SyncRecord, 0, len(schemas))
	for _, s := range schemas {
		result = append(result, s.toDomain())
	}

	return result, nil
}
