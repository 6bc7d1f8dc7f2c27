package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/rcliao/memo/internal/apperr"
	"github.com/rcliao/memo/internal/model"
)

const schema = `
	CREATE TABLE IF NOT EXISTS memos (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		content    TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`

// MemoRepository maps memos to rows in the memos table.
type MemoRepository struct {
	client Executor
	logger *zap.Logger
}

// NewMemoRepository returns a repository over client. A nil logger disables logging.
func NewMemoRepository(client Executor, logger *zap.Logger) *MemoRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemoRepository{client: client, logger: logger}
}

func (r *MemoRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.client.Exec(ctx, schema); err != nil {
		return apperr.Storage("create memos table", err)
	}
	return nil
}

func (r *MemoRepository) Add(ctx context.Context, memo model.Memo) (int64, error) {
	res, err := r.client.Exec(ctx,
		`INSERT INTO memos (content, created_at) VALUES (?, ?)`,
		memo.Content(), memo.CreatedAt().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, apperr.Storage("add memo", err)
	}
	r.logger.Debug("memo inserted", zap.Int64("id", res.LastInsertID))
	return res.LastInsertID, nil
}

func (r *MemoRepository) GetAll(ctx context.Context) ([]model.Memo, error) {
	rows, err := r.client.QueryAll(ctx,
		`SELECT id, content, created_at FROM memos ORDER BY id DESC`)
	if err != nil {
		return nil, apperr.Storage("get all memos", err)
	}

	memos := make([]model.Memo, 0, len(rows))
	for _, row := range rows {
		m, err := scanMemo(row)
		if err != nil {
			return nil, apperr.Storage("get all memos", err)
		}
		memos = append(memos, m)
	}
	r.logger.Debug("memos fetched", zap.Int("count", len(memos)))
	return memos, nil
}

func (r *MemoRepository) Delete(ctx context.Context, memo model.Memo) error {
	id, ok := memo.ID()
	if !ok {
		return apperr.Validation("id", "memo has not been stored")
	}
	res, err := r.client.Exec(ctx, `DELETE FROM memos WHERE id = ?`, id)
	if err != nil {
		return apperr.Storage("delete memo", err)
	}
	r.logger.Debug("memo deleted", zap.Int64("id", id), zap.Int64("rows", res.RowsAffected))
	return nil
}

func (r *MemoRepository) Count(ctx context.Context) (int, error) {
	rows, err := r.client.QueryAll(ctx, `SELECT COUNT(*) AS n FROM memos`)
	if err != nil {
		return 0, apperr.Storage("count memos", err)
	}
	if len(rows) != 1 {
		return 0, apperr.Storage("count memos", fmt.Errorf("expected 1 row, got %d", len(rows)))
	}
	n, ok := rows[0]["n"].(int64)
	if !ok {
		return 0, apperr.Storage("count memos", fmt.Errorf("unexpected count type %T", rows[0]["n"]))
	}
	return int(n), nil
}

func scanMemo(row Row) (model.Memo, error) {
	id, ok := row["id"].(int64)
	if !ok {
		return model.Memo{}, apperr.Validation("id", fmt.Sprintf("unexpected type %T", row["id"]))
	}

	var content string
	switch v := row["content"].(type) {
	case string:
		content = v
	case []byte:
		content = string(v)
	default:
		return model.Memo{}, apperr.Validation("content", fmt.Sprintf("unexpected type %T", v))
	}

	createdAt, err := parseCreatedAt(row["created_at"])
	if err != nil {
		return model.Memo{}, err
	}

	return model.New(content, model.WithID(id), model.WithCreatedAt(createdAt))
}

// parseCreatedAt accepts RFC 3339 text or Unix milliseconds. The column has
// TEXT affinity, so integers written by older versions come back as strings.
func parseCreatedAt(v any) (time.Time, error) {
	switch t := v.(type) {
	case string:
		if ms, err := strconv.ParseInt(t, 10, 64); err == nil {
			return time.UnixMilli(ms).UTC(), nil
		}
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return time.Time{}, &apperr.Error{Kind: apperr.KindValidation, Field: "created_at", Message: "must be a valid time", Err: err}
		}
		return parsed, nil
	case int64:
		return time.UnixMilli(t).UTC(), nil
	case time.Time:
		return t, nil
	}
	return time.Time{}, apperr.Validation("created_at", fmt.Sprintf("unexpected type %T", v))
}
