package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/smsflt/sms-filter/internal/model"
)

// MessagesRepository defines persistence for the messages table.
type MessagesRepository interface {
	Insert(ctx context.Context, m model.Message) error
	List(ctx context.Context) ([]model.Message, error)
	GetByID(ctx context.Context, id string) (*model.Message, error)
	// Update applies only the fields provided. It reports whether at least
	// one field changed an existing row.
	Update(ctx context.Context, id string, status *model.Status, isVerified *bool) (bool, error)
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, id string) (bool, error)
}

type MessagesRepositoryImpl struct {
	db *sqlx.DB
}

var _ MessagesRepository = (*MessagesRepositoryImpl)(nil)

func NewMessagesRepository(db *sqlx.DB) *MessagesRepositoryImpl {
	return &MessagesRepositoryImpl{db: db}
}

func (r *MessagesRepositoryImpl) Insert(ctx context.Context, m model.Message) error {
	const q = `
		INSERT INTO messages
		    (id, sender, content, timestamp, status, is_verified)
		VALUES
		    (?,  ?,      ?,       ?,         ?,      ?)
	`
	_, err := r.db.ExecContext(ctx, q,
		m.ID, m.Sender, m.Content, m.Timestamp, m.Status.String(), m.IsVerified,
	)
	return err
}

func (r *MessagesRepositoryImpl) List(ctx context.Context) ([]model.Message, error) {
	var msgs []model.Message
	err := r.db.SelectContext(ctx, &msgs, `
		SELECT id, sender, content, timestamp, status, is_verified
		  FROM messages
	`)
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *MessagesRepositoryImpl) GetByID(ctx context.Context, id string) (*model.Message, error) {
	var m model.Message
	err := r.db.GetContext(ctx, &m, `
		SELECT id, sender, content, timestamp, status, is_verified
		  FROM messages
		 WHERE id = ? LIMIT 1
	`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Update issues one statement per provided field inside a transaction so a
// concurrent update cannot interleave between them.
func (r *MessagesRepositoryImpl) Update(ctx context.Context, id string, status *model.Status, isVerified *bool) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	updated := false

	if status != nil {
		res, err := tx.ExecContext(ctx, `UPDATE messages SET status = ? WHERE id = ?`, status.String(), id)
		if err != nil {
			return false, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return false, err
		}
		updated = updated || n > 0
	}

	if isVerified != nil {
		res, err := tx.ExecContext(ctx, `UPDATE messages SET is_verified = ? WHERE id = ?`, *isVerified, id)
		if err != nil {
			return false, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return false, err
		}
		updated = updated || n > 0
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return updated, nil
}

func (r *MessagesRepositoryImpl) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
