package repository

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/moducation/library-api/library/internal/errs"
	"github.com/moducation/library-api/library/internal/model"
)

type CirculationRepository interface {
	Borrow(ctx context.Context, bookID, userID int64) (model.Withdrawal, error)
	Return(ctx context.Context, bookID, userID int64) (model.Return, error)
}

type circulationRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewCirculationRepository(db *sqlx.DB, log *zap.Logger) (*circulationRepository, error) {
	return &circulationRepository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

// Borrow takes one copy of the book and writes the withdrawal trail
// (activity row, then withdrawal row) in a single transaction. The
// decrement is guarded so availability never drops below zero even when
// two borrows race for the last copy.
func (r *circulationRepository) Borrow(ctx context.Context, bookID, userID int64) (model.Withdrawal, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Withdrawal{}, err
	}
	defer tx.Rollback() //nolint:errcheck

	const takeCopy = `
update books
    set availability = availability - 1
where id = $1 and availability > 0`
	res, err := tx.ExecContext(ctx, takeCopy, bookID)
	if err != nil {
		return model.Withdrawal{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Withdrawal{}, err
	}
	if n == 0 {
		return model.Withdrawal{}, errs.ErrNotAvailable
	}

	activity, err := newActivity(ctx, tx, model.ActivityWithdrawal, userID, bookID)
	if err != nil {
		return model.Withdrawal{}, err
	}

	expected := time.Now().UTC().Add(model.LoanPeriod)
	q, args, err := qb.Insert(withdrawalsTableName).
		Columns("activity_id", "user_id", "expected_return_date").
		Values(activity.ID, userID, expected.Format(time.DateOnly)).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Withdrawal{}, err
	}

	var w model.Withdrawal
	if err := tx.GetContext(ctx, &w, q, args...); err != nil {
		r.log.Error("Borrow withdrawal", zap.String("q", q), zap.Any("args", args))
		return model.Withdrawal{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Withdrawal{}, err
	}
	return w, nil
}

// Return frees the copy and closes the most recent withdrawal for the
// (user, book) pair. The whole sequence runs in one transaction, so a
// missing withdrawal leaves no stray activity row behind.
func (r *circulationRepository) Return(ctx context.Context, bookID, userID int64) (model.Return, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Return{}, err
	}
	defer tx.Rollback() //nolint:errcheck

	const freeCopy = `
update books
    set availability = availability + 1
where id = $1`
	res, err := tx.ExecContext(ctx, freeCopy, bookID)
	if err != nil {
		return model.Return{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Return{}, err
	}
	if n == 0 {
		return model.Return{}, errs.ErrNotFound
	}

	activity, err := newActivity(ctx, tx, model.ActivityReturn, userID, bookID)
	if err != nil {
		return model.Return{}, err
	}

	withdrawal, err := r.lastWithdrawal(ctx, tx, bookID, userID)
	if err != nil {
		return model.Return{}, err
	}

	now := time.Now().UTC()
	q, args, err := qb.Insert(returnsTableName).
		Columns("activity_id", "withdrawal_id", "book_id", "user_id", "return_date", "was_overdue").
		Values(activity.ID, withdrawal.ID, bookID, userID, now.Format(time.DateOnly), withdrawal.OverdueOnReturn(now)).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Return{}, err
	}

	var ret model.Return
	if err := tx.GetContext(ctx, &ret, q, args...); err != nil {
		r.log.Error("Return record", zap.String("q", q), zap.Any("args", args))
		return model.Return{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Return{}, err
	}
	return ret, nil
}

// lastWithdrawal finds the withdrawal behind the most recent
// WITHDRAWAL-type activity for the pair.
func (r *circulationRepository) lastWithdrawal(ctx context.Context, tx *sqlx.Tx, bookID, userID int64) (model.Withdrawal, error) {
	q, args, err := qb.Select("id", "type", "user_id", "book_id", "date").
		From(activityTableName).
		Where(sq.Eq{"type": model.ActivityWithdrawal, "user_id": userID, "book_id": bookID}).
		OrderBy("date desc", "id desc").
		Limit(1).
		ToSql()
	if err != nil {
		return model.Withdrawal{}, err
	}

	var activity model.ActivityHistory
	if err := tx.GetContext(ctx, &activity, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Withdrawal{}, errs.ErrNotFound
		}
		return model.Withdrawal{}, err
	}

	q, args, err = qb.Select("id", "activity_id", "user_id", "expected_return_date").
		From(withdrawalsTableName).
		Where(sq.Eq{"activity_id": activity.ID, "user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Withdrawal{}, err
	}

	var w model.Withdrawal
	if err := tx.GetContext(ctx, &w, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Withdrawal{}, errs.ErrNotFound
		}
		return model.Withdrawal{}, err
	}
	return w, nil
}

func newActivity(ctx context.Context, tx *sqlx.Tx, activityType int, userID, bookID int64) (model.ActivityHistory, error) {
	q, args, err := qb.Insert(activityTableName).
		Columns("type", "user_id", "book_id", "date").
		Values(activityType, userID, bookID, time.Now().UTC().Format(time.DateOnly)).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.ActivityHistory{}, err
	}

	var a model.ActivityHistory
	if err := tx.GetContext(ctx, &a, q, args...); err != nil {
		return model.ActivityHistory{}, err
	}
	return a, nil
}
