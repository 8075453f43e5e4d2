// Package repository holds the sqlx data access layer. All queries go
// through squirrel with dollar placeholders; sql.ErrNoRows is translated
// to the errs sentinels so callers never see driver errors.
package repository

import (
	sq "github.com/Masterminds/squirrel"
)

const (
	usersTableName       = `users`
	booksTableName       = `books`
	activityTableName    = `activity_history`
	withdrawalsTableName = `withdrawals`
	returnsTableName     = `returns`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
