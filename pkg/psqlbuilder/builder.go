// Package psqlbuilder provides squirrel builders preconfigured for Postgres
// ($1-style placeholders). Repositories use it instead of raw squirrel so the
// placeholder format is set in exactly one place.
package psqlbuilder

import "github.com/Masterminds/squirrel"

var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Select starts a SELECT builder.
func Select(columns ...string) squirrel.SelectBuilder {
	return builder.Select(columns...)
}

// Insert starts an INSERT builder.
func Insert(table string) squirrel.InsertBuilder {
	return builder.Insert(table)
}

// Update starts an UPDATE builder.
func Update(table string) squirrel.UpdateBuilder {
	return builder.Update(table)
}

// Delete starts a DELETE builder.
func Delete(table string) squirrel.DeleteBuilder {
	return builder.Delete(table)
}
