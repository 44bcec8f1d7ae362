// Package fixtures provides shared test helpers and fixture data for the
// book store engine tests.
package fixtures

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"

	"github.com/libradb/book-catalog-go/bookcatalog"
	"github.com/libradb/book-catalog-go/bookcatalog/postgresengine"
)

// FixtureDune returns the canonical example book.
func FixtureDune() bookcatalog.Book {
	return bookcatalog.Book{
		Title:  "Dune",
		Author: "Frank Herbert",
	}
}

// FixtureBookWithUniqueAuthor returns a book whose author embeds a fresh
// UUID, so fixture rows from concurrent test runs never collide.
func FixtureBookWithUniqueAuthor(t testing.TB) bookcatalog.Book {
	authorID, err := uuid.NewV7()
	assert.NoError(t, err, "error in arranging test data")

	return bookcatalog.Book{
		Title:  "The Left Hand of Darkness",
		Author: "Ursula K. Le Guin (" + authorID.String() + ")",
	}
}

// TitleOfLength returns a deterministic title of exactly n characters.
func TitleOfLength(n int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz"

	repeated := strings.Repeat(alphabet, n/len(alphabet)+1)

	return repeated[:n]
}

// CreateBooksTable creates the books table from the schema descriptor if it
// does not exist yet.
func CreateBooksTable(t testing.TB, ctx context.Context, connPool *pgxpool.Pool) {
	schema := bookcatalog.BooksTableSchema()

	columns := make([]string, 0, len(schema.Columns))
	for _, column := range schema.Columns {
		columns = append(columns, postgresColumnDDL(column))
	}

	ddl := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (%s)",
		schema.Name, strings.Join(columns, ", "),
	)

	_, err := connPool.Exec(ctx, ddl)
	assert.NoError(t, err, "error creating books table in test setup")
}

// CleanUpBooks removes all rows from the books table without resetting the
// id sequence, so ids stay unique across the whole test run.
func CleanUpBooks(t testing.TB, ctx context.Context, connPool *pgxpool.Pool) {
	_, err := connPool.Exec(ctx, "TRUNCATE TABLE "+bookcatalog.DefaultTableName)
	assert.NoError(t, err, "error cleaning up books in test setup")
}

// GivenBookWasInserted inserts the supplied book and returns the assigned id.
func GivenBookWasInserted(
	t testing.TB,
	ctx context.Context,
	bs postgresengine.BookStore,
	book bookcatalog.Book,
) bookcatalog.BookIDInt64 {

	bookID, err := bs.Insert(ctx, book)
	assert.NoError(t, err, "error in arranging test data")

	return bookID
}

func postgresColumnDDL(column bookcatalog.ColumnSchema) string {
	switch {
	case column.PrimaryKey && column.AutoIncrement:
		return column.Name + " integer GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY"
	case column.PrimaryKey:
		return column.Name + " integer PRIMARY KEY"
	case column.MaxLength > 0:
		return fmt.Sprintf("%s varchar(%d)", column.Name, column.MaxLength)
	default:
		return column.Name + " text"
	}
}
