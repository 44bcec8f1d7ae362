// Package sqliteengine provides an embedded SQLite-backed store for Book records.
//
// It is the self-contained counterpart to postgresengine: it opens a database
// file through the pure-Go modernc.org/sqlite driver, bootstraps the books
// table from the schema descriptor in the core package, and implements the
// same row lifecycle with plain database/sql calls.
//
// SQLite does not enforce varchar length caps; a title longer than
// bookcatalog.TitleMaxLength is stored as-is. Callers needing strict
// enforcement should use the PostgreSQL engine.
package sqliteengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // driver import

	"github.com/libradb/book-catalog-go/bookcatalog"
)

// BookStore represents a storage mechanism for Book records in an embedded SQLite database.
type BookStore struct {
	db        *sql.DB
	tableName string
}

// Open opens (or creates) the SQLite database at the given path and prepares it
// for storing books: parent directory creation, connection PRAGMAs, and the
// books table bootstrapped from bookcatalog.BooksTableSchema.
func Open(path string) (*BookStore, error) {
	if path == "" {
		return nil, errors.New("sqlite database path must not be empty")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory failed: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database failed: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	schema := bookcatalog.BooksTableSchema()

	if err := createTable(db, schema); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &BookStore{db: db, tableName: schema.Name}, nil
}

// Close closes the underlying database connection.
func (s *BookStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	return s.db.Close()
}

// Insert appends a new row to the books table and returns the id assigned by the database.
func (s *BookStore) Insert(ctx context.Context, book bookcatalog.Book) (bookcatalog.BookIDInt64, error) {
	query := fmt.Sprintf(
		"INSERT INTO %s (%s, %s) VALUES (?, ?)",
		s.tableName, bookcatalog.ColumnTitle, bookcatalog.ColumnAuthor,
	)

	result, err := s.db.ExecContext(ctx, query, book.Title, book.Author)
	if err != nil {
		return 0, errors.Join(bookcatalog.ErrInsertingBookFailed, err)
	}

	bookID, err := result.LastInsertId()
	if err != nil {
		return 0, errors.Join(bookcatalog.ErrInsertingBookFailed, err)
	}

	return bookID, nil
}

// GetByID retrieves the Book row with the given id.
// Returns bookcatalog.ErrBookNotFound if no such row exists.
func (s *BookStore) GetByID(ctx context.Context, bookID bookcatalog.BookIDInt64) (bookcatalog.Book, error) {
	query := fmt.Sprintf(
		"SELECT %s, %s, %s FROM %s WHERE %s = ?",
		bookcatalog.ColumnID, bookcatalog.ColumnTitle, bookcatalog.ColumnAuthor,
		s.tableName, bookcatalog.ColumnID,
	)

	var book bookcatalog.Book

	err := s.db.QueryRowContext(ctx, query, bookID).Scan(&book.ID, &book.Title, &book.Author)
	if errors.Is(err, sql.ErrNoRows) {
		return bookcatalog.Book{}, bookcatalog.ErrBookNotFound
	}
	if err != nil {
		return bookcatalog.Book{}, errors.Join(bookcatalog.ErrQueryingBooksFailed, err)
	}

	return book, nil
}

// Update overwrites title and author of the row identified by the id of the supplied Book.
// Returns bookcatalog.ErrBookNotStored if the Book has no assigned id, and
// bookcatalog.ErrBookNotFound if no row exists for it.
func (s *BookStore) Update(ctx context.Context, book bookcatalog.Book) error {
	if book.ID == 0 {
		return bookcatalog.ErrBookNotStored
	}

	query := fmt.Sprintf(
		"UPDATE %s SET %s = ?, %s = ? WHERE %s = ?",
		s.tableName, bookcatalog.ColumnTitle, bookcatalog.ColumnAuthor, bookcatalog.ColumnID,
	)

	result, err := s.db.ExecContext(ctx, query, book.Title, book.Author, book.ID)
	if err != nil {
		return errors.Join(bookcatalog.ErrUpdatingBookFailed, err)
	}

	return s.requireAffectedRow(result)
}

// Delete removes the Book row with the given id.
// Returns bookcatalog.ErrBookNotFound if no such row exists.
func (s *BookStore) Delete(ctx context.Context, bookID bookcatalog.BookIDInt64) error {
	query := fmt.Sprintf(
		"DELETE FROM %s WHERE %s = ?",
		s.tableName, bookcatalog.ColumnID,
	)

	result, err := s.db.ExecContext(ctx, query, bookID)
	if err != nil {
		return errors.Join(bookcatalog.ErrDeletingBookFailed, err)
	}

	return s.requireAffectedRow(result)
}

// All retrieves every Book row, ordered by id ascending.
func (s *BookStore) All(ctx context.Context) (bookcatalog.Books, error) {
	query := fmt.Sprintf(
		"SELECT %s, %s, %s FROM %s ORDER BY %s ASC",
		bookcatalog.ColumnID, bookcatalog.ColumnTitle, bookcatalog.ColumnAuthor,
		s.tableName, bookcatalog.ColumnID,
	)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Join(bookcatalog.ErrQueryingBooksFailed, err)
	}
	defer func() { _ = rows.Close() }()

	books := make(bookcatalog.Books, 0)

	for rows.Next() {
		var book bookcatalog.Book
		if scanErr := rows.Scan(&book.ID, &book.Title, &book.Author); scanErr != nil {
			return nil, errors.Join(bookcatalog.ErrScanningDBRowFailed, scanErr)
		}

		books = append(books, book)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, errors.Join(bookcatalog.ErrQueryingBooksFailed, rowsErr)
	}

	return books, nil
}

func (s *BookStore) requireAffectedRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.Join(bookcatalog.ErrGettingRowsAffectedFailed, err)
	}

	if rowsAffected == 0 {
		return bookcatalog.ErrBookNotFound
	}

	return nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	}

	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("applying pragma failed: %w", err)
		}
	}

	return nil
}

func createTable(db *sql.DB, schema bookcatalog.TableSchema) error {
	columns := make([]string, 0, len(schema.Columns))

	for _, column := range schema.Columns {
		columns = append(columns, columnDDL(column))
	}

	ddl := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n\t%s\n);",
		schema.Name, strings.Join(columns, ",\n\t"),
	)

	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("creating table %s failed: %w", schema.Name, err)
	}

	return nil
}

// columnDDL translates a storage-agnostic column description into a SQLite
// column definition. AUTOINCREMENT keeps ids unique across deletes, rowids
// are never reused.
func columnDDL(column bookcatalog.ColumnSchema) string {
	var sqlType string

	switch column.Type {
	case bookcatalog.ColumnTypeInteger:
		sqlType = "INTEGER"
	case bookcatalog.ColumnTypeString:
		sqlType = "TEXT" // SQLite has no varchar length enforcement
	default:
		sqlType = "TEXT"
	}

	definition := fmt.Sprintf("%s %s", column.Name, sqlType)

	if column.PrimaryKey {
		definition += " PRIMARY KEY"
	}

	if column.AutoIncrement {
		definition += " AUTOINCREMENT"
	}

	return definition
}
