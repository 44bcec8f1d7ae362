package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // driver import
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/libradb/book-catalog-go/bookcatalog"
	"github.com/libradb/book-catalog-go/bookcatalog/postgresengine/internal/adapters"
)

const (
	logMsgBuildInsertQueryFailed = "failed to build insert query"
	logMsgBuildSelectQueryFailed = "failed to build select query"
	logMsgBuildUpdateQueryFailed = "failed to build update query"
	logMsgBuildDeleteQueryFailed = "failed to build delete query"
	logMsgDBQueryFailed          = "database query execution failed"
	logMsgDBExecFailed           = "database execution failed"
	logMsgCloseRowsFailed        = "failed to close database rows"
	logMsgRowsIterationFailed    = "database rows iteration failed"
	logMsgScanRowFailed          = "failed to scan database row"
	logMsgRowsAffectedFailed     = "failed to get rows affected count"
	logMsgNoIDReturned           = "insert returned no generated id"
	logMsgBookNotFound           = "no row found for book id"
	logMsgBookInserted           = "book inserted"
	logMsgBookRetrieved          = "book retrieved"
	logMsgBookUpdated            = "book updated"
	logMsgBookDeleted            = "book deleted"
	logMsgBooksListed            = "books listed"
	logMsgSQLExecuted            = "executed sql for: "
	logMsgOperation              = "bookstore operation: "
	logAttrError                 = "error"
	logAttrQuery                 = "query"
	logAttrBookID                = "book_id"
	logAttrBookCount             = "book_count"
	logAttrDurationMS            = "duration_ms"
	opInsert                     = "insert"
	opGetByID                    = "get_by_id"
	opUpdate                     = "update"
	opDelete                     = "delete"
	opList                       = "list"
	dialectPostgres              = "postgres"
)

type (
	sqlQueryString    = string
	rowsAffectedInt64 = int64
	queryDuration     = time.Duration
)

// BookStore represents a storage mechanism for Book records in a PostgreSQL database.
// It leverages a database adapter and supports customizable logging, metrics, tracing,
// and table configuration.
type BookStore struct {
	db               adapters.DBAdapter
	tableName        string
	logger           Logger
	contextualLogger ContextualLogger
	metricsCollector MetricsCollector
	tracingCollector TracingCollector
}

// NewBookStoreFromPGXPool creates a new BookStore using a pgx Pool with optional configuration.
func NewBookStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (BookStore, error) {
	if db == nil {
		return BookStore{}, bookcatalog.ErrNilDatabaseConnection
	}

	return applyOptions(BookStore{
		db:        adapters.NewPGXAdapter(db),
		tableName: bookcatalog.DefaultTableName,
	}, options)
}

// NewBookStoreFromSQLDB creates a new BookStore using a sql.DB with optional configuration.
func NewBookStoreFromSQLDB(db *sql.DB, options ...Option) (BookStore, error) {
	if db == nil {
		return BookStore{}, bookcatalog.ErrNilDatabaseConnection
	}

	return applyOptions(BookStore{
		db:        adapters.NewSQLAdapter(db),
		tableName: bookcatalog.DefaultTableName,
	}, options)
}

// NewBookStoreFromSQLX creates a new BookStore using a sqlx.DB with optional configuration.
func NewBookStoreFromSQLX(db *sqlx.DB, options ...Option) (BookStore, error) {
	if db == nil {
		return BookStore{}, bookcatalog.ErrNilDatabaseConnection
	}

	return applyOptions(BookStore{
		db:        adapters.NewSQLXAdapter(db),
		tableName: bookcatalog.DefaultTableName,
	}, options)
}

func applyOptions(bs BookStore, options []Option) (BookStore, error) {
	for _, option := range options {
		if err := option(&bs); err != nil {
			return BookStore{}, err
		}
	}

	return bs, nil
}

// Insert appends a new row to the books table and returns the id assigned by the database.
// The id on the supplied Book is ignored; assignment is always left to the storage layer.
func (bs BookStore) Insert(ctx context.Context, book bookcatalog.Book) (bookcatalog.BookIDInt64, error) {
	ctx, span := bs.startSpan(ctx, opInsert)

	sqlQuery, buildQueryErr := bs.buildInsertQuery(book)
	if buildQueryErr != nil {
		bs.logError(ctx, logMsgBuildInsertQueryFailed, buildQueryErr)
		bs.finishSpan(span, statusError)

		return 0, buildQueryErr
	}

	rows, duration, queryErr := bs.executeQuery(ctx, sqlQuery, opInsert)
	if queryErr != nil {
		bs.recordErrorMetrics(ctx, opInsert, errorTypeDatabase)
		bs.finishSpan(span, statusError)

		return 0, errors.Join(bookcatalog.ErrInsertingBookFailed, queryErr)
	}
	defer bs.closeRows(ctx, rows)

	if !rows.Next() {
		bs.recordErrorMetrics(ctx, opInsert, errorTypeDatabase)
		bs.finishSpan(span, statusError)

		if rowsErr := rows.Err(); rowsErr != nil {
			bs.logError(ctx, logMsgRowsIterationFailed, rowsErr)
			return 0, errors.Join(bookcatalog.ErrInsertingBookFailed, rowsErr)
		}

		bs.logError(ctx, logMsgNoIDReturned, bookcatalog.ErrInsertingBookFailed)

		return 0, bookcatalog.ErrInsertingBookFailed
	}

	var bookID bookcatalog.BookIDInt64
	if scanErr := rows.Scan(&bookID); scanErr != nil {
		bs.logError(ctx, logMsgScanRowFailed, scanErr)
		bs.recordErrorMetrics(ctx, opInsert, errorTypeScan)
		bs.finishSpan(span, statusError)

		return 0, errors.Join(bookcatalog.ErrScanningDBRowFailed, scanErr)
	}

	bs.recordDurationMetrics(ctx, opInsert, duration)
	bs.finishSpan(span, statusSuccess)
	bs.logOperation(ctx, logMsgBookInserted,
		logAttrBookID, bookID,
		logAttrDurationMS, bs.toMilliseconds(duration))

	return bookID, nil
}

// GetByID retrieves the Book row with the given id.
// Returns bookcatalog.ErrBookNotFound if no such row exists.
func (bs BookStore) GetByID(ctx context.Context, bookID bookcatalog.BookIDInt64) (bookcatalog.Book, error) {
	var empty bookcatalog.Book

	ctx, span := bs.startSpan(ctx, opGetByID)

	sqlQuery, buildQueryErr := bs.buildSelectByIDQuery(bookID)
	if buildQueryErr != nil {
		bs.logError(ctx, logMsgBuildSelectQueryFailed, buildQueryErr)
		bs.finishSpan(span, statusError)

		return empty, buildQueryErr
	}

	rows, duration, queryErr := bs.executeQuery(ctx, sqlQuery, opGetByID)
	if queryErr != nil {
		bs.recordErrorMetrics(ctx, opGetByID, errorTypeDatabase)
		bs.finishSpan(span, statusError)

		return empty, errors.Join(bookcatalog.ErrQueryingBooksFailed, queryErr)
	}
	defer bs.closeRows(ctx, rows)

	if !rows.Next() {
		if rowsErr := rows.Err(); rowsErr != nil {
			bs.logError(ctx, logMsgRowsIterationFailed, rowsErr)
			bs.recordErrorMetrics(ctx, opGetByID, errorTypeDatabase)
			bs.finishSpan(span, statusError)

			return empty, errors.Join(bookcatalog.ErrQueryingBooksFailed, rowsErr)
		}

		bs.logOperation(ctx, logMsgBookNotFound, logAttrBookID, bookID)
		bs.finishSpan(span, statusNotFound)

		return empty, bookcatalog.ErrBookNotFound
	}

	book, scanErr := bs.scanBook(ctx, rows)
	if scanErr != nil {
		bs.recordErrorMetrics(ctx, opGetByID, errorTypeScan)
		bs.finishSpan(span, statusError)

		return empty, scanErr
	}

	bs.recordDurationMetrics(ctx, opGetByID, duration)
	bs.finishSpan(span, statusSuccess)
	bs.logOperation(ctx, logMsgBookRetrieved,
		logAttrBookID, book.ID,
		logAttrDurationMS, bs.toMilliseconds(duration))

	return book, nil
}

// Update overwrites title and author of the row identified by the id of the supplied Book.
// The id itself is immutable once assigned and is never part of the update.
// Returns bookcatalog.ErrBookNotStored if the Book has no assigned id, and
// bookcatalog.ErrBookNotFound if no row exists for it.
func (bs BookStore) Update(ctx context.Context, book bookcatalog.Book) error {
	if book.ID == 0 {
		return bookcatalog.ErrBookNotStored
	}

	ctx, span := bs.startSpan(ctx, opUpdate)

	sqlQuery, buildQueryErr := bs.buildUpdateQuery(book)
	if buildQueryErr != nil {
		bs.logError(ctx, logMsgBuildUpdateQueryFailed, buildQueryErr)
		bs.finishSpan(span, statusError)

		return buildQueryErr
	}

	rowsAffected, duration, execErr := bs.executeStatement(ctx, sqlQuery, opUpdate)
	if execErr != nil {
		bs.recordErrorMetrics(ctx, opUpdate, errorTypeDatabase)
		bs.finishSpan(span, statusError)

		return errors.Join(bookcatalog.ErrUpdatingBookFailed, execErr)
	}

	if rowsAffected == 0 {
		bs.logOperation(ctx, logMsgBookNotFound, logAttrBookID, book.ID)
		bs.finishSpan(span, statusNotFound)

		return bookcatalog.ErrBookNotFound
	}

	bs.recordDurationMetrics(ctx, opUpdate, duration)
	bs.finishSpan(span, statusSuccess)
	bs.logOperation(ctx, logMsgBookUpdated,
		logAttrBookID, book.ID,
		logAttrDurationMS, bs.toMilliseconds(duration))

	return nil
}

// Delete removes the Book row with the given id.
// Returns bookcatalog.ErrBookNotFound if no such row exists.
func (bs BookStore) Delete(ctx context.Context, bookID bookcatalog.BookIDInt64) error {
	ctx, span := bs.startSpan(ctx, opDelete)

	sqlQuery, buildQueryErr := bs.buildDeleteQuery(bookID)
	if buildQueryErr != nil {
		bs.logError(ctx, logMsgBuildDeleteQueryFailed, buildQueryErr)
		bs.finishSpan(span, statusError)

		return buildQueryErr
	}

	rowsAffected, duration, execErr := bs.executeStatement(ctx, sqlQuery, opDelete)
	if execErr != nil {
		bs.recordErrorMetrics(ctx, opDelete, errorTypeDatabase)
		bs.finishSpan(span, statusError)

		return errors.Join(bookcatalog.ErrDeletingBookFailed, execErr)
	}

	if rowsAffected == 0 {
		bs.logOperation(ctx, logMsgBookNotFound, logAttrBookID, bookID)
		bs.finishSpan(span, statusNotFound)

		return bookcatalog.ErrBookNotFound
	}

	bs.recordDurationMetrics(ctx, opDelete, duration)
	bs.finishSpan(span, statusSuccess)
	bs.logOperation(ctx, logMsgBookDeleted,
		logAttrBookID, bookID,
		logAttrDurationMS, bs.toMilliseconds(duration))

	return nil
}

// All retrieves every Book row, ordered by id ascending.
func (bs BookStore) All(ctx context.Context) (bookcatalog.Books, error) {
	var empty bookcatalog.Books

	ctx, span := bs.startSpan(ctx, opList)

	sqlQuery, buildQueryErr := bs.buildSelectAllQuery()
	if buildQueryErr != nil {
		bs.logError(ctx, logMsgBuildSelectQueryFailed, buildQueryErr)
		bs.finishSpan(span, statusError)

		return empty, buildQueryErr
	}

	rows, duration, queryErr := bs.executeQuery(ctx, sqlQuery, opList)
	if queryErr != nil {
		bs.recordErrorMetrics(ctx, opList, errorTypeDatabase)
		bs.finishSpan(span, statusError)

		return empty, errors.Join(bookcatalog.ErrQueryingBooksFailed, queryErr)
	}
	defer bs.closeRows(ctx, rows)

	books := make(bookcatalog.Books, 0)

	for rows.Next() {
		book, scanErr := bs.scanBook(ctx, rows)
		if scanErr != nil {
			bs.recordErrorMetrics(ctx, opList, errorTypeScan)
			bs.finishSpan(span, statusError)

			return empty, scanErr
		}

		books = append(books, book)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		bs.logError(ctx, logMsgRowsIterationFailed, rowsErr)
		bs.recordErrorMetrics(ctx, opList, errorTypeDatabase)
		bs.finishSpan(span, statusError)

		return empty, errors.Join(bookcatalog.ErrQueryingBooksFailed, rowsErr)
	}

	bs.recordDurationMetrics(ctx, opList, duration)
	bs.finishSpan(span, statusSuccess)
	bs.logOperation(ctx, logMsgBooksListed,
		logAttrBookCount, len(books),
		logAttrDurationMS, bs.toMilliseconds(duration))

	return books, nil
}

// executeQuery executes a SQL query and returns rows with timing information.
func (bs BookStore) executeQuery(ctx context.Context, sqlQuery string, action string) (
	adapters.DBRows,
	queryDuration,
	error,
) {

	start := time.Now()
	rows, queryErr := bs.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	bs.logQueryWithDuration(ctx, sqlQuery, action, duration)

	if queryErr != nil {
		bs.logError(ctx, logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)
		return nil, duration, queryErr
	}

	return rows, duration, nil
}

// executeStatement executes a SQL statement and returns rows affected with timing information.
func (bs BookStore) executeStatement(ctx context.Context, sqlQuery string, action string) (
	rowsAffectedInt64,
	queryDuration,
	error,
) {

	start := time.Now()
	result, execErr := bs.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	bs.logQueryWithDuration(ctx, sqlQuery, action, duration)

	if execErr != nil {
		bs.logError(ctx, logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)
		return 0, duration, execErr
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		bs.logError(ctx, logMsgRowsAffectedFailed, rowsAffectedErr)
		return 0, duration, errors.Join(bookcatalog.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	return rowsAffected, duration, nil
}

// scanBook scans the current row into a Book.
func (bs BookStore) scanBook(ctx context.Context, rows adapters.DBRows) (bookcatalog.Book, error) {
	var book bookcatalog.Book

	if scanErr := rows.Scan(&book.ID, &book.Title, &book.Author); scanErr != nil {
		bs.logError(ctx, logMsgScanRowFailed, scanErr)
		return bookcatalog.Book{}, errors.Join(bookcatalog.ErrScanningDBRowFailed, scanErr)
	}

	return book, nil
}

// closeRows safely closes database rows and logs any errors.
func (bs BookStore) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		bs.logWarn(ctx, logMsgCloseRowsFailed, closeErr)
	}
}

func (bs BookStore) buildInsertQuery(book bookcatalog.Book) (sqlQueryString, error) {
	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(bs.tableName).
		Cols(bookcatalog.ColumnTitle, bookcatalog.ColumnAuthor).
		Vals(goqu.Vals{book.Title, book.Author}).
		Returning(goqu.C(bookcatalog.ColumnID))

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(bookcatalog.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (bs BookStore) buildSelectByIDQuery(bookID bookcatalog.BookIDInt64) (sqlQueryString, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(bs.tableName).
		Select(bookcatalog.ColumnID, bookcatalog.ColumnTitle, bookcatalog.ColumnAuthor).
		Where(goqu.Ex{bookcatalog.ColumnID: bookID})

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(bookcatalog.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (bs BookStore) buildSelectAllQuery() (sqlQueryString, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(bs.tableName).
		Select(bookcatalog.ColumnID, bookcatalog.ColumnTitle, bookcatalog.ColumnAuthor).
		Order(goqu.I(bookcatalog.ColumnID).Asc())

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(bookcatalog.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (bs BookStore) buildUpdateQuery(book bookcatalog.Book) (sqlQueryString, error) {
	updateStmt := goqu.Dialect(dialectPostgres).
		Update(bs.tableName).
		Set(goqu.Record{
			bookcatalog.ColumnTitle:  book.Title,
			bookcatalog.ColumnAuthor: book.Author,
		}).
		Where(goqu.Ex{bookcatalog.ColumnID: book.ID})

	sqlQuery, _, toSQLErr := updateStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(bookcatalog.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (bs BookStore) buildDeleteQuery(bookID bookcatalog.BookIDInt64) (sqlQueryString, error) {
	deleteStmt := goqu.Dialect(dialectPostgres).
		Delete(bs.tableName).
		Where(goqu.Ex{bookcatalog.ColumnID: bookID})

	sqlQuery, _, toSQLErr := deleteStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(bookcatalog.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}
