package bookcatalog

import (
	"errors"
)

var (
	// ErrEmptyTableNameSupplied is returned when an empty table name is supplied to an engine option.
	ErrEmptyTableNameSupplied = errors.New("empty table name supplied")

	// ErrNilDatabaseConnection is returned when a nil database connection is supplied to an engine factory.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrBookNotFound is returned when no row exists for the requested book id.
	ErrBookNotFound = errors.New("book not found")

	// ErrBookNotStored is returned when an update or delete targets a book whose id was never assigned.
	ErrBookNotStored = errors.New("book has no storage-assigned id")

	// ErrBuildingQueryFailed is returned when building a SQL statement fails.
	ErrBuildingQueryFailed = errors.New("building sql query failed")

	// ErrQueryingBooksFailed is returned when a select against the books table fails.
	ErrQueryingBooksFailed = errors.New("querying books failed")

	// ErrScanningDBRowFailed is returned when scanning a database row into a Book fails.
	ErrScanningDBRowFailed = errors.New("scanning database row failed")

	// ErrInsertingBookFailed is returned when an insert into the books table fails.
	ErrInsertingBookFailed = errors.New("inserting book failed")

	// ErrUpdatingBookFailed is returned when an update of a book row fails.
	ErrUpdatingBookFailed = errors.New("updating book failed")

	// ErrDeletingBookFailed is returned when a delete of a book row fails.
	ErrDeletingBookFailed = errors.New("deleting book failed")

	// ErrGettingRowsAffectedFailed is returned when the affected row count cannot be read from a result.
	ErrGettingRowsAffectedFailed = errors.New("getting rows affected failed")
)

// BookIDInt64 is a type alias for int64, representing the storage-assigned primary key of a Book row.
type BookIDInt64 = int64
