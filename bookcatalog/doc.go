// Package bookcatalog provides the core types for persisting Book records
// in a relational database.
//
// This package defines the Book record itself, the explicit schema
// description binding it to the books table, common error definitions, and
// the observability interfaces shared by the store engines.
//
// The Book record maps to a single table with three columns:
//   - id: integer primary key, assigned by the storage layer on insert
//   - title: variable-length string, capped at TitleMaxLength characters
//   - author: variable-length string, unbounded
//
// The package owns no persistence behavior. All insert/read/update/delete
// operations live in the engine packages (postgresengine, sqliteengine),
// which consume the TableSchema descriptor exposed here. Constraint
// violations, such as a title exceeding the column cap, surface from the
// database engine at write time, not from this package.
//
// Common usage pattern:
//
//	store, err := postgresengine.NewBookStoreFromPGXPool(pool)
//	if err != nil {
//		// handle error
//	}
//
//	id, err := store.Insert(ctx, bookcatalog.Book{Title: "Dune", Author: "Frank Herbert"})
//	if err != nil {
//		// handle error
//	}
//
//	book, err := store.GetByID(ctx, id)
package bookcatalog
