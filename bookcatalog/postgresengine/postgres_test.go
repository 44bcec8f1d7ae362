package postgresengine_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"

	"github.com/libradb/book-catalog-go/bookcatalog"
	. "github.com/libradb/book-catalog-go/bookcatalog/postgresengine"
	. "github.com/libradb/book-catalog-go/testutil/fixtures"
	"github.com/libradb/book-catalog-go/testutil/postgresengine/config"
)

func setup(t testing.TB) (context.Context, *pgxpool.Pool, BookStore) {
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	connPool, err := pgxpool.NewWithConfig(context.Background(), config.PostgresPGXPoolTestConfig())
	assert.NoError(t, err, "error connecting to DB pool in test setup")
	t.Cleanup(connPool.Close)

	bs, err := NewBookStoreFromPGXPool(connPool)
	assert.NoError(t, err, "creating the book store failed")

	CreateBooksTable(t, ctxWithTimeout, connPool)
	CleanUpBooks(t, ctxWithTimeout, connPool)

	return ctxWithTimeout, connPool, bs
}

func Test_Insert_And_GetByID_RoundTrip(t *testing.T) {
	// setup
	ctx, _, bs := setup(t)

	// act
	bookID, insertErr := bs.Insert(ctx, FixtureDune())
	book, getErr := bs.GetByID(ctx, bookID)

	// assert
	assert.NoError(t, insertErr, "error in inserting the book")
	assert.NoError(t, getErr, "error in retrieving the book")
	assert.Equal(t, bookID, book.ID)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, "Frank Herbert", book.Author)
}

func Test_Insert_AssignsUniqueIDs(t *testing.T) {
	// setup
	ctx, _, bs := setup(t)

	// act
	firstID, firstErr := bs.Insert(ctx, FixtureDune())
	secondID, secondErr := bs.Insert(ctx, FixtureDune())
	thirdID, thirdErr := bs.Insert(ctx, FixtureBookWithUniqueAuthor(t))

	// assert
	assert.NoError(t, firstErr)
	assert.NoError(t, secondErr)
	assert.NoError(t, thirdErr)
	assert.NotEqual(t, firstID, secondID)
	assert.NotEqual(t, secondID, thirdID)
	assert.NotEqual(t, firstID, thirdID)
}

func Test_Insert_DoesNotReuseIDs_AfterDelete(t *testing.T) {
	// setup
	ctx, _, bs := setup(t)

	// arrange
	firstID := GivenBookWasInserted(t, ctx, bs, FixtureDune())
	deleteErr := bs.Delete(ctx, firstID)
	assert.NoError(t, deleteErr, "error in arranging test data")

	// act
	secondID, insertErr := bs.Insert(ctx, FixtureDune())

	// assert
	assert.NoError(t, insertErr)
	assert.NotEqual(t, firstID, secondID)
}

func Test_Insert_With_TitleOfExactly30Characters(t *testing.T) {
	// setup
	ctx, _, bs := setup(t)

	// arrange
	title := TitleOfLength(bookcatalog.TitleMaxLength)

	// act
	bookID, insertErr := bs.Insert(ctx, bookcatalog.Book{Title: title, Author: "Anonymous"})
	book, getErr := bs.GetByID(ctx, bookID)

	// assert
	assert.NoError(t, insertErr, "a title of exactly the column cap must be accepted")
	assert.NoError(t, getErr)
	assert.Equal(t, title, book.Title)
	assert.Len(t, book.Title, bookcatalog.TitleMaxLength)
}

func Test_Insert_With_TitleOf31Characters_IsRejected(t *testing.T) {
	// setup
	ctx, _, bs := setup(t)

	// act
	_, insertErr := bs.Insert(ctx, bookcatalog.Book{Title: TitleOfLength(bookcatalog.TitleMaxLength + 1), Author: "Anonymous"})

	// assert: the varchar(30) column rejects the value, the store only relays that
	assert.Error(t, insertErr)
	assert.ErrorIs(t, insertErr, bookcatalog.ErrInsertingBookFailed)
}

func Test_Insert_With_AuthorOfArbitraryLength(t *testing.T) {
	// setup
	ctx, _, bs := setup(t)

	// arrange
	author := strings.Repeat("Robert Galbraith alias Joanne Rowling; ", 50)

	// act
	bookID, insertErr := bs.Insert(ctx, bookcatalog.Book{Title: "The Cuckoo's Calling", Author: author})
	book, getErr := bs.GetByID(ctx, bookID)

	// assert
	assert.NoError(t, insertErr)
	assert.NoError(t, getErr)
	assert.Equal(t, author, book.Author)
}

func Test_GetByID_When_BookDoesNotExist(t *testing.T) {
	// setup
	ctx, _, bs := setup(t)

	// act
	_, getErr := bs.GetByID(ctx, 424242)

	// assert
	assert.Error(t, getErr)
	assert.ErrorIs(t, getErr, bookcatalog.ErrBookNotFound)
}

func Test_Update_OverwritesTitleAndAuthor(t *testing.T) {
	// setup
	ctx, _, bs := setup(t)

	// arrange
	bookID := GivenBookWasInserted(t, ctx, bs, FixtureDune())

	// act
	updateErr := bs.Update(ctx, bookcatalog.Book{ID: bookID, Title: "Dune Messiah", Author: "Frank Herbert"})
	book, getErr := bs.GetByID(ctx, bookID)

	// assert
	assert.NoError(t, updateErr, "error in updating the book")
	assert.NoError(t, getErr)
	assert.Equal(t, bookID, book.ID, "the id must not change on update")
	assert.Equal(t, "Dune Messiah", book.Title)
	assert.Equal(t, "Frank Herbert", book.Author)
}

func Test_Update_When_BookDoesNotExist(t *testing.T) {
	// setup
	ctx, _, bs := setup(t)

	// act
	updateErr := bs.Update(ctx, bookcatalog.Book{ID: 424242, Title: "Ghost", Author: "Nobody"})

	// assert
	assert.Error(t, updateErr)
	assert.ErrorIs(t, updateErr, bookcatalog.ErrBookNotFound)
}

func Test_Update_When_BookWasNeverStored(t *testing.T) {
	// setup
	ctx, _, bs := setup(t)

	// act
	updateErr := bs.Update(ctx, bookcatalog.Book{Title: "Unstored", Author: "Nobody"})

	// assert
	assert.Error(t, updateErr)
	assert.ErrorIs(t, updateErr, bookcatalog.ErrBookNotStored)
}

func Test_Delete_RemovesTheRow(t *testing.T) {
	// setup
	ctx, _, bs := setup(t)

	// arrange
	bookID := GivenBookWasInserted(t, ctx, bs, FixtureDune())

	// act
	deleteErr := bs.Delete(ctx, bookID)
	_, getErr := bs.GetByID(ctx, bookID)

	// assert
	assert.NoError(t, deleteErr, "error in deleting the book")
	assert.ErrorIs(t, getErr, bookcatalog.ErrBookNotFound)
}

func Test_Delete_When_BookDoesNotExist(t *testing.T) {
	// setup
	ctx, _, bs := setup(t)

	// act
	deleteErr := bs.Delete(ctx, 424242)

	// assert
	assert.Error(t, deleteErr)
	assert.ErrorIs(t, deleteErr, bookcatalog.ErrBookNotFound)
}

func Test_All_ReturnsBooksOrderedByID(t *testing.T) {
	// setup
	ctx, _, bs := setup(t)

	// arrange
	firstID := GivenBookWasInserted(t, ctx, bs, bookcatalog.Book{Title: "Dune", Author: "Frank Herbert"})
	secondID := GivenBookWasInserted(t, ctx, bs, bookcatalog.Book{Title: "Dune Messiah", Author: "Frank Herbert"})
	thirdID := GivenBookWasInserted(t, ctx, bs, bookcatalog.Book{Title: "Children of Dune", Author: "Frank Herbert"})

	// act
	books, listErr := bs.All(ctx)

	// assert
	assert.NoError(t, listErr, "error in listing the books")
	assert.Len(t, books, 3)
	assert.Equal(t, []bookcatalog.BookIDInt64{firstID, secondID, thirdID}, []bookcatalog.BookIDInt64{books[0].ID, books[1].ID, books[2].ID})
}

func Test_All_When_TableIsEmpty(t *testing.T) {
	// setup
	ctx, _, bs := setup(t)

	// act
	books, listErr := bs.All(ctx)

	// assert
	assert.NoError(t, listErr)
	assert.Empty(t, books)
}

func Test_BookStore_With_SQLDBConnection(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	connPool, err := pgxpool.NewWithConfig(context.Background(), config.PostgresPGXPoolTestConfig())
	assert.NoError(t, err, "error connecting to DB pool in test setup")
	defer connPool.Close()

	CreateBooksTable(t, ctxWithTimeout, connPool)
	CleanUpBooks(t, ctxWithTimeout, connPool)

	db := config.PostgresSQLDBTestConfig()
	defer func() { _ = db.Close() }()

	bs, err := NewBookStoreFromSQLDB(db)
	assert.NoError(t, err, "creating the book store failed")

	// act
	bookID, insertErr := bs.Insert(ctxWithTimeout, FixtureDune())
	book, getErr := bs.GetByID(ctxWithTimeout, bookID)

	// assert
	assert.NoError(t, insertErr)
	assert.NoError(t, getErr)
	assert.Equal(t, FixtureDune().Title, book.Title)
	assert.Equal(t, FixtureDune().Author, book.Author)
}

func Test_BookStore_With_SQLXConnection(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	connPool, err := pgxpool.NewWithConfig(context.Background(), config.PostgresPGXPoolTestConfig())
	assert.NoError(t, err, "error connecting to DB pool in test setup")
	defer connPool.Close()

	CreateBooksTable(t, ctxWithTimeout, connPool)
	CleanUpBooks(t, ctxWithTimeout, connPool)

	db := config.PostgresSQLXTestConfig()
	defer func() { _ = db.Close() }()

	bs, err := NewBookStoreFromSQLX(db)
	assert.NoError(t, err, "creating the book store failed")

	// act
	bookID, insertErr := bs.Insert(ctxWithTimeout, FixtureDune())
	book, getErr := bs.GetByID(ctxWithTimeout, bookID)

	// assert
	assert.NoError(t, insertErr)
	assert.NoError(t, getErr)
	assert.Equal(t, FixtureDune().Title, book.Title)
	assert.Equal(t, FixtureDune().Author, book.Author)
}
