package bookcatalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/libradb/book-catalog-go/bookcatalog"
)

func Test_Book_JSONRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		book bookcatalog.Book
	}{
		{
			name: "stored_book",
			book: bookcatalog.Book{ID: 42, Title: "Dune", Author: "Frank Herbert"},
		},
		{
			name: "unstored_book_keeps_zero_id",
			book: bookcatalog.Book{Title: "Dune Messiah", Author: "Frank Herbert"},
		},
		{
			name: "empty_fields_are_preserved",
			book: bookcatalog.Book{ID: 7},
		},
		{
			name: "author_of_arbitrary_length",
			book: bookcatalog.Book{
				ID:     1,
				Title:  "Good Omens",
				Author: "Terry Pratchett and Neil Gaiman, with forewords by a very long list of contributors whose names alone exceed any column cap",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// act
			data, marshalErr := tc.book.ToJSON()
			restored, unmarshalErr := bookcatalog.BookFromJSON(data)

			// assert
			assert.NoError(t, marshalErr)
			assert.NoError(t, unmarshalErr)
			assert.Equal(t, tc.book, restored)
		})
	}
}

func Test_BookFromJSON_With_InvalidJSON(t *testing.T) {
	// act
	book, err := bookcatalog.BookFromJSON([]byte(`{"id": 1, "title": `))

	// assert
	assert.Error(t, err)
	assert.ErrorIs(t, err, bookcatalog.ErrInvalidBookJSON)
	assert.Equal(t, bookcatalog.Book{}, book)
}

func Test_BookFromJSON_With_UnexpectedType(t *testing.T) {
	// act
	_, err := bookcatalog.BookFromJSON([]byte(`{"id": "not-a-number"}`))

	// assert
	assert.Error(t, err)
	assert.ErrorIs(t, err, bookcatalog.ErrInvalidBookJSON)
}
