package bookcatalog

import (
	"errors"

	jsoniter "github.com/json-iterator/go"
)

// ErrInvalidBookJSON is returned when book JSON data is malformed or invalid.
var ErrInvalidBookJSON = errors.New("book json is not valid")

// Books is an alias type for a slice of Book.
type Books = []Book

// Book is a DTO (data transfer object) representing one row of the books table.
//
// It is built on scalars to be completely agnostic of how client code models
// books. The zero value of ID marks a book that has not been stored yet; the
// storage layer assigns the id on insert and it never changes afterwards.
//
// The struct carries no validation. The length cap on Title is a column
// constraint enforced by the database engine at write time.
type Book struct {
	ID     BookIDInt64 `json:"id"`
	Title  string      `json:"title"`
	Author string      `json:"author"`
}

var jsonAPI = jsoniter.ConfigFastest

// ToJSON serializes the Book into its JSON transfer representation.
func (b Book) ToJSON() ([]byte, error) {
	return jsonAPI.Marshal(b)
}

// BookFromJSON is a factory method for Book.
//
// It populates the Book from the given JSON transfer representation.
// Returns an error if the data is not valid JSON or does not unmarshal into a Book.
func BookFromJSON(data []byte) (Book, error) {
	if !jsonAPI.Valid(data) {
		return Book{}, ErrInvalidBookJSON
	}

	var book Book
	if unmarshalErr := jsonAPI.Unmarshal(data, &book); unmarshalErr != nil {
		return Book{}, errors.Join(ErrInvalidBookJSON, unmarshalErr)
	}

	return book, nil
}
