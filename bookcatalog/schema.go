package bookcatalog

// Table and column names of the books table. The store engines build all of
// their SQL from these instead of hardcoding identifiers.
const (
	DefaultTableName = "books"
	ColumnID         = "id"
	ColumnTitle      = "title"
	ColumnAuthor     = "author"
)

// TitleMaxLength is the column length cap on title. It is the only
// constraint beyond the primary key; the original model declares no
// nullability or uniqueness for title and author, and none is added here.
const TitleMaxLength = 30

// ColumnType is the storage-agnostic type of a mapped column.
// Engines translate it to their dialect's concrete column type.
type ColumnType string

const (
	ColumnTypeInteger ColumnType = "integer"
	ColumnTypeString  ColumnType = "string"
)

// ColumnSchema describes a single column of a mapped table:
// its name, storage-agnostic type, and constraints.
type ColumnSchema struct {
	Name          string
	Type          ColumnType
	MaxLength     int // 0 means unbounded
	PrimaryKey    bool
	AutoIncrement bool
}

// TableSchema is an explicit schema-description value binding a record type
// to a table. It replaces the base-class registration an ORM would use: no
// inheritance, no global registry, just a value the engines consume.
type TableSchema struct {
	Name    string
	Columns []ColumnSchema
}

// BooksTableSchema returns the schema descriptor for the books table.
func BooksTableSchema() TableSchema {
	return TableSchema{
		Name: DefaultTableName,
		Columns: []ColumnSchema{
			{Name: ColumnID, Type: ColumnTypeInteger, PrimaryKey: true, AutoIncrement: true},
			{Name: ColumnTitle, Type: ColumnTypeString, MaxLength: TitleMaxLength},
			{Name: ColumnAuthor, Type: ColumnTypeString},
		},
	}
}

// PrimaryKeyColumn returns the primary key column of the table, if one is declared.
func (ts TableSchema) PrimaryKeyColumn() (ColumnSchema, bool) {
	for _, column := range ts.Columns {
		if column.PrimaryKey {
			return column, true
		}
	}

	return ColumnSchema{}, false
}

// Column returns the column with the given name, if it is declared.
func (ts TableSchema) Column(name string) (ColumnSchema, bool) {
	for _, column := range ts.Columns {
		if column.Name == name {
			return column, true
		}
	}

	return ColumnSchema{}, false
}

// ColumnNames returns the declared column names in declaration order.
func (ts TableSchema) ColumnNames() []string {
	names := make([]string, 0, len(ts.Columns))
	for _, column := range ts.Columns {
		names = append(names, column.Name)
	}

	return names
}
