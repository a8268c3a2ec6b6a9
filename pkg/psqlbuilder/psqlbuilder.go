package psqlbuilder

import (
	"fmt"

	"github.com/Masterminds/squirrel"
)

// Поддерживаемые SQL диалекты
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// For возвращает билдер с плейсхолдерами нужного диалекта:
// $1, $2 для Postgres и ? для SQLite
func For(dialect string) (squirrel.StatementBuilderType, error) {
	switch dialect {
	case DialectPostgres:
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar), nil
	case DialectSQLite:
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question), nil
	default:
		return squirrel.StatementBuilderType{}, fmt.Errorf("psqlbuilder: unsupported dialect %q", dialect)
	}
}
