package psqlbuilder

import "github.com/Masterminds/squirrel"

// StatementBuilder построитель запросов с PostgreSQL-плейсхолдерами ($1, $2, ...)
var StatementBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Select создаёт SELECT запрос с PostgreSQL-плейсхолдерами
func Select(columns ...string) squirrel.SelectBuilder {
	return StatementBuilder.Select(columns...)
}

// Insert создаёт INSERT запрос с PostgreSQL-плейсхолдерами
func Insert(into string) squirrel.InsertBuilder {
	return StatementBuilder.Insert(into)
}

// Update создаёт UPDATE запрос с PostgreSQL-плейсхолдерами
func Update(table string) squirrel.UpdateBuilder {
	return StatementBuilder.Update(table)
}

// Delete создаёт DELETE запрос с PostgreSQL-плейсхолдерами
func Delete(from string) squirrel.DeleteBuilder {
	return StatementBuilder.Delete(from)
}
