// Package migrations содержит встроенные SQL-миграции схемы
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
