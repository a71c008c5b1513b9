// Package migrations expone los archivos SQL embebidos que goose aplica al arranque.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
