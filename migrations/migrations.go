// Package migrations bundles the schema migrations applied at startup or by
// the migrate command.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
