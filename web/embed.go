// Package web carries the page templates and static assets of the portal.
package web

import "embed"

//go:embed tmpl static
var FS embed.FS
