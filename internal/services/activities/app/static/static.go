package static

import "embed"

// FS exposes activities front-end assets for HTTP serving.
//
//go:embed *.html *.css *.js
var FS embed.FS
