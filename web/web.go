// Package web holds the embedded front-end assets.
package web

import "embed"

//go:embed index.html app.js
var FS embed.FS
