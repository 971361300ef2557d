// Package web embeds the site's templates and static assets so the
// server binary is self-contained.
package web

import "embed"

// Templates holds the HTML templates rendered by the server.
//
//go:embed templates/*.html
var Templates embed.FS

// Static holds stylesheets and the icon font stylesheet hook.
//
//go:embed static
var Static embed.FS
