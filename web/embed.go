// Package web embeds the HTML templates and static assets.
package web

import "embed"

// TemplatesFS contains the HTML templates.
//
//go:embed all:templates
var TemplatesFS embed.FS

// StaticFS contains the CSS and JavaScript.
//
//go:embed all:static
var StaticFS embed.FS
