// Package assets embeds the built-in frame overlays and their thumbnails.
package assets

import "embed"

// FS holds frames/<id>.png and frames/<id>-thumb.png for the default catalog.
//
//go:embed frames/*.png
var FS embed.FS
