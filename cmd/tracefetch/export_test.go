package main

// Exported for testing.
var (
	SanitizeFilename = sanitizeFilename
	WriteRecord      = writeRecord
	RenderTrace      = renderTrace
	RenderThread     = renderThread
	NewProgressLine  = newProgressLine
)
