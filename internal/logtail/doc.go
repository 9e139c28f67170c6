// Package logtail extracts the most recent bytes of a file into a fixed
// byte budget.
//
// The budget is derived from the detail pane's usable cell count, so the
// extracted window is exactly what fits on screen. Extraction seeks to
// max(0, size-budget) and reads forward to end of file, tracking where
// the final line begins. Files smaller than the budget yield their whole
// content; a zero budget yields an empty tail with no error.
//
// Extraction is idempotent: re-extracting an unchanged file with an
// unchanged budget produces byte-identical output. Callers are expected
// to reuse their buffer across extractions and reallocate only when the
// budget changes.
//
// EOF partway through a scan and zero-byte files mean "no content yet"
// and are never surfaced as errors.
package logtail
