// Package darktable mediates access to darktable and darktable-cli for RAW
// conversion and interactive editing. Styles are validated against the
// configured darktable styles directory before use, and conversions are
// skipped when the target already exists unless overwriting is requested.
package darktable
