// Package exiv2 mediates access to the exiv2 CLI used for metadata
// extraction.
//
// It requests only the Exif.Photo group, parses the key-value output,
// collapses dotted key paths to their final segment, and enforces that every
// attribute of the setting-equality set plus the capture timestamp is
// present. Prefer this package over ad-hoc exec.Command usage so failure
// classification stays consistent.
package exiv2
