// Package services hosts clients for the external tools pano depends on and
// the shared error taxonomy used to classify their failures.
//
// Subpackages wrap one binary each (exiv2, darktable, hugin, the image
// viewer) behind small interfaces with injectable executors. Errors cross
// package boundaries tagged with the sentinel markers in errors.go so the CLI
// can report them uniformly with errors.Is.
package services
