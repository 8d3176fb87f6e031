// Package catalog tracks per-photo state for a working directory: capture
// time plus whether a JPEG render, a stitched panorama, or a darktable
// sidecar exists for each RAW file.
//
// The catalog is a SQLite cache under the project's state directory,
// refreshed wholesale during detection and updated incrementally as outputs
// are produced. It can be deleted at any time; the next scan rebuilds it
// from the filesystem.
package catalog
