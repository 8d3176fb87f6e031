// Package viewer opens rendered images in the user's configured image
// viewer. The viewer is fire and forget: missing files are skipped and an
// unclean viewer exit is logged rather than surfaced, since many viewers
// return nonzero on plain window close.
package viewer
