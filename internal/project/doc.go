// Package project models the on-disk layout of one working directory:
// the RAW captures at its top level, the Jpeg/Panoramas/Trash output
// folders, and the .pano state directory holding the persisted burst
// collection, the photo catalog, and the advisory lock file.
package project
