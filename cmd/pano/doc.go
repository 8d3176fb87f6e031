// Command pano detects bursts of panorama frames in a directory of RAW
// captures and drives the darktable and hugin tool chains to turn them into
// stitched panoramas.
package main
