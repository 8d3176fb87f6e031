// Package burst implements panorama burst detection over capture metadata.
//
// Detection is a pure function of its input: captures are partitioned into
// equal-settings classes, each class is sorted by capture time and split at
// gaps exceeding the threshold, and single-frame groups are dropped. No image
// content is ever inspected; grouping relies exclusively on metadata equality
// and timestamp proximity.
package burst
