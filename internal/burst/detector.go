package burst

import (
	"sort"
	"time"

	"pano/internal/photo"
)

// Detect partitions records into bursts: captures sharing byte-identical
// settings, re-split wherever adjacent capture times differ by more than
// threshold, with single-frame groups discarded.
//
// The input order determines group discovery order; callers should pass
// records sorted by name for deterministic results. Runs split off a group
// are appended at the tail of the result, never interleaved, and groups are
// never re-merged afterwards.
func Detect(records []photo.CaptureRecord, threshold time.Duration) []Burst {
	groups := partitionBySettings(records)
	groups = splitByTime(groups, threshold)

	bursts := make([]Burst, 0, len(groups))
	for _, group := range groups {
		if len(group) < 2 {
			continue
		}
		frames := make([]Frame, len(group))
		for i, record := range group {
			frames[i] = Frame{Name: record.Name, Path: record.Path}
		}
		bursts = append(bursts, Burst{Frames: frames})
	}
	return bursts
}

// partitionBySettings builds equal-settings classes in a single pass. Each
// candidate is compared against the group's seed; settings equality is
// transitive, so seed comparison is equivalent to full pairwise equality.
func partitionBySettings(records []photo.CaptureRecord) [][]photo.CaptureRecord {
	grouped := make([]bool, len(records))
	var groups [][]photo.CaptureRecord

	for i := range records {
		if grouped[i] {
			continue
		}
		seed := records[i]
		grouped[i] = true
		group := []photo.CaptureRecord{seed}
		for j := i + 1; j < len(records); j++ {
			if grouped[j] {
				continue
			}
			if records[j].SettingsEqual(seed) {
				group = append(group, records[j])
				grouped[j] = true
			}
		}
		groups = append(groups, group)
	}
	return groups
}

// splitByTime sorts each group ascending by capture time and splits it at
// every gap strictly greater than threshold, scanning from the tail so each
// split-off run is already contiguous. Exactly-threshold gaps stay joined.
func splitByTime(groups [][]photo.CaptureRecord, threshold time.Duration) [][]photo.CaptureRecord {
	for gi := 0; gi < len(groups); gi++ {
		group := groups[gi]
		sort.SliceStable(group, func(a, b int) bool {
			if !group[a].CapturedAt.Equal(group[b].CapturedAt) {
				return group[a].CapturedAt.Before(group[b].CapturedAt)
			}
			return group[a].Name < group[b].Name
		})

		for i := len(group) - 1; i >= 1; i-- {
			if group[i].CapturedAt.Sub(group[i-1].CapturedAt) > threshold {
				tail := append([]photo.CaptureRecord(nil), group[i:]...)
				group = group[:i]
				groups = append(groups, tail)
			}
		}
		groups[gi] = group
	}
	return groups
}
