package burst

import (
	"fmt"
	"testing"
	"time"

	"pano/internal/photo"
)

var baseTime = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func record(name string, offsetSeconds int, overrides map[string]string) photo.CaptureRecord {
	settings := make(map[string]string)
	for _, key := range photo.SettingsKeys() {
		settings[key] = "base"
	}
	for key, value := range overrides {
		settings[key] = value
	}
	return photo.CaptureRecord{
		Name:       name,
		Path:       "/photos/" + name + ".nef",
		Settings:   settings,
		CapturedAt: baseTime.Add(time.Duration(offsetSeconds) * time.Second),
	}
}

func names(b Burst) []string {
	out := make([]string, len(b.Frames))
	for i, f := range b.Frames {
		out[i] = f.Name
	}
	return out
}

func assertBurst(t *testing.T, b Burst, want ...string) {
	t.Helper()
	got := names(b)
	if len(got) != len(want) {
		t.Fatalf("burst members = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("burst members = %v, want %v", got, want)
		}
	}
}

func TestDetectSplitsOnTemporalGap(t *testing.T) {
	// Five captures with identical settings at T, T+1, T+2, T+10, T+11.
	records := []photo.CaptureRecord{
		record("a", 0, nil),
		record("b", 1, nil),
		record("c", 2, nil),
		record("d", 10, nil),
		record("e", 11, nil),
	}

	bursts := Detect(records, 4*time.Second)
	if len(bursts) != 2 {
		t.Fatalf("got %d bursts, want 2", len(bursts))
	}
	assertBurst(t, bursts[0], "a", "b", "c")
	assertBurst(t, bursts[1], "d", "e")
}

func TestDetectDropsSingletons(t *testing.T) {
	records := []photo.CaptureRecord{
		record("lone", 0, map[string]string{"ISOSpeedRatings": "6400"}),
		record("a", 100, nil),
		record("b", 101, nil),
	}

	bursts := Detect(records, 4*time.Second)
	if len(bursts) != 1 {
		t.Fatalf("got %d bursts, want 1", len(bursts))
	}
	assertBurst(t, bursts[0], "a", "b")
	for _, b := range bursts {
		if b.Len() < 2 {
			t.Errorf("persistable burst with %d members", b.Len())
		}
	}
}

func TestDetectSettingsEqualityDominatesProximity(t *testing.T) {
	// One second apart but different ISO: never the same burst, and both
	// end up singletons that get dropped.
	records := []photo.CaptureRecord{
		record("a", 0, map[string]string{"ISOSpeedRatings": "100"}),
		record("b", 1, map[string]string{"ISOSpeedRatings": "200"}),
	}
	if bursts := Detect(records, 4*time.Second); len(bursts) != 0 {
		t.Fatalf("got %d bursts, want 0", len(bursts))
	}
}

func TestDetectExactThresholdGapStaysJoined(t *testing.T) {
	records := []photo.CaptureRecord{
		record("a", 0, nil),
		record("b", 4, nil),
		record("c", 9, nil), // 5s after b: splits
	}

	bursts := Detect(records, 4*time.Second)
	if len(bursts) != 1 {
		t.Fatalf("got %d bursts, want 1 (c is a dropped singleton)", len(bursts))
	}
	assertBurst(t, bursts[0], "a", "b")
}

func TestDetectSortsWithinGroupByCaptureTime(t *testing.T) {
	records := []photo.CaptureRecord{
		record("z", 2, nil),
		record("a", 0, nil),
		record("m", 1, nil),
	}

	bursts := Detect(records, 4*time.Second)
	if len(bursts) != 1 {
		t.Fatalf("got %d bursts, want 1", len(bursts))
	}
	assertBurst(t, bursts[0], "a", "m", "z")
}

func TestDetectSplitRunsAppendAtTail(t *testing.T) {
	// Group one (settings A) splits into two sessions; group two (settings B)
	// was discovered after group one, so its burst sits between the original
	// run and the split-off run.
	records := []photo.CaptureRecord{
		record("a1", 0, nil),
		record("a2", 1, nil),
		record("a3", 60, nil),
		record("a4", 61, nil),
		record("b1", 30, map[string]string{"FNumber": "8"}),
		record("b2", 31, map[string]string{"FNumber": "8"}),
	}

	bursts := Detect(records, 4*time.Second)
	if len(bursts) != 3 {
		t.Fatalf("got %d bursts, want 3", len(bursts))
	}
	assertBurst(t, bursts[0], "a1", "a2")
	assertBurst(t, bursts[1], "b1", "b2")
	assertBurst(t, bursts[2], "a3", "a4")
}

func TestDetectEqualityInvariantAcrossGroups(t *testing.T) {
	records := []photo.CaptureRecord{
		record("a1", 0, nil),
		record("a2", 1, nil),
		record("b1", 0, map[string]string{"WhiteBalance": "1"}),
		record("b2", 1, map[string]string{"WhiteBalance": "1"}),
	}

	bursts := Detect(records, 4*time.Second)
	if len(bursts) != 2 {
		t.Fatalf("got %d bursts, want 2", len(bursts))
	}

	byName := make(map[string]photo.CaptureRecord, len(records))
	for _, r := range records {
		byName[r.Name] = r
	}
	for _, b := range bursts {
		seed := byName[b.Frames[0].Name]
		for _, f := range b.Frames[1:] {
			if !byName[f.Name].SettingsEqual(seed) {
				t.Errorf("burst %s mixes settings", b.Name())
			}
		}
	}
	if byName[bursts[0].Frames[0].Name].SettingsEqual(byName[bursts[1].Frames[0].Name]) {
		t.Error("distinct bursts from one detection share settings without a temporal split")
	}
}

func TestDetectGapInvariant(t *testing.T) {
	threshold := 4 * time.Second
	var records []photo.CaptureRecord
	offsets := []int{0, 3, 6, 20, 22, 24, 100, 101}
	for i, off := range offsets {
		records = append(records, record(fmt.Sprintf("p%02d", i), off, nil))
	}

	byName := make(map[string]time.Time, len(records))
	for _, r := range records {
		byName[r.Name] = r.CapturedAt
	}

	bursts := Detect(records, threshold)
	if len(bursts) != 3 {
		t.Fatalf("got %d bursts, want 3", len(bursts))
	}
	for _, b := range bursts {
		for i := 1; i < len(b.Frames); i++ {
			gap := byName[b.Frames[i].Name].Sub(byName[b.Frames[i-1].Name])
			if gap > threshold {
				t.Errorf("burst %s contains a %v gap", b.Name(), gap)
			}
		}
	}
}

func TestDetectEmptyInput(t *testing.T) {
	if bursts := Detect(nil, 4*time.Second); len(bursts) != 0 {
		t.Fatalf("got %d bursts from empty input", len(bursts))
	}
}

func TestBurstName(t *testing.T) {
	b := Burst{Frames: []Frame{
		{Name: "IMG_0012", Path: "/p/IMG_0012.nef"},
		{Name: "IMG_0013", Path: "/p/IMG_0013.nef"},
		{Name: "IMG_0015", Path: "/p/IMG_0015.nef"},
	}}
	if b.Name() != "IMG_0012-IMG_0015" {
		t.Errorf("Name = %q", b.Name())
	}
}

func TestFrameFromPath(t *testing.T) {
	f := FrameFromPath("/photos/IMG_0001.NEF")
	if f.Name != "IMG_0001" {
		t.Errorf("Name = %q, want IMG_0001", f.Name)
	}
	if f.Path != "/photos/IMG_0001.NEF" {
		t.Errorf("Path = %q", f.Path)
	}
}
