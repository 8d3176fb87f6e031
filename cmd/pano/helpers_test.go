package main

import "testing"

func TestParseIndices(t *testing.T) {
	indices, err := parseIndices([]string{"0", "3", " 7 "})
	if err != nil {
		t.Fatalf("parseIndices failed: %v", err)
	}
	if len(indices) != 3 || indices[0] != 0 || indices[1] != 3 || indices[2] != 7 {
		t.Errorf("indices = %v", indices)
	}
}

func TestParseIndicesRejectsBadInput(t *testing.T) {
	for _, arg := range []string{"x", "-1", "1.5", ""} {
		if _, err := parseIndices([]string{arg}); err == nil {
			t.Errorf("expected error for %q", arg)
		}
	}
}
