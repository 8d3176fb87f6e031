package services

import (
	"context"
	"strings"
	"testing"
)

func TestExecutorStreamsStdoutLines(t *testing.T) {
	var lines []string
	err := NewExecutor().Run(context.Background(), "sh",
		[]string{"-c", "printf 'one\\ntwo\\n'"},
		func(line string) { lines = append(lines, line) })
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(lines) != 2 || lines[0] != "one" || lines[1] != "two" {
		t.Errorf("lines = %v", lines)
	}
}

func TestExecutorReportsExitStatusWithStderr(t *testing.T) {
	err := NewExecutor().Run(context.Background(), "sh",
		[]string{"-c", "echo broken >&2; exit 3"}, nil)
	if err == nil {
		t.Fatal("expected non-zero exit to surface as error")
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("stderr tail missing from error: %q", err.Error())
	}
}

func TestExecutorMissingBinary(t *testing.T) {
	err := NewExecutor().Run(context.Background(), "pano-no-such-binary", nil, nil)
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
}
