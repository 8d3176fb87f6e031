package services

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

// Executor abstracts command execution so tool clients stay testable.
type Executor interface {
	// Run executes binary with args, invoking onStdout (when non-nil) once
	// per line of standard output. A non-zero exit status is an error.
	Run(ctx context.Context, binary string, args []string, onStdout func(string)) error
}

// NewExecutor returns the real subprocess-backed executor.
func NewExecutor() Executor { return commandExecutor{} }

type commandExecutor struct{}

const stderrTailLimit = 4096

func (commandExecutor) Run(ctx context.Context, binary string, args []string, onStdout func(string)) error {
	cmd := exec.CommandContext(ctx, binary, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", binary, err)
	}

	var wg sync.WaitGroup
	var stderrTail strings.Builder

	wg.Add(2)
	go func() {
		defer wg.Done()
		scanner := bufio.NewScanner(stdout)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			if onStdout != nil {
				onStdout(scanner.Text())
			}
		}
	}()
	go func() {
		defer wg.Done()
		scanner := bufio.NewScanner(stderr)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			if stderrTail.Len() < stderrTailLimit {
				stderrTail.WriteString(scanner.Text())
				stderrTail.WriteByte('\n')
			}
		}
	}()
	wg.Wait()

	if err := cmd.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s: %w", binary, ctxErr)
		}
		tail := strings.TrimSpace(stderrTail.String())
		if tail != "" {
			return fmt.Errorf("%s: %w: %s", binary, err, tail)
		}
		return fmt.Errorf("%s: %w", binary, err)
	}
	return nil
}
