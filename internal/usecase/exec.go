package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// Result is the outcome of one code-execution request.
type Result struct {
	Success  bool
	Output   string
	Error    string
	Language string
}

// Executor runs a snippet in an external sandbox. The collaboration core
// treats it as opaque; only the executeCode event path may invoke it, never
// any document or chat path.
type Executor interface {
	Execute(ctx context.Context, code, language string) Result
}

// CommandExecutor runs snippets with local interpreters under a hard timeout.
// Python code goes through a temp file, JavaScript through node -e.
type CommandExecutor struct {
	Timeout time.Duration
}

// NewCommandExecutor returns an executor with the given per-run timeout.
func NewCommandExecutor(timeout time.Duration) *CommandExecutor {
	return &CommandExecutor{Timeout: timeout}
}

func (e *CommandExecutor) Execute(ctx context.Context, code, language string) Result {
	ctx, cancel := context.WithTimeout(ctx, e.Timeout)
	defer cancel()

	var cmd *exec.Cmd
	switch language {
	case "python":
		f, err := os.CreateTemp("", "exec-*.py")
		if err != nil {
			return Result{Error: "Execution error: " + err.Error(), Language: language}
		}
		defer os.Remove(f.Name())
		if _, err := f.WriteString(code); err != nil {
			f.Close()
			return Result{Error: "Execution error: " + err.Error(), Language: language}
		}
		f.Close()
		cmd = exec.CommandContext(ctx, "python3", f.Name())

	case "javascript":
		cmd = exec.CommandContext(ctx, "node", "-e", code)

	default:
		return Result{
			Error:    fmt.Sprintf("Language %s not supported yet", language),
			Language: language,
		}
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return Result{
			Error:    fmt.Sprintf("Code execution timed out (%ds limit)", int(e.Timeout.Seconds())),
			Language: language,
		}
	}
	if err != nil {
		msg := stderr.String()
		if msg == "" {
			msg = "Execution error: " + err.Error()
		}
		return Result{Error: msg, Language: language}
	}

	return Result{Success: true, Output: stdout.String(), Language: language}
}
