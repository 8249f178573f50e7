package usecase

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestCommandExecutor_UnsupportedLanguage(t *testing.T) {
	e := NewCommandExecutor(5 * time.Second)

	res := e.Execute(context.Background(), "puts 1", "ruby")

	if res.Success {
		t.Error("Expected failure for unsupported language")
	}
	if res.Error != "Language ruby not supported yet" {
		t.Errorf("Unexpected error: %s", res.Error)
	}
	if res.Language != "ruby" {
		t.Errorf("Expected language echoed back, got %s", res.Language)
	}
}

func TestCommandExecutor_Python(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping interpreter test in short mode")
	}
	e := NewCommandExecutor(10 * time.Second)

	res := e.Execute(context.Background(), "print('hello')", "python")
	if !res.Success {
		t.Fatalf("Expected success, got error: %s", res.Error)
	}
	if !strings.Contains(res.Output, "hello") {
		t.Errorf("Unexpected output: %q", res.Output)
	}
}

func TestCommandExecutor_PythonError(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping interpreter test in short mode")
	}
	e := NewCommandExecutor(10 * time.Second)

	res := e.Execute(context.Background(), "raise ValueError('boom')", "python")
	if res.Success {
		t.Fatal("Expected failure for raising code")
	}
	if !strings.Contains(res.Error, "ValueError") {
		t.Errorf("Expected traceback in error, got %q", res.Error)
	}
}

func TestCommandExecutor_Timeout(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping interpreter test in short mode")
	}
	e := NewCommandExecutor(time.Second)

	res := e.Execute(context.Background(), "import time; time.sleep(10)", "python")
	if res.Success {
		t.Fatal("Expected timeout failure")
	}
	if !strings.Contains(res.Error, "timed out") {
		t.Errorf("Expected timeout message, got %q", res.Error)
	}
}
