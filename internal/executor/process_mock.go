package executor

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"
)

// Call records a single invocation of MockProcessRunner.Run.
type Call struct {
	Path string
	Args []string
}

// MockProcessRunner is a mock implementation of ProcessRunner for testing.
type MockProcessRunner struct {
	// RunFunc allows tests to provide custom behavior
	RunFunc func(ctx context.Context, path string, args []string, stdin io.Reader) (stdout, stderr []byte, err error)

	// Delay simulates slow process execution
	Delay time.Duration

	// ShouldTimeout if true, will block until context is cancelled
	ShouldTimeout bool

	mu    sync.Mutex
	calls []Call
}

// Run executes the mock behavior.
func (m *MockProcessRunner) Run(ctx context.Context, path string, args []string, stdin io.Reader) ([]byte, []byte, error) {
	m.mu.Lock()
	m.calls = append(m.calls, Call{Path: path, Args: append([]string(nil), args...)})
	m.mu.Unlock()

	// Simulate timeout behavior
	if m.ShouldTimeout {
		<-ctx.Done()
		return nil, nil, ctx.Err()
	}

	// Simulate delay
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		}
	}

	// Use custom function if provided
	if m.RunFunc != nil {
		return m.RunFunc(ctx, path, args, stdin)
	}

	return nil, nil, nil
}

// Calls returns a copy of every recorded invocation, in order.
func (m *MockProcessRunner) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// CallCount returns how many times Run was called.
func (m *MockProcessRunner) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// NewMockProcessRunner creates a new mock process runner.
func NewMockProcessRunner() *MockProcessRunner {
	return &MockProcessRunner{}
}

// NewTimeoutMockProcessRunner creates a mock that simulates a timeout.
func NewTimeoutMockProcessRunner() *MockProcessRunner {
	return &MockProcessRunner{
		ShouldTimeout: true,
	}
}

// NewErrorMockProcessRunner creates a mock that returns an error.
func NewErrorMockProcessRunner(errMsg string) *MockProcessRunner {
	return &MockProcessRunner{
		RunFunc: func(ctx context.Context, path string, args []string, stdin io.Reader) ([]byte, []byte, error) {
			return nil, []byte(errMsg), errors.New(errMsg)
		},
	}
}

// NewSuccessMockProcessRunner creates a mock that returns stdout on every call.
func NewSuccessMockProcessRunner(stdout []byte) *MockProcessRunner {
	return &MockProcessRunner{
		RunFunc: func(ctx context.Context, path string, args []string, stdin io.Reader) ([]byte, []byte, error) {
			return stdout, nil, nil
		},
	}
}
