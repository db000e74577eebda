package errors

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"
	"testing"
)

func TestSentinelMatching(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want *StandardError
	}{
		{"token source", TokenSourceFailure(3, fmt.Errorf("reset")), ErrTokenSource},
		{"read", ReadFailure("a.cs", os.ErrNotExist), ErrReadFailure},
		{"config", InvalidConfig("c.toml", "bad", nil), ErrInvalidConfig},
		{"option", InvalidOption("color", "red", nil), ErrInvalidOption},
		{"unformattable", Unformattable("a.cs", "comments"), ErrUnformattable},
	}
	sentinels := []*StandardError{ErrTokenSource, ErrReadFailure, ErrInvalidConfig, ErrInvalidOption, ErrUnformattable}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", tt.err)
			for _, s := range sentinels {
				if got := stderrors.Is(wrapped, s); got != (s == tt.want) {
					t.Fatalf("Is(%s) got=%v", s.Code, got)
				}
			}
		})
	}
}

func TestCauseIsReachable(t *testing.T) {
	err := ReadFailure("a.cs", os.ErrNotExist)
	if !stderrors.Is(err, os.ErrNotExist) {
		t.Fatalf("cause not reachable through Unwrap")
	}
	if got := err.Error(); !strings.HasPrefix(got, "[IO:READ_FAILURE] cannot read a.cs: ") {
		t.Fatalf("message got=%q", got)
	}
	if err.Context["path"] != "a.cs" {
		t.Fatalf("context got=%v", err.Context)
	}
}

func TestCallerIsRecorded(t *testing.T) {
	err := NewStandardError(CategoryIO, "X", "m", nil)
	if !strings.HasSuffix(err.Caller, "TestCallerIsRecorded") {
		t.Fatalf("caller got=%q", err.Caller)
	}
}
