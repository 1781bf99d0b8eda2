package cmd

import (
	"errors"
	"testing"
)

func TestExitCodeFor_FirstMatchWins(t *testing.T) {
	sentinelA := errors.New("a")
	sentinelB := errors.New("b")
	codes := []exitMapping{{sentinelA, 1}, {sentinelB, 2}}

	if got := exitCodeFor(sentinelB, codes); got != 2 {
		t.Fatalf("exitCodeFor(sentinelB) = %d, want 2", got)
	}
	if got := exitCodeFor(sentinelA, codes); got != 1 {
		t.Fatalf("exitCodeFor(sentinelA) = %d, want 1", got)
	}
	if got := exitCodeFor(errors.Join(sentinelB, sentinelA), codes); got != 1 {
		t.Fatalf("exitCodeFor(join of both) = %d, want 1 (first mapping wins)", got)
	}
}

func TestExitCodeFor_NoMatchFallsBackToOne(t *testing.T) {
	codes := []exitMapping{{errors.New("a"), 5}}
	if got := exitCodeFor(errors.New("unrelated"), codes); got != 1 {
		t.Fatalf("exitCodeFor(unrelated) = %d, want 1", got)
	}
}

func TestExitCodeFor_WrappedError(t *testing.T) {
	sentinel := errors.New("sentinel")
	wrapped := errors.Join(errors.New("context"), sentinel)
	codes := []exitMapping{{sentinel, 3}}
	if got := exitCodeFor(wrapped, codes); got != 3 {
		t.Fatalf("exitCodeFor(wrapped) = %d, want 3", got)
	}
}
