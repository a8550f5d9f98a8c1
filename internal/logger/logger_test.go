// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"syscall"
	"testing"
)

func TestGetReturnsSameInstance(t *testing.T) {
	l1 := Get(0)
	l2 := Get(-1)
	if l1 == nil || l1 != l2 {
		t.Errorf("Get: got %p and %p, want the same non-nil logger", l1, l2)
	}
}

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, 0)
	log.Info("scan complete", "file", "a.json", "matches", 3)
	log.V(1).Info("suppressed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("Got %d entries, want 1:\n%s", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("Entry is not JSON: %v", err)
	}
	if got := entry[MessageKey]; got != "scan complete" {
		t.Errorf("Message: got %v, want %q", got, "scan complete")
	}
	if got := entry["file"]; got != "a.json" {
		t.Errorf("file: got %v, want a.json", got)
	}
	if _, ok := entry[TimeStampKey]; !ok {
		t.Errorf("Entry has no %q field", TimeStampKey)
	}
}

func TestNewVerbose(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, -1).V(1).Info("traced")
	if !strings.Contains(buf.String(), "traced") {
		t.Errorf("V(1) entry missing at level -1: %q", buf.String())
	}
}

func TestContext(t *testing.T) {
	ctx := context.Background()
	log := New(&bytes.Buffer{}, 0)

	c1 := WithLogger(ctx, &log)
	if got := FromContext(c1); got != &log {
		t.Errorf("FromContext: got %p, want %p", got, &log)
	}
	if c2 := WithLogger(c1, &log); c2 != c1 {
		t.Error("WithLogger with the same logger should return the same context")
	}
	if got := FromContext(ctx); got == nil {
		t.Error("FromContext without a logger returned nil")
	}
}

func TestIsIgnorableSyncError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{syscall.ENOTTY, true},
		{fmt.Errorf("sync /dev/stderr: %w", syscall.EINVAL), true},
		{syscall.EBADF, true},
		{errors.New("disk on fire"), false},
	}
	for _, test := range tests {
		if got := isIgnorableSyncError(test.err); got != test.want {
			t.Errorf("isIgnorableSyncError(%v): got %v, want %v", test.err, got, test.want)
		}
	}
}
