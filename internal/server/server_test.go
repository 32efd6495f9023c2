package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fsnotify/fsnotify"

	apperrors "github.com/matzehuels/gitlanes/pkg/errors"
)

func TestShouldIgnoreEvent(t *testing.T) {
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{
			name:  "ref update",
			event: fsnotify.Event{Name: "/repo/.git/refs/heads/main", Op: fsnotify.Write},
			want:  false,
		},
		{
			name:  "head move",
			event: fsnotify.Event{Name: "/repo/.git/HEAD", Op: fsnotify.Create},
			want:  false,
		},
		{
			name:  "lock file",
			event: fsnotify.Event{Name: "/repo/.git/index.lock", Op: fsnotify.Create},
			want:  true,
		},
		{
			name:  "object write",
			event: fsnotify.Event{Name: "/repo/.git/objects/ab/cdef", Op: fsnotify.Create},
			want:  true,
		},
		{
			name:  "chmod only",
			event: fsnotify.Event{Name: "/repo/.git/HEAD", Op: fsnotify.Chmod},
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shouldIgnoreEvent(tt.event); got != tt.want {
				t.Errorf("shouldIgnoreEvent(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func TestWriteErrorStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, fmt.Errorf("plain failure"))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
	if !strings.Contains(rec.Body.String(), "plain failure") {
		t.Errorf("body = %q, want error message", rec.Body.String())
	}
}

func TestWriteErrorMapsCodes(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, apperrors.New(apperrors.ErrCodeSnapshotNotFound, "no such snapshot"))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "SNAPSHOT_NOT_FOUND") {
		t.Errorf("body = %q, want machine-readable code", rec.Body.String())
	}
}
