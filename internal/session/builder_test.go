package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"audiorr/internal/models"
)

// TestNewSessionLayout tests the created directory layout.
func TestNewSessionLayout(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	at := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

	s, err := NewSession(base, at)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	if s.ID != "download_session_20250314_150926" {
		t.Errorf("session ID = %q", s.ID)
	}

	for _, d := range []string{s.Dir, s.DownloadDir, s.MetadataDir} {
		info, err := os.Stat(d)
		if err != nil {
			t.Fatalf("missing session directory %q: %v", d, err)
		}
		if !info.IsDir() {
			t.Errorf("%q is not a directory", d)
		}
	}
}

// TestNewSessionIdempotent tests that re-creating the same session does not
// destroy existing downloaded files.
func TestNewSessionIdempotent(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	at := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

	s1, err := NewSession(base, at)
	if err != nil {
		t.Fatalf("first NewSession: %v", err)
	}

	marker := filepath.Join(s1.DownloadDir, "existing.flac")
	if err := os.WriteFile(marker, []byte("audio"), 0o644); err != nil {
		t.Fatalf("writing marker file: %v", err)
	}

	s2, err := NewSession(base, at)
	if err != nil {
		t.Fatalf("second NewSession: %v", err)
	}
	if s2.Dir != s1.Dir {
		t.Fatalf("session dirs differ: %q vs %q", s2.Dir, s1.Dir)
	}

	data, err := os.ReadFile(marker)
	if err != nil {
		t.Fatalf("marker file lost after re-creation: %v", err)
	}
	if string(data) != "audio" {
		t.Errorf("marker content changed: %q", data)
	}
}

// TestNewSessionUnwritableBase tests the fatal filesystem error path.
func TestNewSessionUnwritableBase(t *testing.T) {
	t.Parallel()

	if os.Geteuid() == 0 {
		t.Skip("running as root, permission bits are not enforced")
	}

	base := t.TempDir()
	if err := os.Chmod(base, 0o555); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(base, 0o755) })

	if _, err := NewSession(base, time.Now()); err == nil {
		t.Fatal("expected error for unwritable base directory")
	}
}

// TestSummarizeCounts tests the aggregation invariant.
func TestSummarizeCounts(t *testing.T) {
	t.Parallel()

	s := &models.Session{
		ID:        "download_session_20250314_150926",
		SourceURL: "https://www.youtube.com/@creator",
		Kind:      models.KindChannel,
	}
	s.AppendResult(models.VideoResult{URL: "https://youtu.be/aaa", Success: true, OutputPath: "/tmp/aaa.flac"})
	s.AppendResult(models.VideoResult{URL: "https://youtu.be/bbb", Success: false, Err: "video unavailable"})
	s.AppendResult(models.VideoResult{URL: "https://youtu.be/ccc", Success: true, OutputPath: "/tmp/ccc.flac"})

	sum := Summarize(s)

	if sum.TotalAttempted != len(s.Results) {
		t.Errorf("TotalAttempted = %d, want %d", sum.TotalAttempted, len(s.Results))
	}
	if sum.Succeeded+sum.Failed != sum.TotalAttempted {
		t.Errorf("succeeded (%d) + failed (%d) != attempted (%d)", sum.Succeeded, sum.Failed, sum.TotalAttempted)
	}
	if len(sum.OutputFiles) != 2 {
		t.Errorf("OutputFiles = %v", sum.OutputFiles)
	}
	if sum.Failures["https://youtu.be/bbb"] != "video unavailable" {
		t.Errorf("failure message missing: %v", sum.Failures)
	}
}

// TestWriteSummary tests that the summary file lands in the session root.
func TestWriteSummary(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	s, err := NewSession(base, time.Now())
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	s.AppendResult(models.VideoResult{URL: "https://youtu.be/aaa", Success: true})

	if err := WriteSummary(s, Summarize(s)); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}

	if _, err := os.Stat(filepath.Join(s.Dir, "download_results.json")); err != nil {
		t.Errorf("download_results.json not written: %v", err)
	}
}
