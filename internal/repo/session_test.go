package repo

import (
	"path/filepath"
	"testing"
	"time"

	"audiorr/internal/database/db"
	"audiorr/internal/models"
)

func newTestStore(t *testing.T) *SessionStore {
	t.Helper()

	d, err := db.InitDB(filepath.Join(t.TempDir(), "audiorr.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { _ = d.DB.Close() })

	return GetSessionStore(d.DB)
}

// TestSessionRoundTrip tests inserting, finishing and reading a session.
func TestSessionRoundTrip(t *testing.T) {
	t.Parallel()

	ss := newTestStore(t)
	now := time.Now().UTC().Truncate(time.Second)

	rec := &models.SessionRecord{
		ID:        "download_session_20250314_150926",
		Dir:       "/tmp/out/download_session_20250314_150926",
		SourceURL: "https://www.youtube.com/@creator",
		Kind:      models.KindChannel,
		CreatedAt: now,
	}
	if err := ss.AddSession(rec); err != nil {
		t.Fatalf("AddSession: %v", err)
	}

	results := []models.VideoResult{
		{URL: "https://youtu.be/aaa", VideoID: "aaa", Success: true, OutputPath: "/tmp/aaa.flac"},
		{URL: "https://youtu.be/bbb", Success: false, Err: "video unavailable"},
	}
	if err := ss.AddVideoResults(rec.ID, results); err != nil {
		t.Fatalf("AddVideoResults: %v", err)
	}

	rec.TotalAttempted = 2
	rec.Succeeded = 1
	rec.Failed = 1
	rec.FinishedAt = now.Add(time.Minute)
	if err := ss.FinishSession(rec); err != nil {
		t.Fatalf("FinishSession: %v", err)
	}

	got, found, err := ss.GetSession(rec.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if !found {
		t.Fatal("session not found after insert")
	}
	if got.TotalAttempted != 2 || got.Succeeded != 1 || got.Failed != 1 {
		t.Errorf("counts = %d/%d/%d, want 2/1/1", got.TotalAttempted, got.Succeeded, got.Failed)
	}
	if got.TotalAttempted != got.Succeeded+got.Failed {
		t.Error("count invariant violated")
	}

	gotResults, err := ss.GetSessionResults(rec.ID)
	if err != nil {
		t.Fatalf("GetSessionResults: %v", err)
	}
	if len(gotResults) != 2 {
		t.Fatalf("got %d results, want 2", len(gotResults))
	}
	if gotResults[0].URL != results[0].URL || !gotResults[0].Success {
		t.Errorf("first result = %+v", gotResults[0])
	}
	if gotResults[1].Err != "video unavailable" {
		t.Errorf("second result error = %q", gotResults[1].Err)
	}
}

// TestGetSessionMissing tests the not-found path.
func TestGetSessionMissing(t *testing.T) {
	t.Parallel()

	ss := newTestStore(t)

	_, found, err := ss.GetSession("download_session_19700101_000000")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if found {
		t.Error("expected found=false for missing session")
	}
}

// TestListSessions tests ordering and limiting.
func TestListSessions(t *testing.T) {
	t.Parallel()

	ss := newTestStore(t)
	base := time.Now().UTC().Truncate(time.Second)

	for i := 0; i < 3; i++ {
		rec := &models.SessionRecord{
			ID:        "download_session_2025031" + string(rune('0'+i)) + "_000000",
			Dir:       "/tmp/out",
			SourceURL: "https://youtu.be/aaa",
			Kind:      models.KindVideo,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		if err := ss.AddSession(rec); err != nil {
			t.Fatalf("AddSession #%d: %v", i, err)
		}
	}

	recs, err := ss.ListSessions(2)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d sessions, want 2", len(recs))
	}
	if !recs[0].CreatedAt.After(recs[1].CreatedAt) {
		t.Errorf("sessions not sorted newest first: %v then %v", recs[0].CreatedAt, recs[1].CreatedAt)
	}
}
