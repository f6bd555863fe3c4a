package persistence

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileActivityLogAppendAndList(t *testing.T) {
	t.Parallel()

	log := NewFileActivityLog(filepath.Join(t.TempDir(), "login_activity.txt"))
	ctx := context.Background()

	records := []LoginRecord{
		{Username: "jellis", At: time.Date(2026, time.March, 9, 12, 0, 0, 0, time.UTC), Successful: true},
		{Username: "stranger", At: time.Date(2026, time.March, 9, 12, 1, 0, 0, time.UTC), Successful: false},
	}
	for _, record := range records {
		if err := log.Append(ctx, record); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	listed, err := log.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("len(listed) = %d, want 2", len(listed))
	}
	if listed[0].Username != "jellis" || !listed[0].Successful {
		t.Errorf("first record = %+v, want successful jellis entry", listed[0])
	}
	if listed[1].Username != "stranger" || listed[1].Successful {
		t.Errorf("second record = %+v, want failed stranger entry", listed[1])
	}
	if !listed[0].At.Equal(records[0].At) {
		t.Errorf("first record time = %v, want %v", listed[0].At, records[0].At)
	}
}

func TestFileActivityLogMissingFile(t *testing.T) {
	t.Parallel()

	log := NewFileActivityLog(filepath.Join(t.TempDir(), "absent.txt"))

	listed, err := log.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("len(listed) = %d, want 0", len(listed))
	}
}

func TestFileActivityLogSkipsMalformedLines(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "login_activity.txt")
	content := "garbage line\n2026-03-09T12:00:00Z\tjellis\tsuccess\nnot\tenough\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	log := NewFileActivityLog(path)

	listed, err := log.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("len(listed) = %d, want 1", len(listed))
	}
	if listed[0].Username != "jellis" {
		t.Errorf("username = %q, want %q", listed[0].Username, "jellis")
	}
}
