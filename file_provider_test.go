package stride

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func appendFile(t *testing.T, path, data string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(data); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func receiveBatch(t *testing.T, out <-chan Batch) Batch {
	t.Helper()
	select {
	case b, ok := <-out:
		if !ok {
			t.Fatal("channel closed unexpectedly")
		}
		return b
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for batch")
	}
	return nil
}

func TestFileProvider_EmitsExistingThenAppended(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixes.jsonl")
	appendFile(t, path, `{"latitude": 0, "longitude": 0}`+"\n"+`{"latitude": 0, "longitude": 0.00001}`+"\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out, err := NewFileProvider(path).Subscribe(ctx, DefaultRequest())
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	first := receiveBatch(t, out)
	if len(first) != 2 {
		t.Fatalf("expected 2 existing fixes, got %d", len(first))
	}

	appendFile(t, path, `[{"latitude": 1, "longitude": 1}, {"latitude": 2, "longitude": 2}]`+"\n")

	second := receiveBatch(t, out)
	if len(second) != 2 || second[1].Latitude != 2 {
		t.Errorf("unexpected appended batch %+v", second)
	}
}

func TestFileProvider_MissingFile(t *testing.T) {
	_, err := NewFileProvider(filepath.Join(t.TempDir(), "missing.jsonl")).Subscribe(context.Background(), DefaultRequest())
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFileProvider_ClosesOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixes.jsonl")
	appendFile(t, path, "")

	ctx, cancel := context.WithCancel(context.Background())
	out, err := NewFileProvider(path).Subscribe(ctx, DefaultRequest())
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	cancel()

	select {
	case _, ok := <-out:
		if ok {
			t.Error("expected channel to be closed")
		}
	case <-time.After(2 * time.Second):
		t.Error("timeout waiting for close")
	}
}

func TestFileTail_HoldsPartialLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixes.jsonl")
	appendFile(t, path, `{"latitude": 1, "longitude": 1}`+"\n"+`{"latitude": 2,`)

	tail := &fileTail{path: path, codec: JSONCodec{}}
	if b := tail.next(context.Background()); len(b) != 1 {
		t.Fatalf("expected 1 complete fix, got %d", len(b))
	}

	appendFile(t, path, ` "longitude": 2}`+"\n")
	b := tail.next(context.Background())
	if len(b) != 1 || b[0].Latitude != 2 {
		t.Errorf("expected completed fix, got %+v", b)
	}
}

func TestFileTail_SkipsUndecodableLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixes.jsonl")
	appendFile(t, path, "garbage\n"+`{"lat": 51.5, "lng": -0.12}`+"\n"+`{"latitude": 3, "longitude": 3}`+"\n\n")

	tail := &fileTail{path: path, codec: JSONCodec{}}
	b := tail.next(context.Background())
	if len(b) != 1 || b[0].Latitude != 3 {
		t.Errorf("expected only the valid fix, got %+v", b)
	}
}

func TestFileTail_RestartsAfterTruncate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixes.jsonl")
	appendFile(t, path, `{"latitude": 1, "longitude": 1}`+"\n"+`{"latitude": 2, "longitude": 2}`+"\n")

	tail := &fileTail{path: path, codec: JSONCodec{}}
	if b := tail.next(context.Background()); len(b) != 2 {
		t.Fatalf("expected 2 fixes, got %d", len(b))
	}

	if err := os.WriteFile(path, []byte(`{"latitude": 9, "longitude": 9}`+"\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	b := tail.next(context.Background())
	if len(b) != 1 || b[0].Latitude != 9 {
		t.Errorf("expected fix from rewritten file, got %+v", b)
	}
}

func TestFileTail_YAMLCodec(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixes.yaml")
	appendFile(t, path, "{latitude: 4, longitude: 5}\n")

	tail := &fileTail{path: path, codec: YAMLCodec{}}
	b := tail.next(context.Background())
	if len(b) != 1 || b[0].Longitude != 5 {
		t.Errorf("unexpected batch %+v", b)
	}
}
