package summarizer

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/user/stickerize/pkg/media"
	"github.com/user/stickerize/pkg/mocks"
)

func animatedEntry(input string) Entry {
	return Entry{
		Input:       input,
		Output:      strings.TrimSuffix(input, ".gif") + ".webm",
		ContentKind: media.KindGIF,
		Container:   media.ContainerWebM,
		Plan: media.EncodePlan{
			IsAnimated:      true,
			FrameCount:      180,
			DurationSeconds: 6,
			SpeedUp:         2,
			Compressed:      true,
			MaxBytes:        media.MaxSizeSticker,
		},
		FileSize: 150 * 1024,
	}
}

func sampleSummary() *Summary {
	b := NewBuilder(media.StickerRegular)
	b.Add(animatedEntry("b.gif"))
	b.Add(Entry{
		Input:       "a.png",
		Output:      "a.webp",
		ContentKind: media.KindOther,
		Container:   media.ContainerWebP,
		Plan:        media.EncodePlan{MaxBytes: media.MaxSizeSticker},
		FileSize:    300 * 1024,
		Oversize:    true,
	})
	b.Add(Entry{Input: "c|d.avif", ContentKind: media.KindAVIF, Err: errors.New("decode avif: broken")})

	s := b.Build()
	s.GeneratedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return s
}

func TestBuilder_SortsByInput(t *testing.T) {
	s := sampleSummary()
	if len(s.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(s.Entries))
	}
	for i, want := range []string{"a.png", "b.gif", "c|d.avif"} {
		if s.Entries[i].Input != want {
			t.Errorf("entry %d: expected %s, got %s", i, want, s.Entries[i].Input)
		}
	}
}

func TestBuilder_ConcurrentAdd(t *testing.T) {
	b := NewBuilder(media.StickerEmoji)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Add(animatedEntry("x.gif"))
		}()
	}
	wg.Wait()

	if n := len(b.Build().Entries); n != 50 {
		t.Errorf("expected 50 entries, got %d", n)
	}
}

func TestSummary_Counts(t *testing.T) {
	converted, oversize, failed := sampleSummary().Counts()
	if converted != 2 || oversize != 1 || failed != 1 {
		t.Errorf("unexpected counts converted=%d oversize=%d failed=%d", converted, oversize, failed)
	}
}

func TestMarkdownFormatter_Format(t *testing.T) {
	result := NewMarkdownFormatter().Format(sampleSummary())

	checks := []string{
		"# Conversion Summary",
		"2026-03-01T12:00:00Z",
		"regular",
		"2 / 3",
		"| b.gif | gif | b.webm | 180 | 6.00 s | x2.00 | 150.0 KiB / 200.0 KiB |",
		"| a.png | other | a.webp | still | - | - | 300.0 KiB / 200.0 KiB ⚠ |",
		`c\|d.avif`,
		"decode avif: broken",
	}
	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q\n%s", check, result)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{60 * 1024, "60.0 KiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestWriter_Write(t *testing.T) {
	fs := mocks.NewFileSystem()
	w := NewWriter(FormatFunc(func(s *Summary) string { return "report" }), fs)

	path := filepath.Join("reports", "summary.md")
	if err := w.Write(path, sampleSummary()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, ok := fs.GetFile(path)
	if !ok || string(data) != "report" {
		t.Errorf("expected report to be written, got %q", data)
	}
}

func TestWriter_WriteError(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFileFunc = func(path string, data []byte) error { return errors.New("disk full") }

	err := NewWriter(NewMarkdownFormatter(), fs).Write("summary.md", sampleSummary())
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("expected write error, got %v", err)
	}
}
