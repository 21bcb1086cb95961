package image

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	httputil "github.com/jmylchreest/ferret/internal/util/http"
)

func encodePNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, encodePNG(t, 4, 4, color.RGBA{R: 200, A: 255}), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFileLoader(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "wall.png")
	writePNG(t, good)
	bad := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	img, err := NewFileLoader().Load(context.Background(), good)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if img.Bounds().Dx() != 4 {
		t.Errorf("width = %d, want 4", img.Bounds().Dx())
	}

	for name, path := range map[string]string{"empty": "", "missing": filepath.Join(dir, "nope.png"), "directory": dir, "undecodable": bad} {
		if _, err := NewFileLoader().Load(context.Background(), path); err == nil {
			t.Errorf("%s: Load() expected error", name)
		}
	}
}

func TestSmartLoaderURL(t *testing.T) {
	payload := encodePNG(t, 2, 3, color.White)
	var fetched string
	l := NewSmartLoader()
	l.fetch = func(_ context.Context, url string, _ httputil.FetchOptions) ([]byte, error) {
		fetched = url
		if strings.HasSuffix(url, "broken") {
			return nil, errors.New("boom")
		}
		return payload, nil
	}

	img, err := l.Load(context.Background(), "https://example.com/wall.png")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if fetched != "https://example.com/wall.png" || img.Bounds().Dy() != 3 {
		t.Errorf("fetched %q, bounds %v", fetched, img.Bounds())
	}

	if _, err := l.Load(context.Background(), "https://example.com/broken"); err == nil {
		t.Error("Load() expected fetch error")
	}
}

func TestScanDirectoryAndResolve(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.PNG", "notes.txt"} {
		writePNG(t, filepath.Join(dir, name))
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	images, err := ScanDirectory(dir)
	if err != nil {
		t.Fatalf("ScanDirectory() error = %v", err)
	}
	if len(images) != 2 || filepath.Base(images[0]) != "a.PNG" || filepath.Base(images[1]) != "b.png" {
		t.Errorf("ScanDirectory() = %v", images)
	}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		got, err := Resolve(dir, rng)
		if err != nil {
			t.Fatalf("Resolve(dir) error = %v", err)
		}
		if filepath.Ext(got) == ".txt" || !filepath.IsAbs(got) {
			t.Errorf("Resolve(dir) = %q", got)
		}
	}

	if got, _ := Resolve("https://example.com/x.jpg", rng); got != "https://example.com/x.jpg" {
		t.Errorf("Resolve(url) = %q", got)
	}
	if _, err := Resolve(filepath.Join(dir, "notes.txt"), rng); err == nil {
		t.Error("Resolve(non-image) expected error")
	}
	if _, err := ScanDirectory(t.TempDir()); err == nil {
		t.Error("ScanDirectory(empty) expected error")
	}
}

func TestThumbnail(t *testing.T) {
	tests := []struct {
		name         string
		w, h, size   int
		wantW, wantH int
	}{
		{name: "landscape", w: 1000, h: 500, size: 100, wantW: 100, wantH: 50},
		{name: "portrait", w: 300, h: 900, size: 90, wantW: 30, wantH: 90},
		{name: "small unchanged", w: 20, h: 10, size: 100, wantW: 20, wantH: 10},
		{name: "extreme ratio", w: 5000, h: 2, size: 100, wantW: 100, wantH: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewRGBA(image.Rect(0, 0, tt.w, tt.h))
			got := Thumbnail(img, tt.size).Bounds()
			if got.Dx() != tt.wantW || got.Dy() != tt.wantH {
				t.Errorf("Thumbnail() = %dx%d, want %dx%d", got.Dx(), got.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}
