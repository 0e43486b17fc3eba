package renderer

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func newFakeTextureManager() (*TextureManager, *[]uint32) {
	tm := NewTextureManager()
	next := uint32(0)
	freed := []uint32{}
	tm.upload = func(*image.RGBA) uint32 {
		next++
		return next
	}
	tm.free = func(id uint32) {
		freed = append(freed, id)
	}
	return tm, &freed
}

func writeImage(t *testing.T, path string, encode func(f *os.File, img image.Image) error) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 3))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.NRGBA{128, 128, 128, 255}), image.Point{}, draw.Src)
	img.Set(1, 2, color.NRGBA{10, 20, 30, 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestDecodeImageFormats(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]func(f *os.File, img image.Image) error{
		"map.png": func(f *os.File, img image.Image) error { return png.Encode(f, img) },
		"map.bmp": func(f *os.File, img image.Image) error { return bmp.Encode(f, img) },
	}
	for name, encode := range cases {
		path := filepath.Join(dir, name)
		writeImage(t, path, encode)

		rgba, err := DecodeImage(path)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if rgba.Rect.Dx() != 2 || rgba.Rect.Dy() != 3 {
			t.Errorf("%s: size = %v", name, rgba.Rect)
		}
		if got := rgba.RGBAAt(1, 2); got != (color.RGBA{10, 20, 30, 255}) {
			t.Errorf("%s: pixel = %v", name, got)
		}
	}
}

func TestDecodeImageErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := DecodeImage(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("missing file should fail")
	}
	junk := filepath.Join(dir, "junk.png")
	if err := os.WriteFile(junk, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := DecodeImage(junk); err == nil {
		t.Error("undecodable file should fail")
	}
}

func TestLoadTextureCachesAndRefCounts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "earth.png")
	writeImage(t, path, func(f *os.File, img image.Image) error { return png.Encode(f, img) })

	tm, freed := newFakeTextureManager()
	first, err := tm.LoadTexture(path)
	if err != nil {
		t.Fatal(err)
	}
	second, err := tm.LoadTexture(path)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("same path should share a texture: %d vs %d", first, second)
	}

	stats := tm.GetStats()
	if stats.CacheHits != 1 || stats.CacheMisses != 1 || stats.ActiveTextures != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}

	tm.ReleaseTexture(first)
	if len(*freed) != 0 {
		t.Error("texture freed while still referenced")
	}
	tm.ReleaseTexture(first)
	if len(*freed) != 1 || (*freed)[0] != first {
		t.Errorf("texture should be freed on last release, freed=%v", *freed)
	}
	if tm.GetStats().ActiveTextures != 0 {
		t.Error("no textures should remain active")
	}
}

func TestLoadOrFallback(t *testing.T) {
	tm, _ := newFakeTextureManager()

	white, err := tm.LoadOrFallback("", FallbackWhite)
	if err != nil {
		t.Fatal(err)
	}
	black, _ := tm.LoadOrFallback("", FallbackBlack)
	again, _ := tm.LoadOrFallback("", FallbackWhite)

	if white == black {
		t.Error("white and black fallbacks should be distinct textures")
	}
	if again != white {
		t.Error("fallback textures should be cached")
	}

	if _, err := tm.LoadOrFallback(filepath.Join(t.TempDir(), "nope.png"), FallbackWhite); err == nil {
		t.Error("a named map that cannot be read should fail, not fall back")
	}
}

func TestFallbackImages(t *testing.T) {
	white := FallbackWhite.image().(*image.RGBA).RGBAAt(0, 0)
	black := FallbackBlack.image().(*image.RGBA).RGBAAt(0, 0)
	if white != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("white fallback = %v", white)
	}
	if black != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("black fallback = %v", black)
	}
}

func TestTextureManagerClear(t *testing.T) {
	tm, freed := newFakeTextureManager()
	tm.LoadOrFallback("", FallbackWhite)
	tm.LoadOrFallback("", FallbackBlack)

	tm.Clear()

	if len(*freed) != 2 {
		t.Errorf("Clear should free every texture, freed=%v", *freed)
	}
	if tm.GetStats().ActiveTextures != 0 {
		t.Error("Clear should empty the cache")
	}
}
