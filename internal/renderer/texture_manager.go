package renderer

import (
	"SolarSystem/internal/logger"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Fallback picks the 1x1 texture bound when a material has no map.
type Fallback int

const (
	FallbackWhite Fallback = iota // diffuse maps
	FallbackBlack                 // specular maps: no highlight
)

func (f Fallback) key() string {
	if f == FallbackBlack {
		return "fallback:black"
	}
	return "fallback:white"
}

func (f Fallback) image() image.Image {
	c := color.RGBA{255, 255, 255, 255}
	if f == FallbackBlack {
		c = color.RGBA{0, 0, 0, 255}
	}
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, c)
	return img
}

// TextureStats provides debugging and profiling information
type TextureStats struct {
	TotalTextures  int
	CacheHits      int
	CacheMisses    int
	ActiveTextures int
}

// TextureManager caches GL textures by path and reference-counts them so
// models sharing a map share one texture object. It is used from the render
// thread only.
type TextureManager struct {
	textureCache    map[string]uint32 // path -> OpenGL texture ID
	textureRefCount map[uint32]int    // texture ID -> reference count
	texturePaths    map[uint32]string // texture ID -> path
	stats           TextureStats

	upload func(img *image.RGBA) uint32
	free   func(textureID uint32)
}

func NewTextureManager() *TextureManager {
	return &TextureManager{
		textureCache:    make(map[string]uint32),
		textureRefCount: make(map[uint32]int),
		texturePaths:    make(map[uint32]string),
		upload:          uploadRGBA,
		free:            deleteTexture,
	}
}

// DecodeImage reads any registered format (png, jpeg, bmp, tiff) into RGBA.
func DecodeImage(filePath string) (*image.RGBA, error) {
	imgFile, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer imgFile.Close()

	img, _, err := image.Decode(imgFile)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filePath, err)
	}
	return toRGBA(img), nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == rgba.Rect.Dx()*4 && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

func uploadRGBA(rgba *image.RGBA) uint32 {
	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.BindTexture(gl.TEXTURE_2D, textureID)
	gl.TexImage2D(
		gl.TEXTURE_2D, 0, gl.RGBA,
		int32(rgba.Rect.Size().X), int32(rgba.Rect.Size().Y),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	return textureID
}

// LoadTexture loads a texture from file or returns the cached texture ID.
// Every successful call adds a reference.
func (tm *TextureManager) LoadTexture(filePath string) (uint32, error) {
	if textureID, ok := tm.cached(filePath); ok {
		return textureID, nil
	}

	rgba, err := DecodeImage(filePath)
	if err != nil {
		return 0, err
	}
	textureID := tm.store(filePath, rgba)

	logger.Log.Info("Texture loaded",
		zap.String("path", filePath),
		zap.Uint32("textureID", textureID),
		zap.Int("width", rgba.Rect.Dx()),
		zap.Int("height", rgba.Rect.Dy()))

	return textureID, nil
}

// LoadOrFallback loads filePath, or the fallback texture when the path is empty.
func (tm *TextureManager) LoadOrFallback(filePath string, fallback Fallback) (uint32, error) {
	if filePath != "" {
		return tm.LoadTexture(filePath)
	}
	return tm.CreateTextureFromImage(fallback.image(), fallback.key()), nil
}

// CreateTextureFromImage uploads an in-memory image, cached under name.
func (tm *TextureManager) CreateTextureFromImage(img image.Image, name string) uint32 {
	if textureID, ok := tm.cached(name); ok {
		return textureID
	}
	textureID := tm.store(name, toRGBA(img))

	logger.Log.Debug("Texture created from image",
		zap.String("name", name),
		zap.Uint32("textureID", textureID))
	return textureID
}

func (tm *TextureManager) cached(key string) (uint32, bool) {
	textureID, exists := tm.textureCache[key]
	if !exists {
		return 0, false
	}
	tm.textureRefCount[textureID]++
	tm.stats.CacheHits++

	logger.Log.Debug("Texture cache hit",
		zap.String("path", key),
		zap.Uint32("textureID", textureID),
		zap.Int("refCount", tm.textureRefCount[textureID]))
	return textureID, true
}

func (tm *TextureManager) store(key string, rgba *image.RGBA) uint32 {
	tm.stats.CacheMisses++
	textureID := tm.upload(rgba)

	tm.textureCache[key] = textureID
	tm.textureRefCount[textureID] = 1
	tm.texturePaths[textureID] = key
	tm.stats.TotalTextures++
	return textureID
}

// ReleaseTexture decrements reference count and frees texture if count reaches 0
func (tm *TextureManager) ReleaseTexture(textureID uint32) {
	if textureID == 0 {
		return
	}

	refCount, exists := tm.textureRefCount[textureID]
	if !exists {
		logger.Log.Warn("Attempted to release unknown texture",
			zap.Uint32("textureID", textureID))
		return
	}

	refCount--
	tm.textureRefCount[textureID] = refCount
	if refCount > 0 {
		return
	}

	tm.free(textureID)
	path := tm.texturePaths[textureID]
	delete(tm.textureCache, path)
	delete(tm.textureRefCount, textureID)
	delete(tm.texturePaths, textureID)

	logger.Log.Debug("Texture freed",
		zap.Uint32("textureID", textureID),
		zap.String("path", path))
}

func deleteTexture(textureID uint32) {
	gl.DeleteTextures(1, &textureID)
}

// GetStats returns current texture manager statistics
func (tm *TextureManager) GetStats() TextureStats {
	stats := tm.stats
	stats.ActiveTextures = len(tm.textureRefCount)
	return stats
}

// LogStats logs current texture statistics
func (tm *TextureManager) LogStats() {
	stats := tm.GetStats()
	hitRate := 0.0
	if lookups := stats.CacheHits + stats.CacheMisses; lookups > 0 {
		hitRate = float64(stats.CacheHits) / float64(lookups)
	}
	logger.Log.Info("Texture Manager Stats",
		zap.Int("totalTextures", stats.TotalTextures),
		zap.Int("activeTextures", stats.ActiveTextures),
		zap.Int("cacheHits", stats.CacheHits),
		zap.Int("cacheMisses", stats.CacheMisses),
		zap.Float64("hitRate", hitRate))
}

// Clear releases all textures
func (tm *TextureManager) Clear() {
	for textureID := range tm.textureRefCount {
		tm.free(textureID)
	}

	tm.textureCache = make(map[string]uint32)
	tm.textureRefCount = make(map[uint32]int)
	tm.texturePaths = make(map[uint32]string)
}
