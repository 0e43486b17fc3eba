package assets

import (
	"SolarSystem/internal/loader"
	"SolarSystem/internal/logger"
	"SolarSystem/internal/renderer"
	"SolarSystem/internal/scene"
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
)

// ErrAssetLoad wraps any failure to read, parse or upload a model.
var ErrAssetLoad = errors.New("asset load failed")

// Store resolves model paths against a base directory, parses them and
// uploads them once. Repeated loads of the same path share one model.
type Store struct {
	baseDir  string
	textures *renderer.TextureManager
	options  loader.Options
	models   map[string]*renderer.Model
	order    []string

	upload  func(*renderer.Model, *renderer.TextureManager) error
	release func(*renderer.Model, *renderer.TextureManager)
}

func NewStore(baseDir string, textures *renderer.TextureManager) *Store {
	return &Store{
		baseDir:  baseDir,
		textures: textures,
		options:  loader.DefaultOptions,
		models:   make(map[string]*renderer.Model),
		upload:   renderer.Upload,
		release:  (*renderer.Model).Delete,
	}
}

// Path returns rel resolved against the base directory.
func (s *Store) Path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(s.baseDir, rel)
}

// Load returns the uploaded model at rel.
func (s *Store) Load(rel string) (*renderer.Model, error) {
	path := s.Path(rel)
	if model, ok := s.models[path]; ok {
		return model, nil
	}

	model, err := loader.LoadModel(path, s.options)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrAssetLoad, path, err)
	}
	if err := s.upload(model, s.textures); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrAssetLoad, path, err)
	}

	min, max := model.Bounds()
	logger.Log.Info("Asset ready",
		zap.String("path", path),
		zap.Int("vertices", model.VertexCount()),
		zap.Int("groups", len(model.MaterialGroups)),
		zap.Float32s("min", min[:]),
		zap.Float32s("max", max[:]))

	s.models[path] = model
	s.order = append(s.order, path)
	return model, nil
}

// LoadMeshes loads one model per body. It stops at the first failure.
func (s *Store) LoadMeshes(paths [scene.BodyCount]string) (renderer.Meshes, error) {
	var meshes renderer.Meshes
	for id, rel := range paths {
		model, err := s.Load(rel)
		if err != nil {
			return meshes, fmt.Errorf("%s: %w", scene.BodyID(id), err)
		}
		meshes[id] = model
	}
	logger.Log.Info("Meshes loaded", zap.Int("models", s.Len()))
	return meshes, nil
}

func (s *Store) Len() int {
	return len(s.models)
}

// Close releases every model in reverse load order, then frees whatever
// textures are still referenced.
func (s *Store) Close() {
	for i := len(s.order) - 1; i >= 0; i-- {
		s.release(s.models[s.order[i]], s.textures)
	}
	s.models = make(map[string]*renderer.Model)
	s.order = nil
	s.textures.LogStats()
	s.textures.Clear()
}
