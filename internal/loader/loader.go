package loader

import (
	"SolarSystem/internal/logger"
	"SolarSystem/internal/renderer"
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// ErrMalformed is returned for any line the parser cannot make sense of.
var ErrMalformed = errors.New("malformed model file")

// DefaultMaterialName is used for faces that appear before any usemtl.
const DefaultMaterialName = "default"

type Options struct {
	// FlipUVs stores v as 1-v so image row 0 maps to the top of the mesh.
	FlipUVs bool
	// RecalculateNormals ignores vn data and smooths normals from the faces.
	RecalculateNormals bool
}

// DefaultOptions matches what the scene's assets expect.
var DefaultOptions = Options{FlipUVs: true}

// FaceVertex is one corner of a face, with zero-based indices into the
// position, texcoord and normal lists. -1 marks an absent texcoord or normal.
type FaceVertex struct {
	VertexIdx   int32
	TexCoordIdx int32
	NormalIdx   int32
}

type objData struct {
	positions []mgl32.Vec3
	texCoords []mgl32.Vec2
	normals   []mgl32.Vec3

	materials     map[string]*renderer.Material
	materialOrder []string
	// corners per material, three per triangle, in file order
	corners map[string][]FaceVertex
}

func (d *objData) addCorners(material string, corners []FaceVertex) {
	if _, seen := d.corners[material]; !seen {
		d.materialOrder = append(d.materialOrder, material)
	}
	d.corners[material] = append(d.corners[material], corners...)
}

// LoadModel parses a Wavefront OBJ file and its material libraries into a
// CPU-side model. Faces are grouped by material so each material is one
// contiguous index range.
func LoadModel(filename string, opts Options) (*renderer.Model, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data := &objData{
		materials: make(map[string]*renderer.Material),
		corners:   make(map[string][]FaceVertex),
	}
	currentMaterial := DefaultMaterialName

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 || strings.HasPrefix(parts[0], "#") {
			continue
		}
		switch parts[0] {
		case "v":
			v, err := parseVec3(parts[1:])
			if err != nil {
				return nil, lineError(filename, lineNo, err)
			}
			data.positions = append(data.positions, v)
		case "vn":
			n, err := parseVec3(parts[1:])
			if err != nil {
				return nil, lineError(filename, lineNo, err)
			}
			data.normals = append(data.normals, n)
		case "vt":
			uv, err := parseTextureCoordinate(parts[1:])
			if err != nil {
				return nil, lineError(filename, lineNo, err)
			}
			if opts.FlipUVs {
				uv[1] = 1 - uv[1]
			}
			data.texCoords = append(data.texCoords, uv)
		case "f":
			face, err := parseFace(parts[1:], len(data.positions), len(data.texCoords), len(data.normals))
			if err != nil {
				return nil, lineError(filename, lineNo, err)
			}
			data.addCorners(currentMaterial, Triangulate(face))
		case "mtllib":
			for _, lib := range parts[1:] {
				mtlPath := filepath.Join(filepath.Dir(filename), lib)
				materials, err := LoadMaterials(mtlPath)
				if errors.Is(err, os.ErrNotExist) {
					logger.Log.Warn("Material library not found", zap.String("path", mtlPath))
					continue
				}
				if err != nil {
					return nil, err
				}
				for name, mat := range materials {
					data.materials[name] = mat
				}
			}
		case "usemtl":
			if len(parts) < 2 {
				return nil, lineError(filename, lineNo, fmt.Errorf("usemtl without a name"))
			}
			currentMaterial = parts[1]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	model := build(data, opts)
	model.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	model.SourcePath = filename

	logger.Log.Info("Model loaded",
		zap.String("path", filename),
		zap.Int("positions", len(data.positions)),
		zap.Int("vertices", model.VertexCount()),
		zap.Int("triangles", model.TriangleCount()),
		zap.Int("materials", len(model.MaterialGroups)))
	return model, nil
}

func lineError(filename string, lineNo int, err error) error {
	return fmt.Errorf("%w: %s:%d: %v", ErrMalformed, filename, lineNo, err)
}

type vertexKey struct {
	v, vt, vn int32
}

// build unifies v/vt/vn triplets into one interleaved vertex each and lays
// the index buffer out material by material.
func build(data *objData, opts Options) *renderer.Model {
	model := &renderer.Model{}

	var smooth []mgl32.Vec3
	if opts.RecalculateNormals || missingNormals(data) {
		smooth = RecalculateNormals(data.positions, data.corners, data.materialOrder)
	}

	vertexMap := make(map[vertexKey]uint32)
	for _, name := range data.materialOrder {
		corners := data.corners[name]
		start := int32(len(model.Indices))

		for _, c := range corners {
			key := vertexKey{c.VertexIdx, c.TexCoordIdx, c.NormalIdx}
			if opts.RecalculateNormals {
				key.vn = -1
			}
			if idx, ok := vertexMap[key]; ok {
				model.Indices = append(model.Indices, idx)
				continue
			}

			idx := uint32(model.VertexCount())
			vertexMap[key] = idx

			p := data.positions[key.v]
			uv := mgl32.Vec2{0, 0}
			if key.vt >= 0 {
				uv = data.texCoords[key.vt]
			}
			var n mgl32.Vec3
			if key.vn >= 0 {
				n = data.normals[key.vn]
			} else {
				n = smooth[key.v]
			}
			model.InterleavedData = append(model.InterleavedData,
				p[0], p[1], p[2],
				uv[0], uv[1],
				n[0], n[1], n[2])
			model.Indices = append(model.Indices, idx)
		}

		material, ok := data.materials[name]
		if !ok {
			if name != DefaultMaterialName {
				logger.Log.Warn("Material not found, using default", zap.String("material", name))
			}
			material = renderer.NewMaterial(name)
			data.materials[name] = material
		}
		model.MaterialGroups = append(model.MaterialGroups, renderer.MaterialGroup{
			Material:   material,
			IndexStart: start,
			IndexCount: int32(len(model.Indices)) - start,
		})
	}
	return model
}

func missingNormals(data *objData) bool {
	for _, corners := range data.corners {
		for _, c := range corners {
			if c.NormalIdx < 0 {
				return true
			}
		}
	}
	return false
}

// RecalculateNormals averages the face normals around each position.
// Positions used by no face, or only by degenerate faces, get +Y.
func RecalculateNormals(positions []mgl32.Vec3, corners map[string][]FaceVertex, order []string) []mgl32.Vec3 {
	sums := make([]mgl32.Vec3, len(positions))
	for _, name := range order {
		tris := corners[name]
		for i := 0; i+2 < len(tris); i += 3 {
			i0, i1, i2 := tris[i].VertexIdx, tris[i+1].VertexIdx, tris[i+2].VertexIdx
			v0, v1, v2 := positions[i0], positions[i1], positions[i2]
			// unnormalised so larger faces weigh more
			n := v1.Sub(v0).Cross(v2.Sub(v0))
			sums[i0] = sums[i0].Add(n)
			sums[i1] = sums[i1].Add(n)
			sums[i2] = sums[i2].Add(n)
		}
	}

	normals := make([]mgl32.Vec3, len(positions))
	for i, s := range sums {
		if s.Len() < 1e-12 {
			normals[i] = mgl32.Vec3{0, 1, 0}
			continue
		}
		normals[i] = s.Normalize()
	}
	return normals
}

// Triangulate fans a polygon out from its first corner. Quads become
// (0,1,2)(0,2,3); triangles pass through.
func Triangulate(face []FaceVertex) []FaceVertex {
	if len(face) == 3 {
		return face
	}
	triangulated := make([]FaceVertex, 0, (len(face)-2)*3)
	for i := 1; i < len(face)-1; i++ {
		triangulated = append(triangulated, face[0], face[i], face[i+1])
	}
	return triangulated
}

// LoadMaterials parses an MTL file. Texture paths are resolved against the
// MTL file's directory.
func LoadMaterials(filename string) (map[string]*renderer.Material, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	dir := filepath.Dir(filename)
	materials := make(map[string]*renderer.Material)
	var current *renderer.Material

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if fields[0] == "newmtl" {
			if len(fields) < 2 {
				return nil, lineError(filename, lineNo, fmt.Errorf("newmtl without a name"))
			}
			current = renderer.NewMaterial(fields[1])
			materials[fields[1]] = current
			continue
		}
		if current == nil {
			continue
		}

		switch fields[0] {
		case "Kd":
			c, err := parseColor(fields[1:])
			if err != nil {
				return nil, lineError(filename, lineNo, err)
			}
			current.DiffuseColor = c
		case "Ks":
			c, err := parseColor(fields[1:])
			if err != nil {
				return nil, lineError(filename, lineNo, err)
			}
			current.SpecularColor = c
		case "Ns":
			if len(fields) != 2 {
				return nil, lineError(filename, lineNo, fmt.Errorf("Ns wants one value"))
			}
			ns, err := parseFloat(fields[1])
			if err != nil {
				return nil, lineError(filename, lineNo, err)
			}
			current.Shininess = ns
		case "map_Kd":
			if len(fields) >= 2 {
				current.DiffuseMap = resolveTexture(dir, fields[len(fields)-1])
			}
		case "map_Ks":
			if len(fields) >= 2 {
				current.SpecularMap = resolveTexture(dir, fields[len(fields)-1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return materials, nil
}

// resolveTexture takes the last field, since map options come first.
func resolveTexture(dir, texturePath string) string {
	texturePath = filepath.FromSlash(strings.ReplaceAll(texturePath, `\`, "/"))
	if filepath.IsAbs(texturePath) {
		return texturePath
	}
	return filepath.Join(dir, texturePath)
}

func parseColor(fields []string) ([3]float32, error) {
	var color [3]float32
	if len(fields) < 3 {
		return color, fmt.Errorf("colour wants three components, got %d", len(fields))
	}
	for i := 0; i < 3; i++ {
		f, err := parseFloat(fields[i])
		if err != nil {
			return color, err
		}
		color[i] = f
	}
	return color, nil
}

func parseFloat(s string) (float32, error) {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return float32(f), nil
}

// parseVec3 reads x y z and ignores an optional w.
func parseVec3(parts []string) (mgl32.Vec3, error) {
	var v mgl32.Vec3
	if len(parts) < 3 {
		return v, fmt.Errorf("want 3 components, got %d", len(parts))
	}
	for i := 0; i < 3; i++ {
		f, err := parseFloat(parts[i])
		if err != nil {
			return v, err
		}
		v[i] = f
	}
	return v, nil
}

// parseTextureCoordinate reads u and an optional v; w is ignored.
func parseTextureCoordinate(parts []string) (mgl32.Vec2, error) {
	var uv mgl32.Vec2
	if len(parts) < 1 {
		return uv, fmt.Errorf("texture coordinate without components")
	}
	for i := 0; i < len(parts) && i < 2; i++ {
		f, err := parseFloat(parts[i])
		if err != nil {
			return uv, err
		}
		uv[i] = f
	}
	return uv, nil
}

func parseFace(parts []string, nv, nvt, nvn int) ([]FaceVertex, error) {
	if len(parts) < 3 {
		return nil, fmt.Errorf("face needs at least 3 corners, got %d", len(parts))
	}
	face := make([]FaceVertex, 0, len(parts))
	for _, part := range parts {
		vals := strings.Split(part, "/")
		if len(vals) > 3 {
			return nil, fmt.Errorf("bad face corner %q", part)
		}

		vertexIdx, err := resolveIndex(vals[0], nv)
		if err != nil {
			return nil, err
		}

		texCoordIdx := int32(-1)
		if len(vals) > 1 && vals[1] != "" {
			if texCoordIdx, err = resolveIndex(vals[1], nvt); err != nil {
				return nil, err
			}
		}

		normalIdx := int32(-1)
		if len(vals) > 2 && vals[2] != "" {
			if normalIdx, err = resolveIndex(vals[2], nvn); err != nil {
				return nil, err
			}
		}

		face = append(face, FaceVertex{
			VertexIdx:   vertexIdx,
			TexCoordIdx: texCoordIdx,
			NormalIdx:   normalIdx,
		})
	}
	return face, nil
}

// resolveIndex turns a one-based OBJ index, or a negative index counted
// back from the current end of the list, into a zero-based index.
func resolveIndex(s string, count int) (int32, error) {
	i, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", s)
	}
	var idx int64
	switch {
	case i > 0:
		idx = i - 1
	case i < 0:
		idx = int64(count) + i
	default:
		return 0, fmt.Errorf("index 0 is not valid")
	}
	if idx < 0 || idx >= int64(count) {
		return 0, fmt.Errorf("index %d out of range (have %d)", i, count)
	}
	return int32(idx), nil
}
