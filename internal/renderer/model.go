package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// FloatsPerVertex is the interleaved layout: position(3), uv(2), normal(3).
const FloatsPerVertex = 8

const (
	positionOffset = 0
	texCoordOffset = 3
	normalOffset   = 5
)

// DefaultShininess is used when a material does not set Ns.
const DefaultShininess = 32.0

type Material struct {
	DiffuseColor  [3]float32
	SpecularColor [3]float32
	Shininess     float32

	// Texture paths from map_Kd / map_Ks, already resolved against the MTL
	// directory. Empty means the fallback texture is bound.
	DiffuseMap  string
	SpecularMap string

	// GL texture IDs, filled in by Upload.
	DiffuseTexture  uint32
	SpecularTexture uint32

	Name string
}

// NewMaterial returns a white material with the default shininess.
func NewMaterial(name string) *Material {
	return &Material{
		Name:          name,
		DiffuseColor:  [3]float32{1.0, 1.0, 1.0},
		SpecularColor: [3]float32{1.0, 1.0, 1.0},
		Shininess:     DefaultShininess,
	}
}

// MaterialGroup represents a submesh with a single material
type MaterialGroup struct {
	Material   *Material
	IndexStart int32
	IndexCount int32
}

type Model struct {
	// GPU handles, zero until Upload.
	VAO uint32
	VBO uint32
	EBO uint32

	InterleavedData []float32
	Indices         []uint32
	MaterialGroups  []MaterialGroup

	Name       string
	SourcePath string
}

func (m *Model) VertexCount() int {
	return len(m.InterleavedData) / FloatsPerVertex
}

func (m *Model) TriangleCount() int {
	return len(m.Indices) / 3
}

// Position returns the position of vertex i.
func (m *Model) Position(i int) mgl32.Vec3 {
	base := i*FloatsPerVertex + positionOffset
	return mgl32.Vec3{m.InterleavedData[base], m.InterleavedData[base+1], m.InterleavedData[base+2]}
}

func (m *Model) TexCoord(i int) mgl32.Vec2 {
	base := i*FloatsPerVertex + texCoordOffset
	return mgl32.Vec2{m.InterleavedData[base], m.InterleavedData[base+1]}
}

func (m *Model) Normal(i int) mgl32.Vec3 {
	base := i*FloatsPerVertex + normalOffset
	return mgl32.Vec3{m.InterleavedData[base], m.InterleavedData[base+1], m.InterleavedData[base+2]}
}

// Bounds returns the axis-aligned box around every vertex position.
func (m *Model) Bounds() (min, max mgl32.Vec3) {
	n := m.VertexCount()
	if n == 0 {
		return
	}
	min, max = m.Position(0), m.Position(0)
	for i := 1; i < n; i++ {
		p := m.Position(i)
		for k := 0; k < 3; k++ {
			if p[k] < min[k] {
				min[k] = p[k]
			}
			if p[k] > max[k] {
				max[k] = p[k]
			}
		}
	}
	return min, max
}

// Uploaded reports whether the model has GPU buffers.
func (m *Model) Uploaded() bool {
	return m.VAO != 0
}

// Draw binds each group's diffuse map to unit 0 and specular map to unit 1
// and issues one indexed draw per group. The caller has already set the
// program's matrices and light uniforms.
func (m *Model) Draw(shader *Shader) {
	if !m.Uploaded() {
		return
	}
	shader.Use()
	gl.BindVertexArray(m.VAO)
	for _, group := range m.MaterialGroups {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, group.Material.DiffuseTexture)
		gl.ActiveTexture(gl.TEXTURE1)
		gl.BindTexture(gl.TEXTURE_2D, group.Material.SpecularTexture)

		gl.DrawElements(gl.TRIANGLES, group.IndexCount, gl.UNSIGNED_INT, gl.PtrOffset(int(group.IndexStart)*4))
	}
	gl.BindVertexArray(0)
	gl.ActiveTexture(gl.TEXTURE0)
}

// Upload creates the VAO/VBO/EBO for the model and resolves every group's
// textures through the manager. Missing maps fall back to white (diffuse)
// and black (specular). On a texture error every reference taken so far is
// dropped and no GL buffers are created.
func Upload(m *Model, textures *TextureManager) error {
	if err := m.loadTextures(textures); err != nil {
		m.releaseTextures(textures)
		return err
	}

	gl.GenVertexArrays(1, &m.VAO)
	gl.BindVertexArray(m.VAO)

	gl.GenBuffers(1, &m.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.InterleavedData)*4, gl.Ptr(m.InterleavedData), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	stride := int32(FloatsPerVertex * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(positionOffset*4))
	gl.EnableVertexAttribArray(0)

	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(texCoordOffset*4))
	gl.EnableVertexAttribArray(1)

	gl.VertexAttribPointer(2, 3, gl.FLOAT, false, stride, gl.PtrOffset(normalOffset*4))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	return nil
}

func (m *Model) loadTextures(textures *TextureManager) error {
	for _, group := range m.MaterialGroups {
		mat := group.Material
		if mat.DiffuseTexture != 0 {
			continue
		}
		id, err := textures.LoadOrFallback(mat.DiffuseMap, FallbackWhite)
		if err != nil {
			return err
		}
		mat.DiffuseTexture = id
		id, err = textures.LoadOrFallback(mat.SpecularMap, FallbackBlack)
		if err != nil {
			return err
		}
		mat.SpecularTexture = id
	}
	return nil
}

// Delete frees the GPU buffers and drops the texture references.
func (m *Model) Delete(textures *TextureManager) {
	if m.Uploaded() {
		gl.DeleteVertexArrays(1, &m.VAO)
		gl.DeleteBuffers(1, &m.VBO)
		gl.DeleteBuffers(1, &m.EBO)
		m.VAO, m.VBO, m.EBO = 0, 0, 0
	}
	m.releaseTextures(textures)
}

func (m *Model) releaseTextures(textures *TextureManager) {
	for _, group := range m.MaterialGroups {
		textures.ReleaseTexture(group.Material.DiffuseTexture)
		textures.ReleaseTexture(group.Material.SpecularTexture)
		group.Material.DiffuseTexture = 0
		group.Material.SpecularTexture = 0
	}
}
