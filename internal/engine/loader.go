package engine

import (
	"context"
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/space3d/internal/scene"
	"github.com/philipparndt/space3d/pkg/geometry"
	"github.com/philipparndt/space3d/pkg/openscad"
	"github.com/philipparndt/space3d/pkg/stl"
)

// Model is a loaded raylib model shared by scene nodes
type Model struct {
	model rl.Model
}

// Release unloads the model from the GPU
func (m *Model) Release() {
	rl.UnloadModel(m.model)
}

// Loader resolves scene model paths to raylib models
type Loader struct{}

// Load implements scene.Loader. The sphere path yields a generated unit
// sphere, .stl and .scad files are meshed here and everything else is
// handed to raylib.
func (Loader) Load(path string) (scene.Asset, error) {
	switch {
	case path == scene.SpherePath:
		mesh := rl.GenMeshSphere(1, 16, 16)
		return &Model{model: rl.LoadModelFromMesh(mesh)}, nil
	case openscad.IsMesh(path):
		model, err := openscad.LoadMesh(context.Background(), path)
		if err != nil {
			return nil, err
		}
		return &Model{model: rl.LoadModelFromMesh(stlToMesh(model))}, nil
	default:
		model := rl.LoadModel(path)
		if model.MeshCount == 0 {
			return nil, fmt.Errorf("unsupported or unreadable model %s", path)
		}
		return &Model{model: model}, nil
	}
}

// stlToMesh converts an STL model to a raylib mesh with baked lighting
func stlToMesh(model *stl.Model) rl.Mesh {
	triangleCount := len(model.Triangles)
	vertexCount := triangleCount * 3

	mesh := rl.Mesh{
		VertexCount:   int32(vertexCount),
		TriangleCount: int32(triangleCount),
	}

	vertices := make([]float32, 0, vertexCount*3)
	normals := make([]float32, 0, vertexCount*3)
	colors := make([]uint8, 0, vertexCount*4)

	// The scene is lit from above
	lightDir := geometry.NewVector3(-0.5, -0.5, -1.0).Normalize()

	for _, triangle := range model.Triangles {
		normal := triangle.CalculateNormal()

		// Min 30% ambient, max 100% diffuse
		lightIntensity := math.Max(0.3, -normal.Dot(lightDir))
		baseColor := 200.0
		r := uint8(baseColor * lightIntensity * 0.5)
		g := uint8(baseColor * lightIntensity * 0.6)
		b := uint8(baseColor * lightIntensity)

		for _, v := range []geometry.Vector3{triangle.V1, triangle.V2, triangle.V3} {
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, float32(normal.X), float32(normal.Y), float32(normal.Z))
			colors = append(colors, r, g, b, 255)
		}
	}

	if len(vertices) > 0 {
		mesh.Vertices = &vertices[0]
		mesh.Normals = &normals[0]
		mesh.Colors = &colors[0]
	}

	// Upload mesh data to GPU
	rl.UploadMesh(&mesh, false)
	return mesh
}
