// Package primitives draws the scene object: a generated cube, or a loaded model that can be
// switched to the same lit shader.
package primitives

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Registry owns the cube mesh and the lit shaders. GPU resources are created on first use so
// they are allocated after the window/OpenGL context exists.
type Registry struct {
	cubeReady bool
	cubeMesh  rl.Mesh
	flatMtl   rl.Material // unlit, colour only
	litMtl    rl.Material

	modelShader rl.Shader // set by LightModel
	modelLit    bool

	viewPos [3]float32
	light   Light
}

// NewRegistry returns a registry lit by DefaultLight. Nothing is allocated until the first draw.
func NewRegistry() *Registry {
	return &Registry{light: DefaultLight}
}

// SetView sets the camera position for this frame. Call once per frame before drawing.
func (r *Registry) SetView(viewPos [3]float32) {
	r.viewPos = viewPos
}

// SetLight replaces the light used by later draws.
func (r *Registry) SetLight(l Light) {
	r.light = l
}

// ensureCube creates the unit cube mesh and its flat and lit materials.
func (r *Registry) ensureCube() {
	if r.cubeReady {
		return
	}
	r.cubeMesh = rl.GenMeshCube(1, 1, 1)
	r.flatMtl = rl.LoadMaterialDefault()
	r.litMtl = rl.LoadMaterialDefault()
	if shader := rl.LoadShaderFromMemory(litVS, litFS); rl.IsShaderValid(shader) {
		r.litMtl.Shader = shader
	}
	r.cubeReady = true
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
out vec4 finalColor;
void main() {
  vec4 tint = colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = tint.rgb * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient.rgb * tint.rgb;
  finalColor = vec4(amb + diffuse, tint.a);
}
`
	// litTexturedFS samples the model's albedo map; loaded glTF models carry their own textures.
	litTexturedFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform sampler2D texture0;
out vec4 finalColor;
void main() {
  vec4 tint = texture(texture0, fragTexCoord) * colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = tint.rgb * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient.rgb * tint.rgb;
  finalColor = vec4(amb + diffuse, tint.a);
}
`
)

// setLightUniforms uploads view position and light parameters (cgo-safe: local arrays).
func (r *Registry) setLightUniforms(shader rl.Shader) {
	if !rl.IsShaderValid(shader) {
		return
	}
	viewPos := [3]float32{r.viewPos[0], r.viewPos[1], r.viewPos[2]}
	lightDir := [3]float32{r.light.Direction[0], r.light.Direction[1], r.light.Direction[2]}
	amb := [4]float32{r.light.Ambient[0], r.light.Ambient[1], r.light.Ambient[2], r.light.Ambient[3]}
	lightColor := [3]float32{r.light.Color[0], r.light.Color[1], r.light.Color[2]}
	if loc := rl.GetShaderLocation(shader, "viewPos"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, viewPos[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightDir"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightDir[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightColor"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightColor[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightIntensity"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{r.light.Intensity}, rl.ShaderUniformFloat)
	}
}

// transform builds scale-then-translate. A zero scale component is treated as 1.
func transform(position, scale [3]float32) rl.Matrix {
	sx, sy, sz := scale[0], scale[1], scale[2]
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	if sz == 0 {
		sz = 1
	}
	return rl.MatrixMultiply(rl.MatrixScale(sx, sy, sz), rl.MatrixTranslate(position[0], position[1], position[2]))
}

// Cube draws the unit cube centred on position. Unlit cubes are flat colour, like a basic
// material; lit cubes use the directional light. Must be called between BeginMode3D and EndMode3D.
func (r *Registry) Cube(position, scale [3]float32, color rl.Color, lit bool) {
	r.ensureCube()
	mtl := r.flatMtl
	if lit {
		mtl = r.litMtl
		r.setLightUniforms(mtl.Shader)
	}
	if albedo := mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = color
	}
	rl.DrawMesh(r.cubeMesh, mtl, transform(position, scale))
}

// LightModel switches every material of model to the textured lit shader. It reports false
// when the shader could not be built; the model then keeps raylib's default shading.
func (r *Registry) LightModel(model *rl.Model) bool {
	shader := rl.LoadShaderFromMemory(litVS, litTexturedFS)
	if !rl.IsShaderValid(shader) {
		return false
	}
	mats := model.GetMaterials()
	for i := range mats {
		mats[i].Shader = shader
	}
	r.modelShader = shader
	r.modelLit = true
	return true
}

// Model draws a loaded model centred on position with a uniform scale and tint.
func (r *Registry) Model(model rl.Model, position [3]float32, scale float32, tint rl.Color) {
	if scale == 0 {
		scale = 1
	}
	if r.modelLit {
		r.setLightUniforms(r.modelShader)
	}
	rl.DrawModelEx(model, rl.NewVector3(position[0], position[1], position[2]),
		rl.NewVector3(0, 1, 0), 0, rl.NewVector3(scale, scale, scale), tint)
}

// Unload frees the GPU resources created so far. Call before the window closes.
func (r *Registry) Unload() {
	if r.cubeReady {
		rl.UnloadMesh(&r.cubeMesh)
		if rl.IsShaderValid(r.litMtl.Shader) {
			rl.UnloadShader(r.litMtl.Shader)
		}
		r.cubeReady = false
	}
	if r.modelLit {
		rl.UnloadShader(r.modelShader)
		r.modelLit = false
	}
}
