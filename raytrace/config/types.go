package config

// SceneConfig represents the complete description of a render: the scene,
// how to sample it and where to put the result.
type SceneConfig struct {
	Metadata           Metadata           `yaml:"metadata"`
	Input              Input              `yaml:"input"`
	Materials          Materials          `yaml:"materials"`
	SurfaceAssignments SurfaceAssignments `yaml:"surface_assignments"`
	Objects            Objects            `yaml:"objects"`
	Lights             []Light            `yaml:"lights"`
	Camera             Camera             `yaml:"camera"`
	Background         Background         `yaml:"background"`
	Image              Image              `yaml:"image"`
	Render             Render             `yaml:"render"`
	Output             Output             `yaml:"output"`
}

type Metadata struct {
	Timestamp string `yaml:"timestamp"` // YYYY-MM-DD HH:MM:SS in UTC
	GitCommit string `yaml:"git_commit,omitempty"`
	Summary   string `yaml:"summary,omitempty"`
}

type Input struct {
	Meshes []MeshInput `yaml:"meshes,omitempty"`
}

type MeshInput struct {
	Path string `yaml:"path"`
	// Scale multiplies mesh coordinates, e.g. 0.001 for millimeters
	Scale     float64    `yaml:"scale,omitempty"`
	Translate [3]float64 `yaml:"translate,omitempty"`
}

type Materials struct {
	Inline   map[string]Material `yaml:"inline,omitempty"`
	FromFile string              `yaml:"from_file,omitempty"`
}

type Material struct {
	Model     string     `yaml:"model,omitempty" json:"model,omitempty"`
	Diffuse   [3]float64 `yaml:"diffuse" json:"diffuse"`
	Specular  [3]float64 `yaml:"specular,omitempty" json:"specular,omitempty"`
	Ambient   [3]float64 `yaml:"ambient,omitempty" json:"ambient,omitempty"`
	Emission  [3]float64 `yaml:"emission,omitempty" json:"emission,omitempty"`
	Shininess float64    `yaml:"shininess,omitempty" json:"shininess,omitempty"`
	IOR       float64    `yaml:"ior,omitempty" json:"ior,omitempty"`
}

type SurfaceAssignments struct {
	Inline   map[string]string `yaml:"inline,omitempty"` // surface name -> material name
	FromFile string            `yaml:"from_file,omitempty"`
}

type Objects struct {
	Spheres   []Sphere   `yaml:"spheres,omitempty"`
	Triangles []Triangle `yaml:"triangles,omitempty"`
}

type Sphere struct {
	Center   [3]float64 `yaml:"center"`
	Radius   float64    `yaml:"radius"`
	Material string     `yaml:"material"`
}

type Triangle struct {
	Vertices [3][3]float64 `yaml:"vertices"` // counter-clockwise seen from the front
	Material string        `yaml:"material"`
}

type Light struct {
	Type string `yaml:"type"` // point, directional or area
	// Position of a point light
	Position [3]float64 `yaml:"position,omitempty"`
	// Direction a directional light travels in
	Direction [3]float64 `yaml:"direction,omitempty"`
	// Intensity of a point light or radiance of a directional light
	Intensity [3]float64 `yaml:"intensity,omitempty"`
	// Surface names the mesh whose faces emit for an area light
	Surface string `yaml:"surface,omitempty"`
}

type Camera struct {
	Eye    [3]float64 `yaml:"eye"`
	LookAt [3]float64 `yaml:"look_at"`
	Up     [3]float64 `yaml:"up"`
	FOV    float64    `yaml:"fov"` // degrees across the shorter image side
}

type Background struct {
	Color       [3]float64 `yaml:"color"`
	Environment string     `yaml:"environment,omitempty"`
	// EnvironmentScale multiplies environment radiance; zero means 1
	EnvironmentScale float64 `yaml:"environment_scale,omitempty"`
}

type Image struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type Render struct {
	Subdivs  int    `yaml:"subdivs"`
	MaxDepth int    `yaml:"max_depth"`
	Seed     uint64 `yaml:"seed"`
	Workers  int    `yaml:"workers,omitempty"`
	// DisableShadows skips shadow rays for every light
	DisableShadows            bool    `yaml:"disable_shadows,omitempty"`
	DirectionalShadowDistance float64 `yaml:"directional_shadow_distance,omitempty"`
}

type Output struct {
	Path     string              `yaml:"path"` // .png or .webp
	Exposure float64             `yaml:"exposure,omitempty"`
	Gamma    float64             `yaml:"gamma,omitempty"`
	Tone     map[float64]float64 `yaml:"tone,omitempty"` // radiance -> display value
	// Width and Height resize the final image when set
	Width  int `yaml:"width,omitempty"`
	Height int `yaml:"height,omitempty"`
}
