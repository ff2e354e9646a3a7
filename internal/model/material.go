package model

import "strings"

// MaterialKind classifies a material's shading model.
type MaterialKind int

const (
	MaterialOther MaterialKind = iota
	MaterialPBR
	MaterialStandard
	MaterialUnlit
)

var materialKindNames = map[MaterialKind]string{
	MaterialOther:    "other",
	MaterialPBR:      "pbr",
	MaterialStandard: "standard",
	MaterialUnlit:    "unlit",
}

// String returns the lowercase tag for the kind.
func (k MaterialKind) String() string {
	if name, ok := materialKindNames[k]; ok {
		return name
	}
	return "other"
}

// ParseMaterialKind maps a tag to its kind. Unknown tags map to
// MaterialOther; the export validator rejects those, not the parser.
func ParseMaterialKind(tag string) MaterialKind {
	for kind, name := range materialKindNames {
		if name == strings.ToLower(tag) {
			return kind
		}
	}
	return MaterialOther
}

// MarshalYAML encodes the kind as its tag.
func (k MaterialKind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// UnmarshalYAML decodes a tag, tolerating unknown values.
func (k *MaterialKind) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var tag string
	if err := unmarshal(&tag); err != nil {
		return err
	}
	*k = ParseMaterialKind(tag)
	return nil
}

// Material describes a surface definition. The base color is either the
// inline BaseColor value or, when AlbedoMap is set, a texture reference.
// All map fields hold asset ids and may be empty.
type Material struct {
	ID           string       `yaml:"id"`
	Name         string       `yaml:"name,omitempty"`
	Kind         MaterialKind `yaml:"kind"`
	BaseColor    [4]float32   `yaml:"base_color"`
	AlbedoMap    string       `yaml:"albedo_map,omitempty"`
	NormalMap    string       `yaml:"normal_map,omitempty"`
	RoughnessMap string       `yaml:"roughness_map,omitempty"`
	MetallicMap  string       `yaml:"metallic_map,omitempty"`
	EmissiveMap  string       `yaml:"emissive_map,omitempty"`
	Roughness    float32      `yaml:"roughness"`
	Metallic     float32      `yaml:"metallic"`
	Opacity      float32      `yaml:"opacity"`
}

// TextureRefs returns the asset ids of all non-empty texture references,
// in a fixed map order so validation output is deterministic.
func (m *Material) TextureRefs() []string {
	var refs []string
	for _, ref := range []string{m.AlbedoMap, m.NormalMap, m.RoughnessMap, m.MetallicMap, m.EmissiveMap} {
		if ref != "" {
			refs = append(refs, ref)
		}
	}
	return refs
}
