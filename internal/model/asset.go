package model

import "strings"

// AssetKind classifies an asset in the project library.
type AssetKind int

const (
	AssetOther AssetKind = iota
	AssetTexture
	AssetModel
	AssetMaterial
)

var assetKindNames = map[AssetKind]string{
	AssetOther:    "other",
	AssetTexture:  "texture",
	AssetModel:    "model",
	AssetMaterial: "material",
}

// String returns the lowercase tag for the kind.
func (k AssetKind) String() string {
	if name, ok := assetKindNames[k]; ok {
		return name
	}
	return "other"
}

// ParseAssetKind maps a tag to its kind, unknown tags to AssetOther.
func ParseAssetKind(tag string) AssetKind {
	for kind, name := range assetKindNames {
		if name == strings.ToLower(tag) {
			return kind
		}
	}
	return AssetOther
}

// MarshalYAML encodes the kind as its tag.
func (k AssetKind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// UnmarshalYAML decodes a tag, tolerating unknown values.
func (k *AssetKind) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var tag string
	if err := unmarshal(&tag); err != nil {
		return err
	}
	*k = ParseAssetKind(tag)
	return nil
}

// AssetMeta carries optional information about the stored payload.
type AssetMeta struct {
	Width    int    `yaml:"width,omitempty"`
	Height   int    `yaml:"height,omitempty"`
	Format   string `yaml:"format,omitempty"`
	ByteSize int64  `yaml:"byte_size,omitempty"`
}

// Asset is an entry in the project's asset library.
type Asset struct {
	ID   string     `yaml:"id"`
	Kind AssetKind  `yaml:"kind"`
	Path string     `yaml:"path"`
	Meta *AssetMeta `yaml:"meta,omitempty"`
}

// Project is a read-only snapshot of the collections the validation
// pipeline consumes. The application store owns the data; validators
// receive these slices and must not modify them.
type Project struct {
	Name      string            `yaml:"name,omitempty"`
	Elements  []BuildingElement `yaml:"elements"`
	Materials []Material        `yaml:"materials"`
	Assets    []Asset           `yaml:"assets"`
}
