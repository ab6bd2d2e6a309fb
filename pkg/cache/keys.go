package cache

import "fmt"

// Keyer derives cache keys.
type Keyer interface {
	// HTTPKey keys a raw HTTP response.
	HTTPKey(namespace, key string) string
	// DataKey keys a loaded source table.
	DataKey(opts DataKeyOpts) string
	// ArtifactKey keys a rendered artifact of a chart definition.
	ArtifactKey(definitionHash string, opts ArtifactKeyOpts) string
}

// DataKeyOpts identifies a source load.
type DataKeyOpts struct {
	Kind string `json:"kind"`
	// Source is a stable description of the source, such as a file hash or
	// query string.
	Source string `json:"source"`
	Start  int64  `json:"start,omitempty"`
	End    int64  `json:"end,omitempty"`
}

// ArtifactKeyOpts identifies a render.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	DataHash string  `json:"data_hash"`
}

// DefaultKeyer builds keys of the form "kind:sha256(parts)".
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return fmt.Sprintf("http:%s:%s", namespace, key)
}

func (DefaultKeyer) DataKey(opts DataKeyOpts) string {
	return hashKey("data", opts)
}

func (DefaultKeyer) ArtifactKey(definitionHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", definitionHash, opts)
}
