package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Hash computes the SHA-256 content hash of data as a 64-char hex string.
// Pipeline stages hash their serialized inputs with this to build keys.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// LayoutKeyOpts are the options that influence layout computation and must
// therefore distinguish cache entries. Fields mirror the layout spacing
// configuration as plain values so this package stays domain-free.
type LayoutKeyOpts struct {
	NodeWidth  float64 `json:"node_width"`
	NodeHeight float64 `json:"node_height"`
	GapX       float64 `json:"gap_x"`
	GapY       float64 `json:"gap_y"`
	Margin     float64 `json:"margin"`
}

// ArtifactKeyOpts are the options that influence rendered output.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Style  string `json:"style"`
}

// Keyer derives cache keys for the pipeline stages.
type Keyer interface {
	// ChartKey keys a stored chart by data-set name and content hash.
	ChartKey(name, chartHash string) string

	// LayoutKey keys a computed layout by chart hash and layout options.
	LayoutKey(chartHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered artifact by layout hash and render options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer builds keys of the form "<kind>:<sha256(parts)>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

func (DefaultKeyer) ChartKey(name, chartHash string) string {
	return hashKey("chart", name, chartHash)
}

func (DefaultKeyer) LayoutKey(chartHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", chartHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// hashKey hashes the JSON encoding of parts under a kind prefix.
// JSON keeps the encoding stable across runs; the full SHA-256 digest
// avoids collisions between near-identical option sets.
func hashKey(kind string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return fmt.Sprintf("%s:%s", kind, Hash(data))
}

// ScopedKeyer prefixes another keyer's keys for namespace isolation,
// for example per user in a shared Redis.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps a keyer with a prefix. A nil inner keyer defaults
// to the standard one.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) ChartKey(name, chartHash string) string {
	return k.prefix + k.inner.ChartKey(name, chartHash)
}

func (k *ScopedKeyer) LayoutKey(chartHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(chartHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
