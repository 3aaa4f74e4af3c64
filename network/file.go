package network

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/katalvlaran/dfsolve/matrix"
	"gopkg.in/yaml.v3"
)

// Format names a network file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// DefaultNoise is the noise position used when a file omits one.
var DefaultNoise = Position{Row: 3, Col: 1}

// FormatOf maps a file extension to its Format.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("FormatOf %q: %w", path, ErrUnknownFormat)
	}
}

// File is the on-disk form of a network. It holds either a drawn network
// (Noise, Nodes, Edges) or a raw model (Q, V0); a non-empty Q wins.
type File struct {
	Noise  []int       `yaml:"noise,omitempty" toml:"noise,omitempty"`
	Energy float64     `yaml:"energy,omitempty" toml:"energy,omitempty"`
	Nodes  []FileNode  `yaml:"nodes,omitempty" toml:"nodes,omitempty"`
	Edges  [][][]int   `yaml:"edges,omitempty" toml:"edges,omitempty"`
	Q      [][]float64 `yaml:"q,omitempty" toml:"q,omitempty"`
	V0     [][]float64 `yaml:"v0,omitempty" toml:"v0,omitempty"`
	Labels []string    `yaml:"labels,omitempty" toml:"labels,omitempty"`
}

// FileNode is one oscillator entry of a File.
type FileNode struct {
	Pos    []int    `yaml:"pos" toml:"pos"`
	Energy *float64 `yaml:"energy,omitempty" toml:"energy,omitempty"`
	Label  string   `yaml:"label,omitempty" toml:"label,omitempty"`
}

// Parse decodes a File from r.
func Parse(r io.Reader, format Format) (*File, error) {
	var f File
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && err != io.EOF {
			return nil, fmt.Errorf("Parse yaml: %w", err)
		}
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&f)
		if err != nil {
			return nil, fmt.Errorf("Parse toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("Parse toml: unknown key %q", undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("Parse %q: %w", format, ErrUnknownFormat)
	}

	return &f, nil
}

// IsRaw reports whether the file carries a raw model instead of a drawn network.
func (f *File) IsRaw() bool { return len(f.Q) > 0 }

// Network builds the drawn network. Listed nodes are added first, then any
// node referenced only by an edge, in edge order.
func (f *File) Network() (*Network, error) {
	noise := DefaultNoise
	if f.Noise != nil {
		p, err := toPosition(f.Noise)
		if err != nil {
			return nil, fmt.Errorf("noise: %w", err)
		}
		noise = p
	}

	n := New(noise, WithDefaultEnergy(f.Energy))
	for i, fn := range f.Nodes {
		p, err := toPosition(fn.Pos)
		if err != nil {
			return nil, fmt.Errorf("nodes[%d]: %w", i, err)
		}
		var opts []NodeOption
		if fn.Energy != nil {
			opts = append(opts, WithEnergy(*fn.Energy))
		}
		if fn.Label != "" {
			opts = append(opts, WithLabel(fn.Label))
		}
		if _, err = n.AddNode(p, opts...); err != nil {
			return nil, fmt.Errorf("nodes[%d]: %w", i, err)
		}
	}
	for i, e := range f.Edges {
		if len(e) != 2 {
			return nil, fmt.Errorf("edges[%d]: want 2 endpoints, got %d: %w", i, len(e), ErrBadPosition)
		}
		a, err := toPosition(e[0])
		if err != nil {
			return nil, fmt.Errorf("edges[%d]: %w", i, err)
		}
		b, err := toPosition(e[1])
		if err != nil {
			return nil, fmt.Errorf("edges[%d]: %w", i, err)
		}
		if err = n.Link(a, b); err != nil {
			return nil, fmt.Errorf("edges[%d]: %w", i, err)
		}
	}

	return n, nil
}

// Model returns the solver input of the file: the raw model as given, or the
// model of the drawn network.
func (f *File) Model() (*Model, error) {
	if !f.IsRaw() {
		n, err := f.Network()
		if err != nil {
			return nil, err
		}

		return n.Model()
	}

	q, err := matrix.FromRows(f.Q)
	if err != nil {
		return nil, fmt.Errorf("q: %w", err)
	}
	labels := f.Labels
	if len(labels) != len(f.Q) {
		labels = make([]string, len(f.Q))
		for i := range labels {
			labels[i] = strconv.Itoa(i)
		}
	}
	v0 := make([][]float64, len(f.V0))
	for i, v := range f.V0 {
		v0[i] = append([]float64(nil), v...)
	}

	return &Model{Q: q, V0: v0, Labels: labels}, nil
}

// Decode reads a File from r and returns its Model.
func Decode(r io.Reader, format Format) (*Model, error) {
	f, err := Parse(r, format)
	if err != nil {
		return nil, err
	}
	m, err := f.Model()
	if err != nil {
		return nil, fmt.Errorf("Decode: %w", err)
	}

	return m, nil
}

// Load reads a network file, picking the format from its extension.
func Load(path string) (*Model, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	m, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("Load %s: %w", path, err)
	}

	return m, nil
}

func toPosition(xs []int) (Position, error) {
	if len(xs) != 2 {
		return Position{}, fmt.Errorf("%v: %w", xs, ErrBadPosition)
	}

	return Position{Row: xs[0], Col: xs[1]}, nil
}
