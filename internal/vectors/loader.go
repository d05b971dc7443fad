package vectors

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/notecard-tools/soi2c-go/pkg/soi2c"
)

// Parse parses a vector from YAML bytes.
func Parse(data []byte) (*Vector, error) {
	var v Vector
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, &LoadError{
			Message: "failed to parse YAML",
			Cause:   err,
		}
	}

	if v.ID == "" {
		return nil, &LoadError{Message: "vector ID is required"}
	}
	if len(v.Frames) == 0 {
		return nil, &LoadError{Message: "vector must have at least one frame"}
	}
	if v.Address > 0x7F {
		return nil, &LoadError{Message: "vector address exceeds 7 bits"}
	}
	for _, e := range v.Expect {
		if _, err := soi2c.ParseKind(e.Kind); err != nil {
			return nil, &LoadError{Message: "invalid expectation", Cause: err}
		}
	}

	return &v, nil
}

// LoadFile loads a vector from a file.
func LoadFile(path string) (*Vector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			File:    path,
			Message: "failed to read file",
			Cause:   err,
		}
	}

	v, err := Parse(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.File = path
			return nil, le
		}
		return nil, &LoadError{File: path, Message: err.Error()}
	}

	v.File = path
	return v, nil
}

// LoadDirectory loads all vectors from a directory and its subdirectories,
// sorted by ID. Only files with .yaml or .yml extensions are loaded.
func LoadDirectory(dir string) ([]*Vector, error) {
	var vectors []*Vector

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		v, err := LoadFile(path)
		if err != nil {
			return err
		}
		vectors = append(vectors, v)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(vectors, func(i, j int) bool {
		return vectors[i].ID < vectors[j].ID
	})
	return vectors, nil
}

// Load loads a single file or, for a directory, every vector beneath it.
func Load(path string) ([]*Vector, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &LoadError{File: path, Message: "failed to stat", Cause: err}
	}
	if info.IsDir() {
		return LoadDirectory(path)
	}
	v, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return []*Vector{v}, nil
}
