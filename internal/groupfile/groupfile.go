// Package groupfile reads and writes custom group definitions as YAML so
// they can be shared between databases.
//
//	version: 1
//	groups:
//	  - name: Lucky
//	    numbers: [7, 17, 27]
package groupfile

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/the-wheel-must-spin/internal/common"
	"github.com/Veraticus/the-wheel-must-spin/internal/model"
)

// Version is the current file format version.
const Version = 1

// ErrUnsupportedVersion is returned for files written by a newer format.
var ErrUnsupportedVersion = errors.New("unsupported group file version")

// File is the on-disk document.
type File struct {
	Version int     `yaml:"version"`
	Groups  []Entry `yaml:"groups"`
}

// Entry is one group definition.
type Entry struct {
	Name    string `yaml:"name"`
	Numbers []int  `yaml:"numbers,flow"`
}

// Encode writes groups as a YAML document.
func Encode(w io.Writer, groups []model.Group) error {
	doc := File{Version: Version, Groups: make([]Entry, len(groups))}
	for i, g := range groups {
		doc.Groups[i] = Entry{Name: g.Name, Numbers: g.Numbers}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode groups: %w", err)
	}
	return enc.Close()
}

// Decode reads a YAML document into custom groups. Numbers are normalized;
// names that repeat within the file (ignoring case) are rejected.
func Decode(r io.Reader) ([]model.Group, error) {
	var doc File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse group file: %w", err)
	}

	if doc.Version > Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}

	seen := make(map[string]struct{}, len(doc.Groups))
	groups := make([]model.Group, 0, len(doc.Groups))
	for i, e := range doc.Groups {
		name := strings.TrimSpace(e.Name)
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return nil, &common.InvalidGroupError{Name: name, Reason: "defined more than once"}
		}
		seen[key] = struct{}{}

		g, err := model.NewGroup(name, model.CategoryCustom, e.Numbers)
		if err != nil {
			return nil, fmt.Errorf("group %d: %w", i+1, err)
		}
		groups = append(groups, g)
	}
	return groups, nil
}
