package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/orgchart/pkg/tree"
)

// tomlFile is the on-disk data-set format:
//
//	name = "Acme Inc"
//
//	[[nodes]]
//	id = "emp-1"
//	name = "Avery Collins"
//	role = "CEO"
//
//	[[nodes]]
//	id = "emp-2"
//	name = "Sam Reyes"
//	role = "CTO"
//	prev = "emp-1"
type tomlFile struct {
	Name  string      `toml:"name"`
	Nodes []tree.Node `toml:"nodes"`
}

// LoadFile reads a data set from a TOML file.
// The set name defaults to the file's base name when the file omits one.
// Node IDs are checked for emptiness and duplicates; dangling parent
// references are accepted (they degrade to roots at layout time).
func LoadFile(path string) (DataSet, error) {
	var f tomlFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return DataSet{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if f.Name == "" {
		f.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if _, err := tree.FromNodes(f.Nodes); err != nil {
		return DataSet{}, fmt.Errorf("data set %s: %w", f.Name, err)
	}
	return DataSet{Name: f.Name, Nodes: f.Nodes}, nil
}

// LoadDir registers every *.toml file in dir into the registry, in file
// name order. A missing directory is not an error - there is simply nothing
// to load. Files registered here overwrite same-named built-ins, which is
// how a user supplies the Custom data set.
func LoadDir(reg *Registry, dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".toml") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		d, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		reg.Replace(d)
	}
	return nil
}
