// Package archive maps database and permutation names onto the archive
// directory tree.
//
// Layout:
//
//	<root>/<database>/database.db
//	<root>/<database>/<permutation>/database.mdb
//	<root>/<database>/<permutation>/<permutation>.txt
//
// Database, dimension, model and permutation directories all match the
// `?D*` pattern (for example `2D_Example`); dimension directories match
// `?D` exactly.
package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// StoreFile is the record store of a database.
	StoreFile = "database.db"
	// ToolInput is the extraction-tool database of a permutation.
	ToolInput = "database.mdb"

	dimPattern  = "?D"
	namePattern = "?D*"
)

var (
	// ErrInvalidName is returned for names that could escape the archive
	// root or do not follow the naming pattern.
	ErrInvalidName = errors.New("invalid archive name")
	// ErrNotFound is returned when a named directory does not exist.
	ErrNotFound = errors.New("not found in archive")
)

// List returns the databases under root, keyed by name. Values are paths
// relative to root.
func List(root string) (map[string]string, error) {
	dirs, err := globDirs(root, namePattern)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(dirs))
	for _, name := range dirs {
		out[name] = name
	}
	return out, nil
}

// Tree is dimension → model → permutation → path relative to the root.
type Tree map[string]map[string]map[string]string

// BuildTree walks the dimension/model/permutation directories under root.
func BuildTree(root string) (Tree, error) {
	dims, err := globDirs(root, dimPattern)
	if err != nil {
		return nil, err
	}

	tree := make(Tree, len(dims))
	for _, dim := range dims {
		models, err := globDirs(filepath.Join(root, dim), namePattern)
		if err != nil {
			return nil, err
		}
		modelData := make(map[string]map[string]string, len(models))
		for _, model := range models {
			perms, err := globDirs(filepath.Join(root, dim, model), namePattern)
			if err != nil {
				return nil, err
			}
			permData := make(map[string]string, len(perms))
			for _, perm := range perms {
				permData[perm] = dim + "/" + model + "/" + perm
			}
			modelData[model] = permData
		}
		tree[dim] = modelData
	}
	return tree, nil
}

// globDirs returns the base names of directories in dir matching pattern,
// in lexical order.
func globDirs(dir, pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || !info.IsDir() {
			continue
		}
		names = append(names, filepath.Base(m))
	}
	return names, nil
}

// Database is a resolved database directory.
type Database struct {
	Name  string
	Dir   string
	Store string
}

// Permutation is a resolved permutation directory inside a database.
type Permutation struct {
	Name      string
	Dir       string
	ToolInput string
	Text      string
}

// ValidateName rejects names that are empty, contain path separators or
// refer to the current or parent directory.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if ok, _ := filepath.Match(namePattern, name); !ok {
		return fmt.Errorf("%w: %q does not match %s", ErrInvalidName, name, namePattern)
	}
	return nil
}

// ResolveDatabase returns the paths of a database. The directory must exist.
func ResolveDatabase(root, name string) (Database, error) {
	if err := ValidateName(name); err != nil {
		return Database{}, err
	}
	dir := filepath.Join(root, name)
	if err := requireDir(dir); err != nil {
		return Database{}, fmt.Errorf("database %q: %w", name, err)
	}
	return Database{
		Name:  name,
		Dir:   dir,
		Store: filepath.Join(dir, StoreFile),
	}, nil
}

// ResolvePermutation returns the paths of a permutation of a database.
// Both directories must exist.
func ResolvePermutation(root, database, name string) (Permutation, error) {
	db, err := ResolveDatabase(root, database)
	if err != nil {
		return Permutation{}, err
	}
	if err := ValidateName(name); err != nil {
		return Permutation{}, err
	}
	dir := filepath.Join(db.Dir, name)
	if err := requireDir(dir); err != nil {
		return Permutation{}, fmt.Errorf("permutation %q: %w", name, err)
	}
	return Permutation{
		Name:      name,
		Dir:       dir,
		ToolInput: filepath.Join(dir, ToolInput),
		Text:      filepath.Join(dir, name+".txt"),
	}, nil
}

func requireDir(dir string) error {
	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return ErrNotFound
	}
	return nil
}
