// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package apphostroot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/mod/modfile"
)

const (
	// DefaultEnvVar is the environment variable consulted when no metadata matches.
	DefaultEnvVar = "APPHOST_CONTENTROOT"

	// contentRootKey is the viper key bound to the environment variable.
	contentRootKey = "contentroot"
)

var (
	// ErrContentRootNotFound indicates that the environment variable named a
	// directory that does not exist.
	ErrContentRootNotFound = errors.New("the content root directory does not exist")
)

// Resolver locates content roots.  Its zero value uses the working directory,
// DefaultEnvVar, the globally registered Metadata and a module search.
type Resolver struct {
	// BaseDir is where relative metadata paths are resolved and where the
	// module search begins.  The working directory is used if unset.
	BaseDir string

	// EnvVar is the environment variable that may name a content root.
	// DefaultEnvVar is used if unset.
	EnvVar string

	// Metadata is consulted first.  If nil, Registered() is used.
	Metadata []Metadata

	// Viper is used to read the environment variable.  A new instance is
	// created for each resolution if unset.
	Viper *viper.Viper

	// DisableModuleSearch turns off the module-relative search.
	DisableModuleSearch bool
}

func (r Resolver) baseDir() (string, error) {
	if len(r.BaseDir) > 0 {
		return filepath.Abs(r.BaseDir)
	}

	return os.Getwd()
}

// Resolve returns the content root for key, or the empty string if none could be found.
func (r Resolver) Resolve(key string) (string, error) {
	baseDir, err := r.baseDir()
	if err != nil {
		return "", err
	}

	if root, ok := r.fromMetadata(baseDir, key); ok {
		return root, nil
	}

	if root, err := r.fromEnv(); len(root) > 0 || err != nil {
		return root, err
	}

	if !r.DisableModuleSearch {
		if root, ok := fromModule(baseDir, key); ok {
			return root, nil
		}
	}

	return "", nil
}

func (r Resolver) fromMetadata(baseDir, key string) (string, bool) {
	ms := r.Metadata
	if ms == nil {
		ms = Registered()
	}

	for _, m := range candidates(key, ms) {
		root := m.Path
		if !filepath.IsAbs(root) {
			root = filepath.Join(baseDir, root)
		}

		check := root
		if len(m.Marker) > 0 {
			check = filepath.Join(root, filepath.Base(m.Marker))
		}

		if _, err := os.Stat(check); err == nil {
			return filepath.Clean(root), true
		}
	}

	return "", false
}

func (r Resolver) fromEnv() (string, error) {
	v := r.Viper
	if v == nil {
		v = viper.New()
	}

	envVar := r.EnvVar
	if len(envVar) == 0 {
		envVar = DefaultEnvVar
	}

	if err := v.BindEnv(contentRootKey, envVar); err != nil {
		return "", err
	}

	root := v.GetString(contentRootKey)
	if len(root) == 0 {
		return "", nil
	}

	if fi, err := os.Stat(root); err != nil || !fi.IsDir() {
		return "", fmt.Errorf("%w: %s=%s", ErrContentRootNotFound, envVar, root)
	}

	return filepath.Abs(root)
}

// fromModule walks up from baseDir to the nearest go.mod.  If key is a
// package path within that module, the package's directory is the content root.
func fromModule(baseDir, key string) (string, bool) {
	moduleDir, modulePath, ok := findModule(baseDir)
	if !ok {
		return "", false
	}

	var rel string
	switch {
	case key == modulePath:
		rel = "."

	case strings.HasPrefix(key, modulePath+"/"):
		rel = filepath.FromSlash(strings.TrimPrefix(key, modulePath+"/"))

	default:
		return "", false
	}

	root := filepath.Join(moduleDir, rel)
	if fi, err := os.Stat(root); err == nil && fi.IsDir() {
		return root, true
	}

	return "", false
}

func findModule(dir string) (moduleDir, modulePath string, ok bool) {
	for {
		if data, err := os.ReadFile(filepath.Join(dir, "go.mod")); err == nil {
			modulePath = modfile.ModulePath(data)
			return dir, modulePath, len(modulePath) > 0
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", false
		}

		dir = parent
	}
}
