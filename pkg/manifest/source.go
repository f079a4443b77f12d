// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/luxfi/raiden-deploy/pkg/constants"
	"github.com/luxfi/raiden-deploy/pkg/versions"
	"github.com/spf13/afero"
)

// Source is a directory holding one <version>/contracts.json per contracts version.
type Source struct {
	fs  afero.Fs
	dir string
}

func NewSource(fs afero.Fs, dir string) *Source {
	return &Source{fs: fs, dir: dir}
}

func (s *Source) Dir() string {
	return s.dir
}

// Versions lists the release versions available, oldest first.
func (s *Source) Versions() ([]string, error) {
	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: reading contracts dir %s: %w", constants.ErrConfiguration, s.dir, err)
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() || !versions.IsRelease(e.Name()) {
			continue
		}
		if ok, _ := afero.Exists(s.fs, s.manifestPath(e.Name())); ok {
			out = append(out, e.Name())
		}
	}
	versions.Sort(out)
	return out, nil
}

// Latest returns the highest release version available.
func (s *Source) Latest() (string, error) {
	vs, err := s.Versions()
	if err != nil {
		return "", err
	}
	if len(vs) == 0 {
		return "", fmt.Errorf("%w: no contracts manifest found under %s", constants.ErrConfiguration, s.dir)
	}
	return vs[len(vs)-1], nil
}

// Load reads the manifest of version, or of the latest version when version is nil.
func (s *Source) Load(version *string) (*Manifest, error) {
	var v string
	if version != nil {
		v = *version
	} else {
		latest, err := s.Latest()
		if err != nil {
			return nil, err
		}
		v = latest
	}
	data, err := afero.ReadFile(s.fs, s.manifestPath(v))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: no manifest for contracts version %s in %s", constants.ErrConfiguration, v, s.dir)
		}
		return nil, fmt.Errorf("%w: reading manifest for contracts version %s: %w", constants.ErrConfiguration, v, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, err
	}
	switch m.Version {
	case "":
		m.Version = v
	case v:
	default:
		return nil, fmt.Errorf("%w: manifest under %s declares contracts version %s",
			constants.ErrConfiguration, v, m.Version)
	}
	return m, nil
}

func (s *Source) manifestPath(version string) string {
	return filepath.Join(s.dir, version, constants.ContractsManifestFileName)
}
