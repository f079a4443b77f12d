// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package deployinfo persists deployment info artifacts, one JSON file per
// contracts version, network and deployment kind.
package deployinfo

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/luxfi/filesystem/perms"
	"github.com/luxfi/raiden-deploy/pkg/constants"
	"github.com/luxfi/raiden-deploy/pkg/models"
	"github.com/spf13/afero"
)

var ErrNotFound = errors.New("deployment info not found")

type Store struct {
	fs  afero.Fs
	dir string
}

func NewStore(fs afero.Fs, dir string) *Store {
	return &Store{fs: fs, dir: dir}
}

// Path returns where the info of kind for chainID and version is kept.
func (s *Store) Path(kind models.DeploymentKind, chainID uint64, version string) string {
	prefix := constants.DeploymentFilePrefix
	if kind == models.ServicesDeployment {
		prefix = constants.ServicesDeploymentPrefix
	}
	network := models.NetworkFromChainID(chainID).Name()
	return filepath.Join(s.dir, version, prefix+network+constants.JSONSuffix)
}

// Persist writes info, replacing any earlier file atomically.
func (s *Store) Persist(info *models.DeploymentInfo) (string, error) {
	path := s.Path(info.Kind, info.ChainID, info.ContractsVersion)
	data, err := json.MarshalIndent(info, "", "    ")
	if err != nil {
		return "", fmt.Errorf("failure encoding deployment info: %w", err)
	}
	if err := s.fs.MkdirAll(filepath.Dir(path), perms.ReadWriteExecute); err != nil {
		return "", fmt.Errorf("failure creating %s: %w", filepath.Dir(path), err)
	}
	tmp := path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, append(data, '\n'), perms.ReadWrite); err != nil {
		return "", fmt.Errorf("failure writing %s: %w", tmp, err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return "", fmt.Errorf("failure moving deployment info into %s: %w", path, err)
	}
	return path, nil
}

// Load reads the info of kind for chainID and version.
func (s *Store) Load(kind models.DeploymentKind, chainID uint64, version string) (*models.DeploymentInfo, error) {
	path := s.Path(kind, chainID, version)
	data, err := afero.ReadFile(s.fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failure reading %s: %w", path, err)
	}
	info := &models.DeploymentInfo{}
	if err := json.Unmarshal(data, info); err != nil {
		return nil, fmt.Errorf("invalid deployment info %s: %w", path, err)
	}
	if info.Kind == "" {
		info.Kind = kind
	}
	if info.Kind != kind {
		return nil, fmt.Errorf("%s holds a %s deployment, expected %s", path, info.Kind, kind)
	}
	if info.Contracts == nil {
		info.Contracts = map[models.ContractName]models.DeployedContract{}
	}
	for name := range info.Contracts {
		if !name.IsKnown() {
			return nil, fmt.Errorf("%s lists unknown contract %q", path, name)
		}
	}
	return info, nil
}
