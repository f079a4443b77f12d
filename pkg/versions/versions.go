// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package versions holds the contracts-version policy: which construction
// parameters a given contracts version accepts.
package versions

import (
	"fmt"
	"sort"
	"strings"

	"github.com/luxfi/raiden-deploy/pkg/constants"
	"golang.org/x/mod/semver"
)

// Canonical returns the "vX.Y.Z" form semver expects, or "" if version is not semver.
func Canonical(version string) string {
	v := strings.TrimSpace(version)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return v
}

// IsRelease reports whether version is a semver release identifier.
func IsRelease(version string) bool {
	return Canonical(version) != ""
}

// AtLeast reports version >= min. Non-semver versions are development builds
// that track the newest contracts, so they compare as newer than any release.
func AtLeast(version, min string) bool {
	v := Canonical(version)
	if v == "" {
		return true
	}
	return semver.Compare(v, Canonical(min)) >= 0
}

// Sort orders release versions ascending.
func Sort(vs []string) {
	sort.Slice(vs, func(i, j int) bool {
		return semver.Compare(Canonical(vs[i]), Canonical(vs[j])) < 0
	})
}

// RequiresMaxTokenNetworks tells whether the TokenNetworkRegistry of version
// takes a construction-time cap on the number of token networks. An explicit
// manifest setting wins over the version rule.
func RequiresMaxTokenNetworks(version string, override *bool) bool {
	if override != nil {
		return *override
	}
	return AtLeast(version, constants.MaxTokenNetworksSinceVersion)
}

// ValidateParameters checks --max-token-networks against the version policy
// before anything is sent to the chain.
func ValidateParameters(version string, required bool, maxTokenNetworks *uint64) error {
	got := maxTokenNetworks != nil
	switch {
	case required && !got:
		return fmt.Errorf(
			"%w: for contracts version %s, --max-token-networks is mandatory. See --help",
			constants.ErrParameter, version,
		)
	case !required && got:
		return fmt.Errorf(
			"%w: for contracts version %s, --max-token-networks is forbidden because its TokenNetworkRegistry is not configurable this way",
			constants.ErrParameter, version,
		)
	}
	return nil
}
