// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package precompileconfig defines the activation config types shared by
// all stateful precompile modules.
package precompileconfig

import "math/big"

// ChainConfig provides chain-level context to config verification.
type ChainConfig interface {
	ChainID() *big.Int
}

// Config is implemented by every precompile's JSON activation config.
type Config interface {
	// Key returns the json key used to identify this config in upgrade files.
	Key() string
	// Timestamp returns the activation timestamp, nil when never active.
	Timestamp() *uint64
	// IsDisabled returns true when the upgrade disables the precompile.
	IsDisabled() bool
	// Equal reports whether cfg describes the same upgrade.
	Equal(cfg Config) bool
	// Verify checks the config is internally consistent.
	Verify(chainConfig ChainConfig) error
}

// Upgrade carries the common activation fields embedded by every Config.
type Upgrade struct {
	BlockTimestamp *uint64 `json:"blockTimestamp,omitempty"`
	Disable        bool    `json:"disable,omitempty"`
}

// Timestamp returns the upgrade activation timestamp.
func (u *Upgrade) Timestamp() *uint64 {
	return u.BlockTimestamp
}

// Equal reports whether both upgrades activate at the same time with the
// same disable flag.
func (u *Upgrade) Equal(other *Upgrade) bool {
	if other == nil {
		return false
	}
	if u.Disable != other.Disable {
		return false
	}
	if (u.BlockTimestamp == nil) != (other.BlockTimestamp == nil) {
		return false
	}
	if u.BlockTimestamp != nil && *u.BlockTimestamp != *other.BlockTimestamp {
		return false
	}
	return true
}
