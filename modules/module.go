// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package modules tracks the stateful precompile modules of the swap
// orchestration family and the reserved address ranges they may occupy.
package modules

import (
	"bytes"

	"github.com/luxfi/geth/common"

	"github.com/luxfi/swaporch/contract"
)

// Module pairs a precompile contract with its address and configurator.
type Module struct {
	// ConfigKey is the json key identifying this precompile in upgrade files.
	ConfigKey string
	// Address is the reserved address the contract is installed at.
	Address common.Address
	// Contract handles calls dispatched to Address.
	Contract contract.StatefulPrecompiledContract
	// Configurator applies the module's activation config.
	Configurator contract.Configurator
}

type moduleArray []Module

func (m moduleArray) Len() int {
	return len(m)
}

func (m moduleArray) Swap(i, j int) {
	m[i], m[j] = m[j], m[i]
}

func (m moduleArray) Less(i, j int) bool {
	return bytes.Compare(m[i].Address.Bytes(), m[j].Address.Bytes()) < 0
}
