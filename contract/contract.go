// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package contract defines the runtime surface stateful precompiles are
// written against: EVM state access, block context, gas accounting and the
// configuration hooks invoked at activation time.
package contract

import (
	"errors"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/core/tracing"
	ethtypes "github.com/luxfi/geth/core/types"

	"github.com/luxfi/swaporch/precompileconfig"
)

// ErrInsufficientGas is returned when the supplied gas cannot cover an
// operation's cost. The remaining gas is consumed entirely.
var ErrInsufficientGas = errors.New("insufficient gas")

// StateDB is the subset of EVM state a precompile may read and mutate.
// Snapshot/RevertToSnapshot expose the journal so a precompile can make a
// sequence of state changes all-or-nothing.
type StateDB interface {
	GetState(addr common.Address, key common.Hash) common.Hash
	SetState(addr common.Address, key common.Hash, value common.Hash) common.Hash

	GetBalance(addr common.Address) *uint256.Int
	AddBalance(addr common.Address, amount *uint256.Int, reason tracing.BalanceChangeReason) uint256.Int
	SubBalance(addr common.Address, amount *uint256.Int, reason tracing.BalanceChangeReason) uint256.Int

	GetNonce(addr common.Address) uint64
	SetNonce(addr common.Address, nonce uint64, reason tracing.NonceChangeReason)

	CreateAccount(addr common.Address)
	Exist(addr common.Address) bool

	AddLog(log *ethtypes.Log)
	Logs() []*ethtypes.Log

	TxHash() common.Hash

	Snapshot() int
	RevertToSnapshot(snapshot int)
}

// BlockContext provides block metadata to a running precompile.
type BlockContext interface {
	Number() *big.Int
	Timestamp() uint64
}

// ConfigurationBlockContext is the block context available while a
// precompile is being configured during an upgrade.
type ConfigurationBlockContext interface {
	Number() *big.Int
	Timestamp() uint64
}

// AccessibleState is the state handed to a precompile on invocation.
type AccessibleState interface {
	GetStateDB() StateDB
	GetBlockContext() BlockContext
}

// StatefulPrecompiledContract is the interface every stateful precompile
// implements. Run receives the raw calldata including the 4-byte selector
// and returns the output, the remaining gas and an error on revert.
type StatefulPrecompiledContract interface {
	Run(
		accessibleState AccessibleState,
		caller common.Address,
		addr common.Address,
		input []byte,
		suppliedGas uint64,
		readOnly bool,
	) (ret []byte, remainingGas uint64, err error)
}

// Configurator applies a precompile's activation config to state.
type Configurator interface {
	MakeConfig() precompileconfig.Config
	Configure(
		chainConfig precompileconfig.ChainConfig,
		cfg precompileconfig.Config,
		state StateDB,
		blockContext ConfigurationBlockContext,
	) error
}

// DeductGas subtracts requiredGas from suppliedGas, consuming everything
// when the supply falls short.
func DeductGas(suppliedGas uint64, requiredGas uint64) (uint64, error) {
	if suppliedGas < requiredGas {
		return 0, ErrInsufficientGas
	}
	return suppliedGas - requiredGas, nil
}
