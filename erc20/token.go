// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package erc20 models the fungible-token collaborator the orchestrator
// moves value through. Token is the call surface; Ledger is the
// state-backed implementation used on chain. Tests substitute in-memory
// doubles.
package erc20

import (
	"errors"
	"math/big"

	"github.com/luxfi/geth/common"

	"github.com/luxfi/swaporch/contract"
)

var (
	ErrInvalidAmount         = errors.New("amount must be a non-negative uint256")
	ErrZeroAddress           = errors.New("zero address")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	ErrSupplyOverflow        = errors.New("total supply overflows uint256")
)

// Token is the fungible-token call surface. Every call names the token
// contract address explicitly; the implementation keeps no per-token
// state of its own.
type Token interface {
	// TotalSupply returns the minted supply of [token].
	TotalSupply(state contract.StateDB, token common.Address) *big.Int

	// BalanceOf returns [owner]'s balance of [token].
	BalanceOf(state contract.StateDB, token, owner common.Address) *big.Int

	// Allowance returns how much [spender] may still pull from [owner].
	Allowance(state contract.StateDB, token, owner, spender common.Address) *big.Int

	// Transfer moves [amount] from [from] to [to]. It performs no
	// authorization check on [from]; only trusted, non-dispatched callers
	// (the exchange settling its own custody, liquidity seeding) may use
	// it. Calls on behalf of third parties go through TransferFrom.
	Transfer(state contract.StateDB, token, from, to common.Address, amount *big.Int) error

	// TransferFrom moves [amount] from [from] to [to] on behalf of
	// [spender], consuming [spender]'s allowance.
	TransferFrom(state contract.StateDB, token, spender, from, to common.Address, amount *big.Int) error

	// Approve sets [spender]'s allowance over [owner]'s balance to exactly
	// [amount], overwriting any previous value.
	Approve(state contract.StateDB, token, owner, spender common.Address, amount *big.Int) error

	// Mint creates [amount] new units credited to [to]. Used for genesis
	// seeding and liquidity bootstrap.
	Mint(state contract.StateDB, token, to common.Address, amount *big.Int) error
}
