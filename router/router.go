// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package router models the exchange collaborator the orchestrator swaps
// through. Router is the call surface; Exchange is the state-backed
// constant-product implementation. Tests substitute in-memory doubles.
package router

import (
	"errors"
	"math/big"

	"github.com/luxfi/geth/common"

	"github.com/luxfi/swaporch/contract"
)

var (
	ErrInvalidPath        = errors.New("path must contain at least two distinct tokens")
	ErrExpired            = errors.New("deadline has passed")
	ErrNoLiquidity        = errors.New("no liquidity for pair")
	ErrInsufficientOutput = errors.New("output below minimum")
	ErrInvalidAmount      = errors.New("amount must be a positive uint256")
)

// Router executes an exact-input token swap along [path], crediting the
// final output to [to]. It pulls [amountIn] of path[0] from [from] using
// the allowance [from] granted beforehand. The returned slice holds the
// amount at every hop, input first.
type Router interface {
	SwapExactTokensForTokens(
		state contract.StateDB,
		blockTime uint64,
		from common.Address,
		amountIn *big.Int,
		amountOutMin *big.Int,
		path []common.Address,
		to common.Address,
		deadline uint64,
	) ([]*big.Int, error)
}
