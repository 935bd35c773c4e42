// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package router

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/luxfi/geth/common"
	"github.com/zeebo/blake3"

	"github.com/luxfi/swaporch/contract"
	"github.com/luxfi/swaporch/erc20"
)

// Storage key prefixes for exchange state
var (
	pairPrefix     = []byte("pair")
	reserve0Prefix = []byte("rsv0")
	reserve1Prefix = []byte("rsv1")
)

// Swap fee in basis points, taken from the input amount.
const (
	SwapFeeBPS  uint64 = 30
	BasisPoints uint64 = 10000
)

// Exchange implements Router with constant-product pair pools. Reserves
// live in the exchange contract's storage; the backing token balances are
// held in the exchange's own custody, so reserve bookkeeping and the token
// ledger stay consistent.
type Exchange struct {
	addr  common.Address
	token erc20.Token
}

// NewExchange returns a state-backed exchange at [addr] moving value
// through [token].
func NewExchange(addr common.Address, token erc20.Token) *Exchange {
	return &Exchange{addr: addr, token: token}
}

// Address returns the exchange contract address.
func (e *Exchange) Address() common.Address {
	return e.addr
}

// pairID identifies the pool for an unordered token pair.
func pairID(tokenA, tokenB common.Address) [32]byte {
	t0, t1 := sortTokens(tokenA, tokenB)
	h := blake3.New()
	h.Write(pairPrefix)
	h.Write(t0.Bytes())
	h.Write(t1.Bytes())
	var id [32]byte
	h.Digest().Read(id[:])
	return id
}

func sortTokens(tokenA, tokenB common.Address) (common.Address, common.Address) {
	if bytes.Compare(tokenA.Bytes(), tokenB.Bytes()) < 0 {
		return tokenA, tokenB
	}
	return tokenB, tokenA
}

func makeStorageKey(prefix []byte, id []byte) common.Hash {
	h := blake3.New()
	h.Write(prefix)
	h.Write(id)
	var key common.Hash
	h.Digest().Read(key[:])
	return key
}

// getReserves returns the reserves of [tokenIn] and [tokenOut] for their
// pair, in that order.
func (e *Exchange) getReserves(state contract.StateDB, tokenIn, tokenOut common.Address) (*big.Int, *big.Int) {
	id := pairID(tokenIn, tokenOut)
	r0Hash := state.GetState(e.addr, makeStorageKey(reserve0Prefix, id[:]))
	r1Hash := state.GetState(e.addr, makeStorageKey(reserve1Prefix, id[:]))
	r0 := new(big.Int).SetBytes(r0Hash[:])
	r1 := new(big.Int).SetBytes(r1Hash[:])

	t0, _ := sortTokens(tokenIn, tokenOut)
	if tokenIn == t0 {
		return r0, r1
	}
	return r1, r0
}

func (e *Exchange) setReserves(state contract.StateDB, tokenIn, tokenOut common.Address, reserveIn, reserveOut *big.Int) {
	id := pairID(tokenIn, tokenOut)
	t0, _ := sortTokens(tokenIn, tokenOut)
	r0, r1 := reserveIn, reserveOut
	if tokenIn != t0 {
		r0, r1 = reserveOut, reserveIn
	}

	var r0Hash, r1Hash common.Hash
	r0.FillBytes(r0Hash[:])
	r1.FillBytes(r1Hash[:])
	state.SetState(e.addr, makeStorageKey(reserve0Prefix, id[:]), r0Hash)
	state.SetState(e.addr, makeStorageKey(reserve1Prefix, id[:]), r1Hash)
}

// AddLiquidity seeds the pool for (tokenA, tokenB) with amounts pulled
// from [provider]'s balances.
func (e *Exchange) AddLiquidity(
	state contract.StateDB,
	provider common.Address,
	tokenA, tokenB common.Address,
	amountA, amountB *big.Int,
) error {
	if tokenA == tokenB {
		return ErrInvalidPath
	}
	if amountA == nil || amountA.Sign() <= 0 || amountB == nil || amountB.Sign() <= 0 {
		return ErrInvalidAmount
	}

	if err := e.token.Transfer(state, tokenA, provider, e.addr, amountA); err != nil {
		return fmt.Errorf("pulling %s liquidity: %w", tokenA.Hex(), err)
	}
	if err := e.token.Transfer(state, tokenB, provider, e.addr, amountB); err != nil {
		return fmt.Errorf("pulling %s liquidity: %w", tokenB.Hex(), err)
	}

	reserveA, reserveB := e.getReserves(state, tokenA, tokenB)
	e.setReserves(state, tokenA, tokenB,
		new(big.Int).Add(reserveA, amountA),
		new(big.Int).Add(reserveB, amountB))
	return nil
}

// GetAmountOut quotes the output for [amountIn] against the current
// reserves of (tokenIn, tokenOut).
func (e *Exchange) GetAmountOut(state contract.StateDB, tokenIn, tokenOut common.Address, amountIn *big.Int) (*big.Int, error) {
	reserveIn, reserveOut := e.getReserves(state, tokenIn, tokenOut)
	return getAmountOut(amountIn, reserveIn, reserveOut)
}

// getAmountOut applies the constant-product formula with the swap fee
// taken from the input:
//
//	out = in*(BPS-fee)*reserveOut / (reserveIn*BPS + in*(BPS-fee))
func getAmountOut(amountIn, reserveIn, reserveOut *big.Int) (*big.Int, error) {
	if reserveIn.Sign() == 0 || reserveOut.Sign() == 0 {
		return nil, ErrNoLiquidity
	}
	inWithFee := new(big.Int).Mul(amountIn, big.NewInt(int64(BasisPoints-SwapFeeBPS)))
	numerator := new(big.Int).Mul(inWithFee, reserveOut)
	denominator := new(big.Int).Mul(reserveIn, big.NewInt(int64(BasisPoints)))
	denominator.Add(denominator, inWithFee)
	return numerator.Div(numerator, denominator), nil
}

// SwapExactTokensForTokens implements Router.
//
// The exchange pulls path[0] input from [from] via the allowance [from]
// granted to the exchange address, walks the path updating each pair's
// reserves, and credits the final output to [to]. Any failure surfaces
// before the caller commits, so the caller's snapshot discipline decides
// atomicity.
func (e *Exchange) SwapExactTokensForTokens(
	state contract.StateDB,
	blockTime uint64,
	from common.Address,
	amountIn *big.Int,
	amountOutMin *big.Int,
	path []common.Address,
	to common.Address,
	deadline uint64,
) ([]*big.Int, error) {
	if blockTime > deadline {
		return nil, ErrExpired
	}
	if len(path) < 2 {
		return nil, ErrInvalidPath
	}
	for i := 0; i+1 < len(path); i++ {
		if path[i] == path[i+1] {
			return nil, ErrInvalidPath
		}
	}
	if amountIn == nil || amountIn.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}
	if amountOutMin == nil || amountOutMin.Sign() < 0 {
		return nil, ErrInvalidAmount
	}

	// Quote the whole path before moving anything.
	amounts := make([]*big.Int, len(path))
	amounts[0] = new(big.Int).Set(amountIn)
	for i := 0; i+1 < len(path); i++ {
		reserveIn, reserveOut := e.getReserves(state, path[i], path[i+1])
		out, err := getAmountOut(amounts[i], reserveIn, reserveOut)
		if err != nil {
			return nil, err
		}
		if out.Cmp(reserveOut) >= 0 {
			return nil, ErrNoLiquidity
		}
		amounts[i+1] = out
	}
	if amounts[len(amounts)-1].Cmp(amountOutMin) < 0 {
		return nil, ErrInsufficientOutput
	}

	// Pull the input into exchange custody, then settle reserves per hop.
	if err := e.token.TransferFrom(state, path[0], e.addr, from, e.addr, amountIn); err != nil {
		return nil, fmt.Errorf("pulling swap input: %w", err)
	}
	for i := 0; i+1 < len(path); i++ {
		reserveIn, reserveOut := e.getReserves(state, path[i], path[i+1])
		e.setReserves(state, path[i], path[i+1],
			new(big.Int).Add(reserveIn, amounts[i]),
			new(big.Int).Sub(reserveOut, amounts[i+1]))
	}
	amountOut := amounts[len(amounts)-1]
	if err := e.token.Transfer(state, path[len(path)-1], e.addr, to, amountOut); err != nil {
		return nil, fmt.Errorf("crediting swap output: %w", err)
	}

	return amounts, nil
}
