// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package swaporch implements the SwapOrchestrator precompile (LP-9016).
// It moves a caller's tokens into contract custody, grants the swap
// router a tightly-sized allowance, and invokes the router's exact-input
// swap, all inside one atomic invocation: either every step commits or
// the whole sequence reverts.
package swaporch

import (
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/luxfi/crypto"
	"github.com/luxfi/geth/common"
	log "github.com/luxfi/log"

	"github.com/luxfi/swaporch/contract"
	"github.com/luxfi/swaporch/erc20"
	"github.com/luxfi/swaporch/router"
)

// Gas costs
const (
	GasSetupSwap   uint64 = 20_000 // Custody transfer (one token call)
	GasApproveSwap uint64 = 10_000 // Allowance grant (one token call)
	GasExecuteSwap uint64 = 45_000 // Full custody -> allowance -> swap flow
	GasViewRead    uint64 = 200    // Config reads
)

// Function selectors (first 4 bytes of keccak256 of the signature)
var (
	SelectorSetupSwap     = selector("setupSwap(address,address,uint256)")
	SelectorApproveSwap   = selector("approveSwap(address,uint256)")
	SelectorExecuteSwap   = selector("executeSwap(address,uint256,uint256,address,address)")
	SelectorSourceToken   = selector("sourceToken()")
	SelectorRouter        = selector("router()")
	SelectorDeadlineGrace = selector("deadlineGrace()")
)

func selector(signature string) [4]byte {
	var sel [4]byte
	copy(sel[:], crypto.Keccak256([]byte(signature))[:4])
	return sel
}

// Errors
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrReadOnly         = errors.New("state mutation in read-only call")
	ErrNotConfigured    = errors.New("orchestrator not configured")
	ErrZeroAmount       = errors.New("amount must be nonzero")
	ErrZeroAmountOutMin = errors.New("amountOutMin must be nonzero")
	ErrZeroRecipient    = errors.New("recipient cannot be the zero address")
	ErrZeroSpender      = errors.New("spender cannot be the zero address")
	ErrSameToken        = errors.New("destination token equals the source token")
)

// SwapOrchestrator holds the process-wide configuration (source token,
// router, deadline grace) set once at activation and read-only
// thereafter. All swap state is transient, scoped to a single invocation.
type SwapOrchestrator struct {
	mu sync.RWMutex

	sourceToken common.Address
	routerAddr  common.Address
	grace       uint64

	token  erc20.Token
	router router.Router

	log log.Logger

	configured bool
}

// New returns an orchestrator moving value through [token] and swapping
// through [rtr]. Configuration is applied separately via Configure or,
// in tests, SetConfig.
func New(token erc20.Token, rtr router.Router) *SwapOrchestrator {
	return &SwapOrchestrator{
		token:  token,
		router: rtr,
		log:    log.NewTestLogger(log.InfoLevel),
	}
}

// SwapOrchestratorPrecompile is the singleton registered by module.go.
// Its router is wired when the activation config names the exchange.
var SwapOrchestratorPrecompile = New(erc20.NewLedger(), nil)

// SetConfig applies the source-token address, router address and deadline
// grace window. Called once from the module configurator.
func (o *SwapOrchestrator) SetConfig(sourceToken, routerAddr common.Address, grace uint64, rtr router.Router) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sourceToken = sourceToken
	o.routerAddr = routerAddr
	o.grace = grace
	if rtr != nil {
		o.router = rtr
	}
	o.configured = true
}

// config returns the read-only configuration snapshot.
func (o *SwapOrchestrator) config() (source, routerAddr common.Address, grace uint64, ok bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.sourceToken, o.routerAddr, o.grace, o.configured
}

// Run executes the orchestrator precompile.
func (o *SwapOrchestrator) Run(
	accessibleState contract.AccessibleState,
	caller common.Address,
	addr common.Address,
	input []byte,
	suppliedGas uint64,
	readOnly bool,
) ([]byte, uint64, error) {
	if len(input) < contract.SelectorLength {
		return nil, suppliedGas, ErrInvalidInput
	}

	var sel [4]byte
	copy(sel[:], input[:contract.SelectorLength])
	args := input[contract.SelectorLength:]

	switch sel {
	case SelectorSetupSwap:
		return o.setupSwap(accessibleState, caller, addr, args, suppliedGas, readOnly)
	case SelectorApproveSwap:
		return o.approveSwap(accessibleState, caller, addr, args, suppliedGas, readOnly)
	case SelectorExecuteSwap:
		return o.executeSwap(accessibleState, caller, addr, args, suppliedGas, readOnly)

	case SelectorSourceToken:
		return o.readAddress(suppliedGas, func() common.Address { s, _, _, _ := o.config(); return s })
	case SelectorRouter:
		return o.readAddress(suppliedGas, func() common.Address { _, r, _, _ := o.config(); return r })
	case SelectorDeadlineGrace:
		return o.readDeadlineGrace(suppliedGas)

	default:
		return nil, suppliedGas, fmt.Errorf("%w: unknown selector %#x", ErrInvalidInput, sel)
	}
}

func (o *SwapOrchestrator) readAddress(suppliedGas uint64, get func() common.Address) ([]byte, uint64, error) {
	remainingGas, err := contract.DeductGas(suppliedGas, GasViewRead)
	if err != nil {
		return nil, 0, err
	}
	return contract.PackAddressWord(get()), remainingGas, nil
}

func (o *SwapOrchestrator) readDeadlineGrace(suppliedGas uint64) ([]byte, uint64, error) {
	remainingGas, err := contract.DeductGas(suppliedGas, GasViewRead)
	if err != nil {
		return nil, 0, err
	}
	_, _, grace, _ := o.config()
	return contract.PackUint64Word(grace), remainingGas, nil
}

// trueWord is the ABI encoding of boolean success.
func trueWord() []byte {
	word := make([]byte, contract.WordLength)
	word[contract.WordLength-1] = 1
	return word
}

// wordArgs slices fixed-width calldata into 32-byte words, rejecting
// short or oversized input.
func wordArgs(args []byte, n int) ([][]byte, error) {
	if len(args) != n*contract.WordLength {
		return nil, fmt.Errorf("%w: want %d argument words, got %d bytes", ErrInvalidInput, n, len(args))
	}
	words := make([][]byte, n)
	for i := 0; i < n; i++ {
		words[i] = args[i*contract.WordLength : (i+1)*contract.WordLength]
	}
	return words, nil
}

// amountArg reads a word as an amount. Width is guaranteed by the word
// slicing; the zero check is the caller's precondition.
func amountArg(word []byte) *big.Int {
	return contract.UnpackBigWord(word)
}
