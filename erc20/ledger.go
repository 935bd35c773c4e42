// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package erc20

import (
	"math/big"

	"github.com/luxfi/geth/common"
	"github.com/zeebo/blake3"

	"github.com/luxfi/swaporch/contract"
)

// Storage key prefixes for token ledger state
var (
	balancePrefix   = []byte("tbal")
	allowancePrefix = []byte("alow")
	supplyPrefix    = []byte("tsup")
)

// Ledger implements Token directly over the token contract's storage
// slots. Balances and allowances live under keys derived from the owner
// (and spender) addresses; all words are unsigned 256-bit big-endian.
type Ledger struct{}

// NewLedger returns a state-backed token ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// makeStorageKey creates a storage key from prefix and identifier
func makeStorageKey(prefix []byte, id []byte) common.Hash {
	h := blake3.New()
	h.Write(prefix)
	h.Write(id)
	var key common.Hash
	h.Digest().Read(key[:])
	return key
}

func balanceKey(owner common.Address) common.Hash {
	return makeStorageKey(balancePrefix, owner.Bytes())
}

func allowanceKey(owner, spender common.Address) common.Hash {
	id := make([]byte, 0, 40)
	id = append(id, owner.Bytes()...)
	id = append(id, spender.Bytes()...)
	return makeStorageKey(allowancePrefix, id)
}

func supplyKey() common.Hash {
	return makeStorageKey(supplyPrefix, nil)
}

func getWord(state contract.StateDB, token common.Address, key common.Hash) *big.Int {
	val := state.GetState(token, key)
	return new(big.Int).SetBytes(val[:])
}

func setWord(state contract.StateDB, token common.Address, key common.Hash, v *big.Int) {
	var val common.Hash
	v.FillBytes(val[:])
	state.SetState(token, key, val)
}

// validAmount rejects nil, negative and over-width amounts before any
// state is touched.
func validAmount(amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 || amount.BitLen() > 256 {
		return ErrInvalidAmount
	}
	return nil
}

// TotalSupply returns the minted supply of [token].
func (l *Ledger) TotalSupply(state contract.StateDB, token common.Address) *big.Int {
	return getWord(state, token, supplyKey())
}

// BalanceOf returns [owner]'s balance of [token].
func (l *Ledger) BalanceOf(state contract.StateDB, token, owner common.Address) *big.Int {
	return getWord(state, token, balanceKey(owner))
}

// Allowance returns how much [spender] may still pull from [owner].
func (l *Ledger) Allowance(state contract.StateDB, token, owner, spender common.Address) *big.Int {
	return getWord(state, token, allowanceKey(owner, spender))
}

// Transfer moves [amount] from [from] to [to].
func (l *Ledger) Transfer(state contract.StateDB, token, from, to common.Address, amount *big.Int) error {
	if err := validAmount(amount); err != nil {
		return err
	}
	if to == (common.Address{}) {
		return ErrZeroAddress
	}
	return l.move(state, token, from, to, amount)
}

// TransferFrom moves [amount] from [from] to [to] on behalf of [spender].
// The spent allowance is decremented; the balance check runs first so a
// failed transfer leaves the allowance untouched.
func (l *Ledger) TransferFrom(state contract.StateDB, token, spender, from, to common.Address, amount *big.Int) error {
	if err := validAmount(amount); err != nil {
		return err
	}
	if to == (common.Address{}) {
		return ErrZeroAddress
	}

	allowance := l.Allowance(state, token, from, spender)
	if allowance.Cmp(amount) < 0 {
		return ErrInsufficientAllowance
	}
	if err := l.move(state, token, from, to, amount); err != nil {
		return err
	}
	setWord(state, token, allowanceKey(from, spender), new(big.Int).Sub(allowance, amount))
	return nil
}

// Approve sets [spender]'s allowance to exactly [amount].
//
// Overwrite semantics, not additive. A spender racing an owner's reset can
// spend both the old and the new allowance (the standard ERC20 approve
// race); callers that care must reset to zero and verify before granting
// a new value.
func (l *Ledger) Approve(state contract.StateDB, token, owner, spender common.Address, amount *big.Int) error {
	if err := validAmount(amount); err != nil {
		return err
	}
	if spender == (common.Address{}) {
		return ErrZeroAddress
	}
	setWord(state, token, allowanceKey(owner, spender), amount)
	return nil
}

// Mint creates [amount] new units credited to [to].
func (l *Ledger) Mint(state contract.StateDB, token, to common.Address, amount *big.Int) error {
	if err := validAmount(amount); err != nil {
		return err
	}
	if to == (common.Address{}) {
		return ErrZeroAddress
	}

	supply := l.TotalSupply(state, token)
	newSupply := new(big.Int).Add(supply, amount)
	if newSupply.BitLen() > 256 {
		return ErrSupplyOverflow
	}
	setWord(state, token, supplyKey(), newSupply)

	balance := l.BalanceOf(state, token, to)
	setWord(state, token, balanceKey(to), new(big.Int).Add(balance, amount))
	return nil
}

// move debits [from] and credits [to]. Balance sums cannot overflow
// because the total supply is capped at minting time.
func (l *Ledger) move(state contract.StateDB, token, from, to common.Address, amount *big.Int) error {
	fromBalance := l.BalanceOf(state, token, from)
	if fromBalance.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	setWord(state, token, balanceKey(from), new(big.Int).Sub(fromBalance, amount))

	toBalance := l.BalanceOf(state, token, to)
	setWord(state, token, balanceKey(to), new(big.Int).Add(toBalance, amount))
	return nil
}
