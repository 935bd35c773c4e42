// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contract

import (
	"errors"
	"math/big"

	"github.com/luxfi/geth/common"
)

// WordLength is the width of an ABI word.
const WordLength = 32

// SelectorLength is the width of a function selector.
const SelectorLength = 4

var ErrWordOverflow = errors.New("value does not fit in a 32-byte word")

// PackAddressWord encodes an address as a right-aligned 32-byte word.
func PackAddressWord(addr common.Address) []byte {
	word := make([]byte, WordLength)
	copy(word[12:], addr.Bytes())
	return word
}

// UnpackAddressWord reads a right-aligned address from a 32-byte word.
func UnpackAddressWord(word []byte) common.Address {
	return common.BytesToAddress(word[12:WordLength])
}

// PackBigWord encodes a non-negative big integer as a 32-byte word.
func PackBigWord(v *big.Int) ([]byte, error) {
	if v == nil || v.Sign() < 0 || v.BitLen() > 256 {
		return nil, ErrWordOverflow
	}
	word := make([]byte, WordLength)
	v.FillBytes(word)
	return word, nil
}

// UnpackBigWord reads a 32-byte word as an unsigned big integer.
func UnpackBigWord(word []byte) *big.Int {
	return new(big.Int).SetBytes(word[:WordLength])
}

// PackUint64Word encodes v into the low 8 bytes of a 32-byte word.
func PackUint64Word(v uint64) []byte {
	word := make([]byte, WordLength)
	new(big.Int).SetUint64(v).FillBytes(word)
	return word
}
