// Copyright 2021 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

const (
	nativeUnsignedFields = 11
	nativeSignedFields   = 14
)

// NativeTx is the chain-native transaction. Instead of a gas price it carries
// separate limits for execution gas and new storage plus an absolute block
// deadline, and it is signed as typed structured data.
type NativeTx struct {
	ChainID      *big.Int
	Salt         common.Hash
	Nonce        *big.Int
	GasLimit     *big.Int
	StorageLimit *big.Int
	To           *common.Address // nil means contract creation
	Value        *big.Int
	Data         []byte
	ValidUntil   *big.Int
	Tip          *big.Int
	AccessList   AccessList

	// Signature values. V is the recovery id, 0 or 1.
	V *big.Int `json:"v"`
	R *big.Int `json:"r"`
	S *big.Int `json:"s"`
}

// nativeTxRLP is the wire layout. The signature is optional so that the same
// type decodes both the 11 field and the 14 field form.
type nativeTxRLP struct {
	ChainID      *big.Int
	Salt         common.Hash
	Nonce        *big.Int
	GasLimit     *big.Int
	StorageLimit *big.Int
	To           []byte
	Value        *big.Int
	Data         []byte
	ValidUntil   *big.Int
	Tip          *big.Int
	AccessList   AccessList
	V            *big.Int `rlp:"optional"`
	R            *big.Int `rlp:"optional"`
	S            *big.Int `rlp:"optional"`
}

// copy creates a deep copy of the transaction data and initializes all fields.
func (tx *NativeTx) copy() TxData {
	cpy := &NativeTx{
		Salt:  tx.Salt,
		To:    copyAddressPtr(tx.To),
		Data:  common.CopyBytes(tx.Data),
		Nonce: new(big.Int),
		// These are copied below.
		AccessList:   make(AccessList, len(tx.AccessList)),
		ChainID:      new(big.Int),
		GasLimit:     new(big.Int),
		StorageLimit: new(big.Int),
		Value:        new(big.Int),
		ValidUntil:   new(big.Int),
		Tip:          new(big.Int),
	}
	copy(cpy.AccessList, tx.AccessList)
	setIfNotNil(cpy.ChainID, tx.ChainID)
	setIfNotNil(cpy.Nonce, tx.Nonce)
	setIfNotNil(cpy.GasLimit, tx.GasLimit)
	setIfNotNil(cpy.StorageLimit, tx.StorageLimit)
	setIfNotNil(cpy.Value, tx.Value)
	setIfNotNil(cpy.ValidUntil, tx.ValidUntil)
	setIfNotNil(cpy.Tip, tx.Tip)
	if tx.V != nil {
		cpy.V = new(big.Int).Set(tx.V)
	}
	if tx.R != nil {
		cpy.R = new(big.Int).Set(tx.R)
	}
	if tx.S != nil {
		cpy.S = new(big.Int).Set(tx.S)
	}
	return cpy
}

// accessors for innerTx.
func (tx *NativeTx) txType() byte           { return NativeTxType }
func (tx *NativeTx) chainID() *big.Int      { return tx.ChainID }
func (tx *NativeTx) accessList() AccessList { return tx.AccessList }
func (tx *NativeTx) data() []byte           { return tx.Data }
func (tx *NativeTx) gas() *big.Int          { return tx.GasLimit }
func (tx *NativeTx) value() *big.Int        { return tx.Value }
func (tx *NativeTx) nonce() *big.Int        { return tx.Nonce }
func (tx *NativeTx) to() *common.Address    { return tx.To }

// gasPrice is meaningless for a native transaction, the tip is the only
// per-transaction price knob.
func (tx *NativeTx) gasPrice() *big.Int { return tx.Tip }

func (tx *NativeTx) rawSignatureValues() (v, r, s *big.Int) {
	return tx.V, tx.R, tx.S
}

func (tx *NativeTx) setSignatureValues(chainID, v, r, s *big.Int) {
	tx.ChainID, tx.V, tx.R, tx.S = chainID, v, r, s
}

func (tx *NativeTx) signed() bool {
	return tx.V != nil && tx.R != nil && tx.S != nil
}

// validate checks that every numeric field fits in 256 bits. Nil fields are
// treated as zero.
func (tx *NativeTx) validate() error {
	fields := []struct {
		name string
		val  *big.Int
	}{
		{"chainId", tx.ChainID},
		{"nonce", tx.Nonce},
		{"gasLimit", tx.GasLimit},
		{"storageLimit", tx.StorageLimit},
		{"value", tx.Value},
		{"validUntil", tx.ValidUntil},
		{"tip", tx.Tip},
		{"r", tx.R},
		{"s", tx.S},
	}
	for _, f := range fields {
		if f.val == nil {
			continue
		}
		if f.val.Sign() < 0 {
			return errors.Wrapf(ErrNumericOverflow, "negative %s", f.name)
		}
		if _, overflow := uint256.FromBig(f.val); overflow {
			return errors.Wrapf(ErrNumericOverflow, "%s has %d bits", f.name, f.val.BitLen())
		}
	}
	return nil
}

// toRLP builds the wire layout, leaving the signature off unless withSig.
func (tx *NativeTx) toRLP(withSig bool) *nativeTxRLP {
	enc := &nativeTxRLP{
		ChainID:      bigOrZero(tx.ChainID),
		Salt:         tx.Salt,
		Nonce:        bigOrZero(tx.Nonce),
		GasLimit:     bigOrZero(tx.GasLimit),
		StorageLimit: bigOrZero(tx.StorageLimit),
		To:           []byte{},
		Value:        bigOrZero(tx.Value),
		Data:         tx.Data,
		ValidUntil:   bigOrZero(tx.ValidUntil),
		Tip:          bigOrZero(tx.Tip),
		AccessList:   tx.AccessList,
	}
	if enc.AccessList == nil {
		enc.AccessList = AccessList{}
	}
	if tx.To != nil {
		enc.To = tx.To.Bytes()
	}
	if withSig {
		enc.V, enc.R, enc.S = bigOrZero(tx.V), bigOrZero(tx.R), bigOrZero(tx.S)
	}
	return enc
}

// toNative converts a decoded wire layout, rejecting malformed recipients and
// recovery ids.
func (dec *nativeTxRLP) toNative(fields int) (*NativeTx, error) {
	tx := &NativeTx{
		ChainID:      dec.ChainID,
		Salt:         dec.Salt,
		Nonce:        dec.Nonce,
		GasLimit:     dec.GasLimit,
		StorageLimit: dec.StorageLimit,
		Value:        dec.Value,
		Data:         dec.Data,
		ValidUntil:   dec.ValidUntil,
		Tip:          dec.Tip,
		AccessList:   dec.AccessList,
	}
	switch len(dec.To) {
	case 0:
	case common.AddressLength:
		to := common.BytesToAddress(dec.To)
		tx.To = &to
	default:
		return nil, errors.Wrapf(ErrInvalidEnvelope, "recipient has %d bytes", len(dec.To))
	}
	if fields == nativeSignedFields {
		if dec.V == nil || !dec.V.IsUint64() || dec.V.Uint64() > 1 {
			return nil, errors.Wrap(ErrInvalidSignature, "bad recid")
		}
		tx.V, tx.R, tx.S = dec.V, dec.R, dec.S
	}
	return tx, tx.validate()
}

func bigOrZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}

func setIfNotNil(dst, src *big.Int) {
	if src != nil {
		dst.Set(src)
	}
}

func copyAddressPtr(a *common.Address) *common.Address {
	if a == nil {
		return nil
	}
	cpy := *a
	return &cpy
}
