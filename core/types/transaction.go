// Copyright 2014 The go-ethereum Authors
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
	"bytes"
	"math/big"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

var (
	ErrUnsupportedTxType = errors.New("unsupported transaction type")
	ErrInvalidEnvelope   = errors.New("invalid transaction envelope")
	ErrInvalidSignature  = errors.New("invalid transaction signature")
	ErrNumericOverflow   = errors.New("numeric field overflows 256 bits")
	ErrInvalidChainId    = errors.New("invalid chain id for signer")
)

// Transaction types.
const (
	LegacyTxType     = ethtypes.LegacyTxType
	AccessListTxType = ethtypes.AccessListTxType
	DynamicFeeTxType = ethtypes.DynamicFeeTxType
	NativeTxType     = 0x60
)

// Transaction is either a chain-native transaction or a standard Ethereum
// transaction. Exactly one inner variant is set.
type Transaction struct {
	inner TxData    // Consensus contents of a transaction
	time  time.Time // Time first decoded locally

	// caches
	hash atomic.Value
	size atomic.Value
	from atomic.Value
}

// NewTx creates a new transaction.
func NewTx(inner TxData) *Transaction {
	tx := new(Transaction)
	tx.setDecoded(inner.copy(), 0)
	return tx
}

// NewStandardTx wraps a standard Ethereum transaction.
func NewStandardTx(std *ethtypes.Transaction) *Transaction {
	return NewTx(&StandardTx{Tx: std})
}

// TxData is the underlying data of a transaction.
//
// This is implemented by NativeTx and StandardTx.
type TxData interface {
	txType() byte // returns the type ID
	copy() TxData // creates a deep copy and initializes all fields

	chainID() *big.Int
	accessList() AccessList
	data() []byte
	gas() *big.Int
	gasPrice() *big.Int
	value() *big.Int
	nonce() *big.Int
	to() *common.Address

	rawSignatureValues() (v, r, s *big.Int)
	setSignatureValues(chainID, v, r, s *big.Int)
	signed() bool
}

// TxTypeOf classifies a wire payload by its first byte.
func TxTypeOf(b []byte) (byte, error) {
	if len(b) == 0 {
		return 0, errors.Wrap(ErrInvalidEnvelope, "empty payload")
	}
	switch {
	case b[0] > 0x7f:
		return LegacyTxType, nil
	case b[0] == AccessListTxType, b[0] == DynamicFeeTxType, b[0] == NativeTxType:
		return b[0], nil
	default:
		return 0, errors.Wrapf(ErrUnsupportedTxType, "discriminant 0x%02x", b[0])
	}
}

// IsStandardType reports whether typ is handled by the standard Ethereum codec.
func IsStandardType(typ byte) bool {
	return typ == LegacyTxType || typ == AccessListTxType || typ == DynamicFeeTxType
}

// ParseTransaction decodes a wire payload of any supported type. Signed native
// payloads are verified before returning.
func ParseTransaction(b []byte) (*Transaction, error) {
	tx := new(Transaction)
	if err := tx.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return tx, nil
}

// MarshalBinary returns the canonical encoding of the transaction.
func (tx *Transaction) MarshalBinary() ([]byte, error) {
	switch inner := tx.inner.(type) {
	case *StandardTx:
		return inner.Tx.MarshalBinary()
	case *NativeTx:
		var buf bytes.Buffer
		if err := inner.encode(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, ErrUnsupportedTxType
	}
}

// UnmarshalBinary decodes the canonical encoding of transactions.
func (tx *Transaction) UnmarshalBinary(b []byte) error {
	typ, err := TxTypeOf(b)
	if err != nil {
		return err
	}
	if IsStandardType(typ) {
		std := new(ethtypes.Transaction)
		if err := std.UnmarshalBinary(b); err != nil {
			return err
		}
		tx.setDecoded(&StandardTx{Tx: std}, len(b))
		return nil
	}
	inner, err := decodeNative(b[1:])
	if err != nil {
		return err
	}
	tx.setDecoded(inner, len(b))
	if inner.signed() {
		// The derived fields only exist once the signature checks out.
		if _, err := Sender(NewEIP712Signer(inner.ChainID), tx); err != nil {
			return err
		}
	}
	return nil
}

// encode writes 0x60 followed by the field list.
func (tx *NativeTx) encode(w *bytes.Buffer) error {
	if err := tx.validate(); err != nil {
		return err
	}
	w.WriteByte(NativeTxType)
	return rlp.Encode(w, tx.toRLP(tx.signed()))
}

// decodeNative decodes the list that follows the native discriminant.
func decodeNative(payload []byte) (*NativeTx, error) {
	var fields []rlp.RawValue
	if err := rlp.DecodeBytes(payload, &fields); err != nil {
		return nil, errors.Wrap(ErrInvalidEnvelope, err.Error())
	}
	if n := len(fields); n != nativeUnsignedFields && n != nativeSignedFields {
		return nil, errors.Wrapf(ErrInvalidEnvelope, "expected %d or %d fields, got %d",
			nativeUnsignedFields, nativeSignedFields, n)
	}
	var dec nativeTxRLP
	if err := rlp.DecodeBytes(payload, &dec); err != nil {
		return nil, errors.Wrap(ErrInvalidEnvelope, err.Error())
	}
	return dec.toNative(len(fields))
}

// setDecoded sets the inner transaction and size after decoding.
func (tx *Transaction) setDecoded(inner TxData, size int) {
	tx.inner = inner
	tx.time = time.Now()
	if size > 0 {
		tx.size.Store(uint64(size))
	}
}

// Type returns the transaction type.
func (tx *Transaction) Type() uint8 {
	return tx.inner.txType()
}

// IsNative reports whether the transaction uses the chain-native envelope.
func (tx *Transaction) IsNative() bool {
	return tx.Type() == NativeTxType
}

// Native returns a copy of the native fields, or nil for standard transactions.
func (tx *Transaction) Native() *NativeTx {
	if inner, ok := tx.inner.(*NativeTx); ok {
		return inner.copy().(*NativeTx)
	}
	return nil
}

// Standard returns the wrapped go-ethereum transaction, or nil for native ones.
func (tx *Transaction) Standard() *ethtypes.Transaction {
	if inner, ok := tx.inner.(*StandardTx); ok {
		return inner.Tx
	}
	return nil
}

// ChainId returns the chain ID of the transaction.
func (tx *Transaction) ChainId() *big.Int {
	return bigCopy(tx.inner.chainID())
}

// Data returns the input data of the transaction.
func (tx *Transaction) Data() []byte { return common.CopyBytes(tx.inner.data()) }

// AccessList returns the access list of the transaction.
func (tx *Transaction) AccessList() AccessList { return tx.inner.accessList() }

// Gas returns the execution gas limit of the transaction.
func (tx *Transaction) Gas() *big.Int { return bigCopy(tx.inner.gas()) }

// GasPrice returns the gas price of a standard transaction and the tip of a
// native one.
func (tx *Transaction) GasPrice() *big.Int { return bigCopy(tx.inner.gasPrice()) }

// Value returns the ether amount of the transaction.
func (tx *Transaction) Value() *big.Int { return bigCopy(tx.inner.value()) }

// Nonce returns the sender account nonce of the transaction.
func (tx *Transaction) Nonce() *big.Int { return bigCopy(tx.inner.nonce()) }

// To returns the recipient address of the transaction.
// For contract-creation transactions, To returns nil.
func (tx *Transaction) To() *common.Address {
	return copyAddressPtr(tx.inner.to())
}

// StorageLimit returns the storage byte limit, zero for standard transactions.
func (tx *Transaction) StorageLimit() *big.Int {
	if inner, ok := tx.inner.(*NativeTx); ok {
		return bigCopy(inner.StorageLimit)
	}
	return new(big.Int)
}

// ValidUntil returns the block deadline, zero for standard transactions.
func (tx *Transaction) ValidUntil() *big.Int {
	if inner, ok := tx.inner.(*NativeTx); ok {
		return bigCopy(inner.ValidUntil)
	}
	return new(big.Int)
}

// Salt returns the typed-data domain salt, empty for standard transactions.
func (tx *Transaction) Salt() common.Hash {
	if inner, ok := tx.inner.(*NativeTx); ok {
		return inner.Salt
	}
	return common.Hash{}
}

// RawSignatureValues returns the V, R, S signature values of the transaction.
// The return values should not be modified by the caller.
func (tx *Transaction) RawSignatureValues() (v, r, s *big.Int) {
	return tx.inner.rawSignatureValues()
}

// Signed reports whether the transaction carries a signature.
func (tx *Transaction) Signed() bool {
	return tx.inner.signed()
}

// From returns the sender derived during verification, or nil when the
// transaction has not been verified.
func (tx *Transaction) From() *common.Address {
	if sc := tx.from.Load(); sc != nil {
		from := sc.(sigCache).from
		return &from
	}
	return nil
}

// Hash returns the transaction hash. Native transactions are identified by
// their typed-data hash, standard ones by the hash of their encoding.
func (tx *Transaction) Hash() common.Hash {
	if hash := tx.hash.Load(); hash != nil {
		return hash.(common.Hash)
	}
	var h common.Hash
	switch inner := tx.inner.(type) {
	case *StandardTx:
		h = inner.Tx.Hash()
	case *NativeTx:
		var err error
		if h, err = TypedDataHash(inner); err != nil {
			return common.Hash{}
		}
	}
	tx.hash.Store(h)
	return h
}

// Size returns the encoded size of the transaction, either by encoding and
// returning it, or returning a previously cached value.
func (tx *Transaction) Size() uint64 {
	if size := tx.size.Load(); size != nil {
		return size.(uint64)
	}
	enc, err := tx.MarshalBinary()
	if err != nil {
		return 0
	}
	tx.size.Store(uint64(len(enc)))
	return uint64(len(enc))
}

// WithSignature returns a new transaction with the given signature.
// This signature needs to be in the [R || S || V] format where V is 0 or 1.
func (tx *Transaction) WithSignature(signer Signer, sig []byte) (*Transaction, error) {
	r, s, v, err := signer.SignatureValues(tx, sig)
	if err != nil {
		return nil, err
	}
	cpy := tx.inner.copy()
	cpy.setSignatureValues(new(big.Int).Set(signer.ChainID()), v, r, s)
	return &Transaction{inner: cpy, time: tx.time}, nil
}

// Transactions is a Transaction slice type for basic sorting.
type Transactions []*Transaction

// Len returns the length of s.
func (s Transactions) Len() int { return len(s) }

// Hashes returns the hash of every transaction in s.
func (s Transactions) Hashes() []common.Hash {
	hashes := make([]common.Hash, len(s))
	for i, tx := range s {
		hashes[i] = tx.Hash()
	}
	return hashes
}

func bigCopy(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}
