// Copyright 2016 The go-ethereum Authors
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
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/AcalaNetwork/bodhi.js-sub002/params"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// sigCache is used to cache the derived sender and contains
// the signer used to derive it.
type sigCache struct {
	signer Signer
	from   common.Address
}

// MakeSigner returns the signer for native transactions on the given chain.
func MakeSigner(config *params.ChainConfig) Signer {
	return NewEIP712Signer(config.ChainID)
}

// SignTx signs the transaction using the given signer and private key.
func SignTx(tx *Transaction, s Signer, prv *ecdsa.PrivateKey) (*Transaction, error) {
	h := s.Hash(tx)
	sig, err := crypto.Sign(h[:], prv)
	if err != nil {
		return nil, err
	}
	return tx.WithSignature(s, sig)
}

// SignNewTx creates a transaction and signs it.
func SignNewTx(prv *ecdsa.PrivateKey, s Signer, txdata TxData) (*Transaction, error) {
	return SignTx(NewTx(txdata), s, prv)
}

// MustSignNewTx creates a transaction and signs it.
// This panics if the transaction cannot be signed.
func MustSignNewTx(prv *ecdsa.PrivateKey, s Signer, txdata TxData) *Transaction {
	tx, err := SignNewTx(prv, s, txdata)
	if err != nil {
		panic(err)
	}
	return tx
}

// Sender returns the address derived from the signature (V, R, S) using secp256k1
// elliptic curve and an error if it failed deriving or upon an incorrect
// signature.
//
// Sender may cache the address, allowing it to be used regardless of
// signing method. The cache is invalidated if the cached signer does
// not match the signer used in the current call.
func Sender(signer Signer, tx *Transaction) (common.Address, error) {
	if sc := tx.from.Load(); sc != nil {
		sigCache := sc.(sigCache)
		// If the signer used to derive from in a previous
		// call is not the same as used current, invalidate
		// the cache.
		if sigCache.signer.Equal(signer) {
			return sigCache.from, nil
		}
	}

	addr, err := signer.Sender(tx)
	if err != nil {
		return common.Address{}, err
	}
	tx.from.Store(sigCache{signer: signer, from: addr})
	return addr, nil
}

// Signer encapsulates transaction signature handling. The name of this type is slightly
// misleading because Signers don't actually sign, they're just for validating and
// processing of signatures.
type Signer interface {
	// Sender returns the sender address of the transaction.
	Sender(tx *Transaction) (common.Address, error)

	// SignatureValues returns the raw R, S, V values corresponding to the
	// given signature.
	SignatureValues(tx *Transaction, sig []byte) (r, s, v *big.Int, err error)
	ChainID() *big.Int

	// Hash returns 'signature hash', i.e. the transaction hash that is signed by the
	// private key.
	Hash(tx *Transaction) common.Hash

	// Equal returns true if the given signer is the same as the receiver.
	Equal(Signer) bool
}

// EIP712Signer signs native transactions as typed structured data. Standard
// transactions are handed to go-ethereum's latest signer for the same chain.
type EIP712Signer struct {
	chainId *big.Int
}

// NewEIP712Signer instantiates a new signer object
func NewEIP712Signer(chainId *big.Int) Signer {
	if chainId == nil {
		chainId = new(big.Int)
	}
	return EIP712Signer{chainId: chainId}
}

func (s EIP712Signer) Sender(tx *Transaction) (common.Address, error) {
	if std := tx.Standard(); std != nil {
		return ethtypes.Sender(ethtypes.LatestSignerForChainID(s.chainId), std)
	}
	if !tx.Signed() {
		return common.Address{}, errors.Wrap(ErrInvalidSignature, "transaction is not signed")
	}
	if tx.ChainId().Cmp(s.chainId) != 0 {
		return common.Address{}, ErrInvalidChainId
	}
	V, R, S := tx.RawSignatureValues()
	return recoverPlain(s.Hash(tx), R, S, V)
}

func (s EIP712Signer) Equal(s2 Signer) bool {
	x, ok := s2.(EIP712Signer)
	return ok && x.chainId.Cmp(s.chainId) == 0
}

func (s EIP712Signer) SignatureValues(tx *Transaction, sig []byte) (R, S, V *big.Int, err error) {
	if !tx.IsNative() {
		return nil, nil, nil, errors.Wrapf(ErrUnsupportedTxType, "signer only signs type 0x%02x", NativeTxType)
	}
	// Check that chain ID of tx matches the signer. We also accept ID zero here,
	// because it indicates that the chain ID was not specified in the tx.
	if tx.ChainId().Sign() != 0 && tx.ChainId().Cmp(s.chainId) != 0 {
		return nil, nil, nil, ErrInvalidChainId
	}
	R, S, V = decodeSignature(sig)
	return R, S, V, nil
}

// Hash returns the typed-data hash to be signed by the sender. The domain is
// bound to the transaction's own chain id and salt.
func (s EIP712Signer) Hash(tx *Transaction) common.Hash {
	inner, ok := tx.inner.(*NativeTx)
	if !ok {
		return ethtypes.LatestSignerForChainID(s.chainId).Hash(tx.Standard())
	}
	unsigned := inner.copy().(*NativeTx)
	if unsigned.ChainID.Sign() == 0 {
		unsigned.ChainID.Set(s.chainId)
	}
	h, err := TypedDataHash(unsigned)
	if err != nil {
		return common.Hash{}
	}
	return h
}

func (s EIP712Signer) ChainID() *big.Int {
	return s.chainId
}

// decodeSignature splits a 65 byte [R || S || V] signature. V is left as the
// raw recovery id.
func decodeSignature(sig []byte) (r, s, v *big.Int) {
	if len(sig) != crypto.SignatureLength {
		panic(fmt.Sprintf("wrong size for signature: got %d, want %d", len(sig), crypto.SignatureLength))
	}
	r = new(big.Int).SetBytes(sig[:32])
	s = new(big.Int).SetBytes(sig[32:64])
	v = new(big.Int).SetBytes([]byte{sig[64]})
	return r, s, v
}

func recoverPlain(sighash common.Hash, R, S, Vb *big.Int) (common.Address, error) {
	if !Vb.IsUint64() || Vb.Uint64() > 1 {
		return common.Address{}, errors.Wrap(ErrInvalidSignature, "bad recid")
	}
	V := byte(Vb.Uint64())
	// s must be in the lower half of the curve order.
	if !crypto.ValidateSignatureValues(V, R, S, true) {
		return common.Address{}, errors.Wrap(ErrInvalidSignature, "r or s out of range")
	}
	// encode the signature in uncompressed format
	r, s := R.Bytes(), S.Bytes()
	sig := make([]byte, crypto.SignatureLength)
	copy(sig[32-len(r):32], r)
	copy(sig[64-len(s):64], s)
	sig[64] = V
	// recover the public key from the signature
	pub, err := crypto.Ecrecover(sighash[:], sig)
	if err != nil {
		return common.Address{}, errors.Wrap(ErrInvalidSignature, err.Error())
	}
	if len(pub) == 0 || pub[0] != 4 {
		return common.Address{}, errors.Wrap(ErrInvalidSignature, "invalid public key")
	}
	var addr common.Address
	copy(addr[:], crypto.Keccak256(pub[1:])[12:])
	return addr, nil
}
