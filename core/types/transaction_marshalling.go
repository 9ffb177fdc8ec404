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
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
)

// txJSON is the JSON representation of native transactions.
type txJSON struct {
	Type hexutil.Uint64 `json:"type"`

	ChainID      *hexutil.Big    `json:"chainId"`
	Salt         *common.Hash    `json:"salt"`
	Nonce        *hexutil.Big    `json:"nonce"`
	Gas          *hexutil.Big    `json:"gas"`
	StorageLimit *hexutil.Big    `json:"storageLimit"`
	To           *common.Address `json:"to"`
	Value        *hexutil.Big    `json:"value"`
	Data         *hexutil.Bytes  `json:"input"`
	ValidUntil   *hexutil.Big    `json:"validUntil"`
	Tip          *hexutil.Big    `json:"tip"`
	AccessList   *AccessList     `json:"accessList"`

	V *hexutil.Big `json:"v,omitempty"`
	R *hexutil.Big `json:"r,omitempty"`
	S *hexutil.Big `json:"s,omitempty"`

	// Derived, only checked on decode:
	From *common.Address `json:"from,omitempty"`
	Hash *common.Hash    `json:"hash,omitempty"`
}

// MarshalJSON marshals as JSON with a hash. Standard transactions use
// go-ethereum's encoding unchanged.
func (t *Transaction) MarshalJSON() ([]byte, error) {
	tx, ok := t.inner.(*NativeTx)
	if !ok {
		return t.Standard().MarshalJSON()
	}
	hash := t.Hash()
	enc := txJSON{
		Type:         hexutil.Uint64(NativeTxType),
		ChainID:      (*hexutil.Big)(bigOrZero(tx.ChainID)),
		Salt:         &tx.Salt,
		Nonce:        (*hexutil.Big)(bigOrZero(tx.Nonce)),
		Gas:          (*hexutil.Big)(bigOrZero(tx.GasLimit)),
		StorageLimit: (*hexutil.Big)(bigOrZero(tx.StorageLimit)),
		To:           tx.To,
		Value:        (*hexutil.Big)(bigOrZero(tx.Value)),
		Data:         (*hexutil.Bytes)(&tx.Data),
		ValidUntil:   (*hexutil.Big)(bigOrZero(tx.ValidUntil)),
		Tip:          (*hexutil.Big)(bigOrZero(tx.Tip)),
		AccessList:   &tx.AccessList,
		From:         t.From(),
		Hash:         &hash,
	}
	if tx.signed() {
		enc.V = (*hexutil.Big)(tx.V)
		enc.R = (*hexutil.Big)(tx.R)
		enc.S = (*hexutil.Big)(tx.S)
	}
	return json.Marshal(&enc)
}

// UnmarshalJSON unmarshals from JSON. A signed native transaction is verified
// and any supplied from or hash must agree with the recovered values.
func (t *Transaction) UnmarshalJSON(input []byte) error {
	var head struct {
		Type hexutil.Uint64 `json:"type"`
	}
	if err := json.Unmarshal(input, &head); err != nil {
		return err
	}
	if head.Type != NativeTxType {
		if head.Type > 0xff || !IsStandardType(byte(head.Type)) {
			return errors.Wrapf(ErrUnsupportedTxType, "type 0x%x", uint64(head.Type))
		}
		std := new(ethtypes.Transaction)
		if err := std.UnmarshalJSON(input); err != nil {
			return err
		}
		t.setDecoded(&StandardTx{Tx: std}, 0)
		return nil
	}

	var dec txJSON
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	itx := &NativeTx{
		ChainID:      dec.ChainID.ToInt(),
		Nonce:        dec.Nonce.ToInt(),
		GasLimit:     dec.Gas.ToInt(),
		StorageLimit: dec.StorageLimit.ToInt(),
		To:           dec.To,
		Value:        dec.Value.ToInt(),
		ValidUntil:   dec.ValidUntil.ToInt(),
		Tip:          dec.Tip.ToInt(),
	}
	if dec.ChainID == nil {
		return errors.New("missing required field 'chainId' in transaction")
	}
	if dec.Salt != nil {
		itx.Salt = *dec.Salt
	}
	if dec.Data != nil {
		itx.Data = *dec.Data
	}
	if dec.AccessList != nil {
		itx.AccessList = *dec.AccessList
	}
	switch {
	case dec.V != nil && dec.R != nil && dec.S != nil:
		itx.V, itx.R, itx.S = dec.V.ToInt(), dec.R.ToInt(), dec.S.ToInt()
	case dec.V != nil || dec.R != nil || dec.S != nil:
		return errors.Wrap(ErrInvalidSignature, "incomplete signature values")
	}
	if err := itx.validate(); err != nil {
		return err
	}

	t.setDecoded(itx, 0)
	if !itx.signed() {
		return nil
	}
	from, err := Sender(NewEIP712Signer(itx.ChainID), t)
	if err != nil {
		return err
	}
	if dec.From != nil && *dec.From != from {
		return errors.Wrapf(ErrInvalidSignature, "from %s does not match signer %s", dec.From.Hex(), from.Hex())
	}
	if dec.Hash != nil && *dec.Hash != t.Hash() {
		return errors.Wrapf(ErrInvalidSignature, "hash %s does not match %s", dec.Hash.Hex(), t.Hash().Hex())
	}
	return nil
}
