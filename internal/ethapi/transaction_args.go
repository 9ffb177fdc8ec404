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

package ethapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/AcalaNetwork/bodhi.js-sub002/core/fees"
	"github.com/AcalaNetwork/bodhi.js-sub002/core/types"
	"github.com/AcalaNetwork/bodhi.js-sub002/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// TransactionArgs represents the arguments a wallet sends to construct a new
// transaction. Gas and GasPrice are the packed fee fields produced by
// fees.Encode.
type TransactionArgs struct {
	From     *common.Address `json:"from"`
	To       *common.Address `json:"to"`
	Gas      *hexutil.Big    `json:"gas"`
	GasPrice *hexutil.Big    `json:"gasPrice"`
	Tip      *hexutil.Big    `json:"tip"`
	Value    *hexutil.Big    `json:"value"`
	Nonce    *hexutil.Big    `json:"nonce"`

	// We accept "data" and "input" for backwards-compatibility reasons.
	// "input" is the newer name and should be preferred by clients.
	Data  *hexutil.Bytes `json:"data"`
	Input *hexutil.Bytes `json:"input"`

	AccessList *types.AccessList `json:"accessList,omitempty"`
	ChainID    *hexutil.Big      `json:"chainId,omitempty"`
	Salt       *common.Hash      `json:"salt,omitempty"`
}

// data retrieves the transaction calldata. Input field is preferred.
func (args *TransactionArgs) data() []byte {
	if args.Input != nil {
		return *args.Input
	}
	if args.Data != nil {
		return *args.Data
	}
	return nil
}

// setDefaults fills in default values for unspecified tx fields.
func (args *TransactionArgs) setDefaults(ctx context.Context, b Backend) error {
	if args.Tip == nil {
		args.Tip = new(hexutil.Big)
	}
	if args.Value == nil {
		args.Value = new(hexutil.Big)
	}
	if args.Nonce == nil {
		args.Nonce = new(hexutil.Big)
	}
	if args.Data != nil && args.Input != nil && !bytes.Equal(*args.Data, *args.Input) {
		return errors.New(`both "data" and "input" are set and not equal. Please use "input" to pass transaction call data`)
	}
	if args.To == nil && len(args.data()) == 0 {
		return errors.New(`contract creation without any data provided`)
	}
	if args.Gas == nil || args.GasPrice == nil {
		return errors.New(`both "gas" and "gasPrice" are required`)
	}
	if args.ChainID == nil {
		args.ChainID = (*hexutil.Big)(b.ChainConfig().ChainID)
	}
	return nil
}

// ToNativeParams unpacks the wallet's gas and gasPrice into native resource
// limits.
func (args *TransactionArgs) ToNativeParams(rates fees.Rates) (fees.NativeParams, error) {
	if args.Gas == nil || args.GasPrice == nil {
		return fees.NativeParams{}, errors.New(`both "gas" and "gasPrice" are required`)
	}
	native, err := fees.Decode(fees.EthParams{
		GasPrice: args.GasPrice.ToInt(),
		GasLimit: args.Gas.ToInt(),
	}, rates)
	if err != nil {
		return fees.NativeParams{}, err
	}
	log.Global.WithFields(log.Fields{
		"gasLimit":     native.GasLimit,
		"storageLimit": native.StorageLimit,
		"validUntil":   native.ValidUntil,
	}).Debug("Unpacked wallet fee fields")
	return native, nil
}

// ToTransaction builds the unsigned native transaction the wallet asked for.
func (args *TransactionArgs) ToTransaction(ctx context.Context, b Backend) (*types.Transaction, error) {
	if err := args.setDefaults(ctx, b); err != nil {
		return nil, err
	}
	rates, err := b.FeeRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("fee rates: %w", err)
	}
	native, err := args.ToNativeParams(rates)
	if err != nil {
		return nil, err
	}
	inner := &types.NativeTx{
		ChainID:      args.ChainID.ToInt(),
		Nonce:        args.Nonce.ToInt(),
		GasLimit:     native.GasLimit,
		StorageLimit: native.StorageLimit,
		To:           args.To,
		Value:        args.Value.ToInt(),
		Data:         args.data(),
		ValidUntil:   native.ValidUntil,
		Tip:          args.Tip.ToInt(),
	}
	if args.Salt != nil {
		inner.Salt = *args.Salt
	}
	if args.AccessList != nil {
		inner.AccessList = *args.AccessList
	}
	return types.NewTx(inner), nil
}
