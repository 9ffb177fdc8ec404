package types

import (
	"math/big"

	"github.com/AcalaNetwork/bodhi.js-sub002/params"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/pkg/errors"
)

const (
	actionCall   = "Call"
	actionCreate = "Create"
)

var typedDataTypes = apitypes.Types{
	"EIP712Domain": {
		{Name: "name", Type: "string"},
		{Name: "version", Type: "string"},
		{Name: "chainId", Type: "uint256"},
		{Name: "salt", Type: "bytes32"},
	},
	"AccessList": {
		{Name: "address", Type: "address"},
		{Name: "storageKeys", Type: "uint256[]"},
	},
	"Transaction": {
		{Name: "action", Type: "string"},
		{Name: "to", Type: "address"},
		{Name: "nonce", Type: "uint256"},
		{Name: "tip", Type: "uint256"},
		{Name: "data", Type: "bytes"},
		{Name: "value", Type: "uint256"},
		{Name: "gasLimit", Type: "uint256"},
		{Name: "storageLimit", Type: "uint256"},
		{Name: "accessList", Type: "AccessList[]"},
		{Name: "validUntil", Type: "uint256"},
	},
}

// TypedDataFor builds the structured payload a wallet signs for tx. Creation
// transactions carry action "Create" and the zero address as recipient.
func TypedDataFor(tx *NativeTx) apitypes.TypedData {
	action, to := actionCall, common.Address{}
	if tx.To == nil {
		action = actionCreate
	} else {
		to = *tx.To
	}

	accessList := make([]interface{}, 0, len(tx.AccessList))
	for _, tuple := range tx.AccessList {
		keys := make([]interface{}, len(tuple.StorageKeys))
		for i, key := range tuple.StorageKeys {
			keys[i] = key.Hex()
		}
		accessList = append(accessList, map[string]interface{}{
			"address":     tuple.Address.Hex(),
			"storageKeys": keys,
		})
	}

	return apitypes.TypedData{
		Types:       typedDataTypes,
		PrimaryType: "Transaction",
		Domain: apitypes.TypedDataDomain{
			Name:    params.DomainName,
			Version: params.DomainVersion,
			ChainId: (*math.HexOrDecimal256)(bigOrZero(tx.ChainID)),
			Salt:    tx.Salt.Hex(),
		},
		Message: apitypes.TypedDataMessage{
			"action":       action,
			"to":           to.Hex(),
			"nonce":        decimal(tx.Nonce),
			"tip":          decimal(tx.Tip),
			"data":         hexutil.Encode(tx.Data),
			"value":        decimal(tx.Value),
			"gasLimit":     decimal(tx.GasLimit),
			"storageLimit": decimal(tx.StorageLimit),
			"accessList":   accessList,
			"validUntil":   decimal(tx.ValidUntil),
		},
	}
}

// TypedDataHash returns keccak256(0x19 0x01 || domainSeparator || hashStruct(tx)).
func TypedDataHash(tx *NativeTx) (common.Hash, error) {
	if err := tx.validate(); err != nil {
		return common.Hash{}, err
	}
	digest, _, err := apitypes.TypedDataAndHash(TypedDataFor(tx))
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "typed data hash")
	}
	return common.BytesToHash(digest), nil
}

func decimal(v *big.Int) string {
	return bigOrZero(v).String()
}
