package types

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/stretchr/testify/require"
)

func TestNativeSigningSecp256k1(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	addr := crypto.PubkeyToAddress(key.PublicKey)

	signer := NewEIP712Signer(testChain)
	tx, err := SignNewTx(key, signer, testNativeTx())
	require.NoError(t, err)

	from, err := Sender(signer, tx)
	require.NoError(t, err)
	require.Equal(t, addr, from)

	enc, err := tx.MarshalBinary()
	require.NoError(t, err)
	var fields []rlp.RawValue
	require.NoError(t, rlp.DecodeBytes(enc[1:], &fields))
	require.Len(t, fields, nativeSignedFields)

	parsed, err := ParseTransaction(enc)
	require.NoError(t, err)
	require.True(t, parsed.Signed())
	require.NotNil(t, parsed.From())
	require.Equal(t, addr, *parsed.From())
	require.Equal(t, signer.Hash(tx), parsed.Hash())
	requireSameNative(t, testNativeTx(), parsed.Native())
}

func TestSignFillsChainID(t *testing.T) {
	key, _ := crypto.GenerateKey()
	signer := NewEIP712Signer(testChain)

	unsigned := testNativeTx()
	unsigned.ChainID = new(big.Int)
	tx := MustSignNewTx(key, signer, unsigned)
	require.Zero(t, testChain.Cmp(tx.ChainId()))

	parsed := roundTrip(t, tx)
	require.Equal(t, crypto.PubkeyToAddress(key.PublicKey), *parsed.From())
}

func TestExternalWalletSignature(t *testing.T) {
	key, _ := crypto.GenerateKey()
	inner := testNativeTx()

	// A wallet only sees the typed data.
	digest, _, err := apitypes.TypedDataAndHash(TypedDataFor(inner))
	require.NoError(t, err)
	sig, err := crypto.Sign(digest, key)
	require.NoError(t, err)

	tx, err := NewTx(inner).WithSignature(NewEIP712Signer(testChain), sig)
	require.NoError(t, err)
	parsed := roundTrip(t, tx)
	require.Equal(t, crypto.PubkeyToAddress(key.PublicKey), *parsed.From())
	require.Equal(t, common.BytesToHash(digest), parsed.Hash())
}

func TestTypedDataShape(t *testing.T) {
	inner := testNativeTx()
	td := TypedDataFor(inner)
	require.Equal(t, "Transaction", td.PrimaryType)
	require.Equal(t, "Acala EVM", td.Domain.Name)
	require.Equal(t, "1", td.Domain.Version)
	require.Equal(t, testSalt.Hex(), td.Domain.Salt)
	require.Equal(t, "Call", td.Message["action"])
	require.Equal(t, "7", td.Message["nonce"])
	require.Equal(t, "0xa9059cbb", td.Message["data"])

	inner.To = nil
	td = TypedDataFor(inner)
	require.Equal(t, "Create", td.Message["action"])
	require.Equal(t, common.Address{}.Hex(), td.Message["to"])

	// Domain and message are bound together through the salt.
	h1, err := TypedDataHash(testNativeTx())
	require.NoError(t, err)
	salted := testNativeTx()
	salted.Salt = common.HexToHash("0x02")
	h2, err := TypedDataHash(salted)
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
}

func TestBadRecoveryID(t *testing.T) {
	key, _ := crypto.GenerateKey()
	tx := MustSignNewTx(key, NewEIP712Signer(testChain), testNativeTx())

	for _, recid := range []int64{2, 27, 28} {
		enc := tx.Native().toRLP(true)
		enc.V = big.NewInt(recid)
		payload, err := rlp.EncodeToBytes(enc)
		require.NoError(t, err)

		_, err = ParseTransaction(append([]byte{NativeTxType}, payload...))
		require.ErrorIs(t, err, ErrInvalidSignature)
		require.Contains(t, err.Error(), "bad recid")
	}
}

func TestHighSRejected(t *testing.T) {
	key, _ := crypto.GenerateKey()
	tx := MustSignNewTx(key, NewEIP712Signer(testChain), testNativeTx())

	// (r, N-s, 1-v) recovers the same key but is the malleable twin.
	enc := tx.Native().toRLP(true)
	enc.S = new(big.Int).Sub(crypto.S256().Params().N, enc.S)
	enc.V = new(big.Int).Xor(enc.V, big.NewInt(1))
	payload, err := rlp.EncodeToBytes(enc)
	require.NoError(t, err)

	_, err = ParseTransaction(append([]byte{NativeTxType}, payload...))
	require.ErrorIs(t, err, ErrInvalidSignature)
	require.Contains(t, err.Error(), "r or s out of range")
}

func TestTamperedPayloadChangesSender(t *testing.T) {
	key, _ := crypto.GenerateKey()
	addr := crypto.PubkeyToAddress(key.PublicKey)
	tx := MustSignNewTx(key, NewEIP712Signer(testChain), testNativeTx())

	enc := tx.Native().toRLP(true)
	enc.Nonce = big.NewInt(8)
	payload, err := rlp.EncodeToBytes(enc)
	require.NoError(t, err)

	parsed, err := ParseTransaction(append([]byte{NativeTxType}, payload...))
	if err == nil {
		require.NotEqual(t, addr, *parsed.From())
	} else {
		require.ErrorIs(t, err, ErrInvalidSignature)
	}
}

func TestSenderChainIDMismatch(t *testing.T) {
	key, _ := crypto.GenerateKey()
	tx := MustSignNewTx(key, NewEIP712Signer(testChain), testNativeTx())

	_, err := Sender(NewEIP712Signer(big.NewInt(787)), tx)
	require.ErrorIs(t, err, ErrInvalidChainId)

	_, err = SignTx(tx, NewEIP712Signer(big.NewInt(787)), key)
	require.ErrorIs(t, err, ErrInvalidChainId)
}

func TestUnsignedSender(t *testing.T) {
	_, err := Sender(NewEIP712Signer(testChain), NewTx(testNativeTx()))
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestSignerEqual(t *testing.T) {
	require.True(t, NewEIP712Signer(big.NewInt(595)).Equal(NewEIP712Signer(big.NewInt(595))))
	require.False(t, NewEIP712Signer(big.NewInt(595)).Equal(NewEIP712Signer(big.NewInt(787))))
}

func TestTransactionJSON(t *testing.T) {
	key, _ := crypto.GenerateKey()
	addr := crypto.PubkeyToAddress(key.PublicKey)
	tx := MustSignNewTx(key, NewEIP712Signer(testChain), testNativeTx())
	_, err := Sender(NewEIP712Signer(testChain), tx)
	require.NoError(t, err)

	data, err := json.Marshal(tx)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))
	require.Equal(t, "0x60", fields["type"])
	require.Equal(t, "0xfa01", fields["storageLimit"])
	require.Equal(t, "0xe11", fields["validUntil"])
	require.Equal(t, "0x2", fields["tip"])
	require.Equal(t, tx.Hash().Hex(), fields["hash"])

	var decoded Transaction
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, addr, *decoded.From())
	require.Equal(t, tx.Hash(), decoded.Hash())

	fields["from"] = testAddr.Hex()
	forged, err := json.Marshal(fields)
	require.NoError(t, err)
	require.ErrorIs(t, json.Unmarshal(forged, new(Transaction)), ErrInvalidSignature)
}

func TestTransactionJSONRejectsUnknownType(t *testing.T) {
	err := json.Unmarshal([]byte(`{"type": "0x3", "chainId": "0x253"}`), new(Transaction))
	require.ErrorIs(t, err, ErrUnsupportedTxType)
}

func roundTrip(t *testing.T, tx *Transaction) *Transaction {
	t.Helper()
	enc, err := tx.MarshalBinary()
	require.NoError(t, err)
	parsed, err := ParseTransaction(enc)
	require.NoError(t, err)
	return parsed
}
