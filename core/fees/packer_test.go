package fees

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRates() Rates {
	return Rates{
		TxFeePerGas:        big.NewInt(199999946752),
		StorageByteDeposit: big.NewInt(100000000000000),
	}
}

func native(gasLimit, storageLimit, validUntil int64) NativeParams {
	return NativeParams{
		GasLimit:     big.NewInt(gasLimit),
		StorageLimit: big.NewInt(storageLimit),
		ValidUntil:   big.NewInt(validUntil),
	}
}

func TestEncodeKnownVector(t *testing.T) {
	eth, err := Encode(native(2100001, 64001, 3601), testRates())
	require.NoError(t, err)

	// 199999946752 + 121<<16 + 1001
	assert.Equal(t, "200007877609", eth.GasPrice.String())
	// 32000 * 1001 + 2100001
	assert.Equal(t, "34132001", eth.GasLimit.String())
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name                     string
		in                       NativeParams
		storageLimit, validUntil int64
	}{
		{"small deadline", native(2100001, 64001, 3601), 64064, 3630},
		{"large deadline", native(2100001, 64001, 360001), 64064, 360030},
		{"exact multiples", native(21000, 640, 300), 640, 300},
		{"zero storage", native(21000, 0, 1), 0, 30},
		{"all zero", native(0, 0, 0), 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eth, err := Encode(tt.in, testRates())
			require.NoError(t, err)
			out, err := Decode(eth, testRates())
			require.NoError(t, err)

			assert.Zero(t, tt.in.GasLimit.Cmp(out.GasLimit), "gasLimit %v != %v", tt.in.GasLimit, out.GasLimit)
			assert.Equal(t, tt.storageLimit, out.StorageLimit.Int64())
			assert.Equal(t, tt.validUntil, out.ValidUntil.Int64())
			assert.True(t, out.StorageLimit.Cmp(tt.in.StorageLimit) >= 0)
			assert.True(t, out.ValidUntil.Cmp(tt.in.ValidUntil) >= 0)
		})
	}
}

func TestBlockPeriodBeyond64Bits(t *testing.T) {
	validUntil := new(big.Int).Lsh(big.NewInt(1), 80)
	in := NativeParams{GasLimit: big.NewInt(1), StorageLimit: big.NewInt(64), ValidUntil: validUntil}

	eth, err := Encode(in, testRates())
	require.NoError(t, err)
	require.Greater(t, eth.GasPrice.BitLen(), 64)

	out, err := Decode(eth, testRates())
	require.NoError(t, err)
	// 2^80 is not a multiple of 30, so it rounds up to the next period.
	want := ceilDiv(validUntil, big.NewInt(30))
	want.Mul(want, big.NewInt(30))
	assert.Zero(t, want.Cmp(out.ValidUntil))
	assert.Equal(t, int64(64), out.StorageLimit.Int64())
}

func TestFeeCoversStorageDeposit(t *testing.T) {
	rates := testRates()
	in := native(2100001, 64001, 3601)
	eth, err := Encode(in, rates)
	require.NoError(t, err)

	deposit := new(big.Int).Mul(big.NewInt(64064), rates.StorageByteDeposit)
	execution := new(big.Int).Mul(in.GasLimit, rates.TxFeePerGas)
	total := new(big.Int).Add(deposit, execution)
	// The wallet reservation is within one gas unit per storage entry of
	// the real charge, and never far below it.
	slack := new(big.Int).Mul(rates.TxFeePerGas, big.NewInt(1001))
	assert.True(t, new(big.Int).Add(eth.Fee(), slack).Cmp(total) >= 0)
}

func TestDecodeRejectsUnderflow(t *testing.T) {
	rates := testRates()

	_, err := Decode(EthParams{GasPrice: big.NewInt(1000), GasLimit: big.NewInt(21000)}, rates)
	require.ErrorIs(t, err, ErrInvalidFeeParameters)

	// A user-edited gas limit below the storage allowance.
	eth, err := Encode(native(21000, 64001, 3601), rates)
	require.NoError(t, err)
	eth.GasLimit = big.NewInt(21000)
	_, err = Decode(eth, rates)
	require.ErrorIs(t, err, ErrInvalidFeeParameters)
}

func TestInvalidRates(t *testing.T) {
	tests := []struct {
		name  string
		rates Rates
	}{
		{"nil fee", Rates{StorageByteDeposit: big.NewInt(1)}},
		{"zero fee", Rates{TxFeePerGas: big.NewInt(0), StorageByteDeposit: big.NewInt(1)}},
		{"nil deposit", Rates{TxFeePerGas: big.NewInt(1 << 16)}},
		{"negative deposit", Rates{TxFeePerGas: big.NewInt(1 << 16), StorageByteDeposit: big.NewInt(-1)}},
		{"low bits set", Rates{TxFeePerGas: big.NewInt(199999946753), StorageByteDeposit: big.NewInt(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.rates.Validate(), ErrInvalidFeeParameters)
			_, err := Encode(native(1, 1, 1), tt.rates)
			require.ErrorIs(t, err, ErrInvalidFeeParameters)
		})
	}
	require.NoError(t, DefaultRates().Validate())
}

func TestEncodeRejectsUnpackableStorage(t *testing.T) {
	_, err := Encode(native(1, 65535*64, 1), testRates())
	require.NoError(t, err)

	_, err = Encode(native(1, 65535*64+1, 1), testRates())
	require.ErrorIs(t, err, ErrInvalidFeeParameters)

	_, err = Encode(NativeParams{GasLimit: big.NewInt(1)}, testRates())
	require.ErrorIs(t, err, ErrInvalidFeeParameters)
}
