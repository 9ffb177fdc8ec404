package ethapi

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"math/big"
	"testing"

	"github.com/AcalaNetwork/bodhi.js-sub002/core"
	"github.com/AcalaNetwork/bodhi.js-sub002/core/fees"
	"github.com/AcalaNetwork/bodhi.js-sub002/core/types"
	"github.com/AcalaNetwork/bodhi.js-sub002/eth/filters"
	"github.com/AcalaNetwork/bodhi.js-sub002/internal/ethapi/mocks"
	"github.com/AcalaNetwork/bodhi.js-sub002/log"
	"github.com/AcalaNetwork/bodhi.js-sub002/params"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	recipient = common.HexToAddress("0x1111111111111111111111111111111111111111")
	contract  = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

func newBackend(t *testing.T) *mocks.MockBackend {
	ctrl := gomock.NewController(t)
	b := mocks.NewMockBackend(ctrl)
	b.EXPECT().ChainConfig().Return(params.LocalChainConfig).AnyTimes()
	return b
}

func nativeTx(chainID *big.Int, validUntil int64) *types.NativeTx {
	return &types.NativeTx{
		ChainID:      chainID,
		Nonce:        big.NewInt(1),
		GasLimit:     big.NewInt(2100001),
		StorageLimit: big.NewInt(64001),
		To:           &recipient,
		Value:        big.NewInt(1),
		ValidUntil:   big.NewInt(validUntil),
		Tip:          new(big.Int),
	}
}

func signedRaw(t *testing.T, key *ecdsa.PrivateKey, inner *types.NativeTx) (hexutil.Bytes, *types.Transaction) {
	t.Helper()
	tx, err := types.SignNewTx(key, types.NewEIP712Signer(inner.ChainID), inner)
	require.NoError(t, err)
	raw, err := tx.MarshalBinary()
	require.NoError(t, err)
	return raw, tx
}

func TestSendRawTransaction(t *testing.T) {
	b := newBackend(t)
	key, _ := crypto.GenerateKey()
	raw, tx := signedRaw(t, key, nativeTx(params.LocalChainConfig.ChainID, 3601))

	b.EXPECT().CurrentBlockNumber(gomock.Any()).Return(uint64(100), nil)
	b.EXPECT().SendTransaction(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, sent *types.Transaction) error {
		assert.Equal(t, tx.Hash(), sent.Hash())
		return nil
	})

	api := NewTransactionAPI(b, log.New(log.WithNullLogger()))
	hash, err := api.SendRawTransaction(context.Background(), raw)
	require.NoError(t, err)
	require.Equal(t, tx.Hash(), hash)

	from, ok := api.Sender(hash)
	require.True(t, ok)
	require.Equal(t, crypto.PubkeyToAddress(key.PublicKey), from)
}

func TestSendRawTransactionRejects(t *testing.T) {
	key, _ := crypto.GenerateKey()
	local := params.LocalChainConfig.ChainID

	expired, _ := signedRaw(t, key, nativeTx(local, 3601))
	foreign, _ := signedRaw(t, key, nativeTx(big.NewInt(787), 3601))
	unbound, _ := signedRaw(t, key, nativeTx(new(big.Int), 3601))
	unsigned, err := types.NewTx(nativeTx(local, 3601)).MarshalBinary()
	require.NoError(t, err)

	tests := []struct {
		name string
		raw  hexutil.Bytes
		head uint64
		want error
	}{
		{"expired", expired, 3601, core.ErrTxExpired},
		{"foreign chain", foreign, 100, core.ErrInvalidChainId},
		{"zero chain id", unbound, 100, core.ErrInvalidChainId},
		{"unsigned", unsigned, 100, core.ErrUnsigned},
		{"unsupported type", hexutil.Bytes{0x05, 0xc0}, 100, core.ErrTxTypeNotSupported},
		{"empty", hexutil.Bytes{}, 100, types.ErrInvalidEnvelope},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBackend(t)
			b.EXPECT().CurrentBlockNumber(gomock.Any()).Return(tt.head, nil).AnyTimes()

			_, err := NewTransactionAPI(b, nil).SendRawTransaction(context.Background(), tt.raw)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSendRawStandardTransaction(t *testing.T) {
	b := newBackend(t)
	key, _ := crypto.GenerateKey()
	std, err := ethtypes.SignNewTx(key, ethtypes.NewLondonSigner(params.LocalChainConfig.ChainID), &ethtypes.DynamicFeeTx{
		ChainID:   params.LocalChainConfig.ChainID,
		Nonce:     3,
		GasTipCap: big.NewInt(1),
		GasFeeCap: big.NewInt(10),
		Gas:       21000,
		To:        &recipient,
		Value:     big.NewInt(5),
	})
	require.NoError(t, err)
	raw, err := std.MarshalBinary()
	require.NoError(t, err)

	// Standard transactions carry no validity window, so the head is never read.
	b.EXPECT().SendTransaction(gomock.Any(), gomock.Any()).Return(nil)

	api := NewTransactionAPI(b, nil)
	hash, err := api.SendRawTransaction(context.Background(), raw)
	require.NoError(t, err)
	require.Equal(t, std.Hash(), hash)

	from, ok := api.Sender(hash)
	require.True(t, ok)
	require.Equal(t, crypto.PubkeyToAddress(key.PublicKey), from)
}

func TestSendRawUnprotectedLegacyTransaction(t *testing.T) {
	b := newBackend(t)
	key, _ := crypto.GenerateKey()
	std, err := ethtypes.SignNewTx(key, ethtypes.HomesteadSigner{}, &ethtypes.LegacyTx{
		Nonce:    1,
		GasPrice: big.NewInt(10),
		Gas:      21000,
		To:       &recipient,
		Value:    big.NewInt(5),
	})
	require.NoError(t, err)
	raw, err := std.MarshalBinary()
	require.NoError(t, err)

	b.EXPECT().SendTransaction(gomock.Any(), gomock.Any()).Return(nil)

	api := NewTransactionAPI(b, nil)
	hash, err := api.SendRawTransaction(context.Background(), raw)
	require.NoError(t, err)

	from, ok := api.Sender(hash)
	require.True(t, ok)
	require.Equal(t, crypto.PubkeyToAddress(key.PublicKey), from)
}

func TestSendRawTransactionBackendError(t *testing.T) {
	b := newBackend(t)
	key, _ := crypto.GenerateKey()
	raw, tx := signedRaw(t, key, nativeTx(params.LocalChainConfig.ChainID, 3601))

	failure := errors.New("pool full")
	b.EXPECT().CurrentBlockNumber(gomock.Any()).Return(uint64(1), nil)
	b.EXPECT().SendTransaction(gomock.Any(), gomock.Any()).Return(failure)

	api := NewTransactionAPI(b, nil)
	_, err := api.SendRawTransaction(context.Background(), raw)
	require.ErrorIs(t, err, failure)

	_, ok := api.Sender(tx.Hash())
	require.False(t, ok)
}

func TestEstimateResources(t *testing.T) {
	b := newBackend(t)
	b.EXPECT().CurrentBlockNumber(gomock.Any()).Return(uint64(3501), nil)
	b.EXPECT().FeeRates(gomock.Any()).Return(fees.DefaultRates(), nil)

	est, err := NewResourceAPI(b).EstimateResources(context.Background(), 2100001, 64001)
	require.NoError(t, err)
	assert.Equal(t, "200007877609", est.GasPrice.ToInt().String())
	assert.Equal(t, "34132001", est.GasLimit.ToInt().String())
	assert.Equal(t, int64(3601), est.ValidUntil.ToInt().Int64())
}

func TestDecodeFeeFields(t *testing.T) {
	b := newBackend(t)
	b.EXPECT().FeeRates(gomock.Any()).Return(fees.DefaultRates(), nil).Times(2)

	api := NewResourceAPI(b)
	native, err := api.DecodeFeeFields(context.Background(), TransactionArgs{
		GasPrice: (*hexutil.Big)(big.NewInt(200007877609)),
		Gas:      (*hexutil.Big)(big.NewInt(34132001)),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2100001), native.GasLimit.Int64())
	assert.Equal(t, int64(64064), native.StorageLimit.Int64())
	assert.Equal(t, int64(3630), native.ValidUntil.Int64())

	_, err = api.DecodeFeeFields(context.Background(), TransactionArgs{
		GasPrice: (*hexutil.Big)(big.NewInt(1)),
		Gas:      (*hexutil.Big)(big.NewInt(21000)),
	})
	require.ErrorIs(t, err, fees.ErrInvalidFeeParameters)
}

func TestArgsToTransaction(t *testing.T) {
	b := newBackend(t)
	b.EXPECT().FeeRates(gomock.Any()).Return(fees.DefaultRates(), nil)

	input := hexutil.Bytes{0xa9, 0x05, 0x9c, 0xbb}
	args := TransactionArgs{
		To:       &contract,
		GasPrice: (*hexutil.Big)(big.NewInt(200007877609)),
		Gas:      (*hexutil.Big)(big.NewInt(34132001)),
		Input:    &input,
	}
	tx, err := args.ToTransaction(context.Background(), b)
	require.NoError(t, err)
	require.True(t, tx.IsNative())
	require.False(t, tx.Signed())
	require.Equal(t, params.LocalChainConfig.ChainID, tx.ChainId())
	require.Equal(t, []byte(input), tx.Data())
	require.Equal(t, int64(3630), tx.ValidUntil().Int64())
	require.Zero(t, tx.Nonce().Sign())
}

func TestArgsRejectMismatchedInput(t *testing.T) {
	b := newBackend(t)
	data, input := hexutil.Bytes{0x01}, hexutil.Bytes{0x02}
	args := TransactionArgs{
		To:       &contract,
		GasPrice: (*hexutil.Big)(big.NewInt(200007877609)),
		Gas:      (*hexutil.Big)(big.NewInt(34132001)),
		Data:     &data,
		Input:    &input,
	}
	_, err := args.ToTransaction(context.Background(), b)
	require.Error(t, err)

	_, err = (&TransactionArgs{}).ToTransaction(context.Background(), b)
	require.Error(t, err)
}

func newFilterAPI(t *testing.T, b *mocks.MockBackend) (*FilterAPI, *event.Feed) {
	t.Helper()
	var logsFeed, rmLogsFeed event.Feed
	b.EXPECT().SubscribeLogsEvent(gomock.Any()).DoAndReturn(func(ch chan<- []*types.Log) event.Subscription {
		return logsFeed.Subscribe(ch)
	})
	b.EXPECT().SubscribeRemovedLogsEvent(gomock.Any()).DoAndReturn(func(ch chan<- core.RemovedLogsEvent) event.Subscription {
		return rmLogsFeed.Subscribe(ch)
	})
	api, err := NewFilterAPI(b)
	require.NoError(t, err)
	t.Cleanup(api.Close)
	return api, &logsFeed
}

func TestGetLogs(t *testing.T) {
	b := newBackend(t)
	api, _ := newFilterAPI(t, b)

	transfer := common.HexToHash("0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef")
	records := []*types.Log{
		{Address: contract, Topics: []common.Hash{transfer}, BlockNumber: 7},
		{Address: recipient, Topics: []common.Hash{transfer}, BlockNumber: 8},
		{Address: contract, BlockNumber: 9},
	}
	b.EXPECT().CurrentBlockNumber(gomock.Any()).Return(uint64(9), nil)
	b.EXPECT().Logs(gomock.Any(), uint64(7), uint64(9)).Return(records, nil)

	logs, err := api.GetLogs(context.Background(), filters.FilterCriteria{
		FromBlock: big.NewInt(7),
		Addresses: []common.Address{contract},
		Topics:    [][]common.Hash{{transfer}},
	})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Equal(t, uint64(7), logs[0].BlockNumber)
}

func TestGetLogsByHash(t *testing.T) {
	b := newBackend(t)
	api, _ := newFilterAPI(t, b)

	hash := common.HexToHash("0x01")
	b.EXPECT().LogsByHash(gomock.Any(), hash).Return(nil, nil)

	logs, err := api.GetLogs(context.Background(), filters.FilterCriteria{BlockHash: &hash})
	require.NoError(t, err)
	require.NotNil(t, logs)
	require.Empty(t, logs)
}

func TestGetLogsInvalidRange(t *testing.T) {
	b := newBackend(t)
	api, _ := newFilterAPI(t, b)

	// fromBlock 20 is past the head, so latest resolves below it.
	b.EXPECT().CurrentBlockNumber(gomock.Any()).Return(uint64(10), nil)
	_, err := api.GetLogs(context.Background(), filters.FilterCriteria{FromBlock: big.NewInt(20)})
	require.Error(t, err)
}

func TestSubscribeLogs(t *testing.T) {
	b := newBackend(t)
	api, feed := newFilterAPI(t, b)

	ch := make(chan []*types.Log, 1)
	sub, err := api.SubscribeLogs(filters.FilterCriteria{Addresses: []common.Address{contract}}, ch)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	feed.Send([]*types.Log{{Address: recipient}, {Address: contract}})
	logs := <-ch
	require.Len(t, logs, 1)
	require.Equal(t, contract, logs[0].Address)
}
