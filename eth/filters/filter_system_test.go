package filters

import (
	"math/big"
	"testing"
	"time"

	"github.com/AcalaNetwork/bodhi.js-sub002/core"
	"github.com/AcalaNetwork/bodhi.js-sub002/core/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"github.com/stretchr/testify/require"
)

type testBackend struct {
	logsFeed   event.Feed
	rmLogsFeed event.Feed
}

func (b *testBackend) SubscribeLogsEvent(ch chan<- []*types.Log) event.Subscription {
	return b.logsFeed.Subscribe(ch)
}

func (b *testBackend) SubscribeRemovedLogsEvent(ch chan<- core.RemovedLogsEvent) event.Subscription {
	return b.rmLogsFeed.Subscribe(ch)
}

func receiveLogs(t *testing.T, ch chan []*types.Log) []*types.Log {
	t.Helper()
	select {
	case logs := <-ch:
		return logs
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for logs")
		return nil
	}
}

func TestLogSubscription(t *testing.T) {
	backend := new(testBackend)
	es, err := NewEventSystem(backend)
	require.NoError(t, err)
	defer es.Close()

	a1, a2 := common.HexToAddress(addr1), common.HexToAddress(addr2)
	t1 := common.HexToHash(topic1)

	ch := make(chan []*types.Log, 4)
	sub, err := es.SubscribeLogs(FilterCriteria{
		Addresses: []common.Address{a1},
		Topics:    [][]common.Hash{{t1}},
	}, ch)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	backend.logsFeed.Send([]*types.Log{
		{Address: a1, Topics: []common.Hash{t1}, BlockNumber: 1},
		{Address: a2, Topics: []common.Hash{t1}, BlockNumber: 1},
		{Address: a1, BlockNumber: 1},
	})
	logs := receiveLogs(t, ch)
	require.Len(t, logs, 1)
	require.Equal(t, a1, logs[0].Address)
	require.False(t, logs[0].Removed)

	backend.rmLogsFeed.Send(core.RemovedLogsEvent{Logs: []*types.Log{
		{Address: a1, Topics: []common.Hash{t1}, BlockNumber: 1},
	}})
	logs = receiveLogs(t, ch)
	require.Len(t, logs, 1)
	require.True(t, logs[0].Removed)
}

func TestSubscribeLogsRejectsInvertedRange(t *testing.T) {
	es, err := NewEventSystem(new(testBackend))
	require.NoError(t, err)

	_, err = es.SubscribeLogs(FilterCriteria{FromBlock: big.NewInt(5), ToBlock: big.NewInt(1)}, make(chan []*types.Log))
	require.ErrorIs(t, err, errInvalidBlockRange)
}

func TestUnsubscribeClosesErr(t *testing.T) {
	es, err := NewEventSystem(new(testBackend))
	require.NoError(t, err)

	sub, err := es.SubscribeLogs(FilterCriteria{}, make(chan []*types.Log))
	require.NoError(t, err)
	require.NotEmpty(t, sub.ID)

	sub.Unsubscribe()
	select {
	case <-sub.Err():
	case <-time.After(time.Second):
		t.Fatal("subscription not uninstalled")
	}
	// A second call must not block.
	sub.Unsubscribe()
}

func TestCloseStopsEventLoop(t *testing.T) {
	es, err := NewEventSystem(new(testBackend))
	require.NoError(t, err)

	sub, err := es.SubscribeLogs(FilterCriteria{}, make(chan []*types.Log))
	require.NoError(t, err)

	var subErr error
	done := make(chan struct{})
	go func() {
		es.Close()
		// Calls after the loop has exited must return instead of blocking.
		sub.Unsubscribe()
		_, subErr = es.SubscribeLogs(FilterCriteria{}, make(chan []*types.Log))
		es.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("event system did not shut down")
	}
	require.ErrorIs(t, subErr, errEventSystemClosed)
}
