// Copyright 2015 The go-ethereum Authors
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

// Package filters implements ethereum log filtering for events emitted by the
// chain: the eth_getLogs criteria, the matcher, and a subscription loop.
package filters

import (
	"sync"
	"time"

	"github.com/AcalaNetwork/bodhi.js-sub002/core"
	"github.com/AcalaNetwork/bodhi.js-sub002/core/types"
	"github.com/AcalaNetwork/bodhi.js-sub002/log"
	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
)

// Type determines the kind of filter and is used to put the filter in to
// the correct bucket when added.
type Type byte

const (
	// UnknownSubscription indicates an unknown subscription type
	UnknownSubscription Type = iota
	// LogsSubscription queries for new or removed (chain reorg) logs
	LogsSubscription
	// LastIndexSubscription keeps track of the last index
	LastIndexSubscription
)

const (
	// rmLogsChanSize is the size of channel listening to RemovedLogsEvent.
	rmLogsChanSize = 10
	// logsChanSize is the size of channel listening to LogsEvent.
	logsChanSize = 10
)

// Backend feeds chain events into the event system.
type Backend interface {
	SubscribeLogsEvent(ch chan<- []*types.Log) event.Subscription
	SubscribeRemovedLogsEvent(ch chan<- core.RemovedLogsEvent) event.Subscription
}

type subscription struct {
	id        rpc.ID
	typ       Type
	created   time.Time
	logsCrit  FilterCriteria
	logs      chan []*types.Log
	installed chan struct{} // closed when the filter is installed
	err       chan error    // closed when the filter is uninstalled
}

// EventSystem creates subscriptions, processes events and broadcasts them to the
// subscription which match the subscription criteria.
type EventSystem struct {
	backend Backend

	// Subscriptions
	logsSub   event.Subscription // Subscription for new log event
	rmLogsSub event.Subscription // Subscription for removed log event

	// Channels
	install   chan *subscription         // install filter for event notification
	uninstall chan *subscription         // remove filter for event notification
	logsCh    chan []*types.Log          // Channel to receive new log event
	rmLogsCh  chan core.RemovedLogsEvent // Channel to receive removed log event

	quit      chan struct{} // closed by Close
	done      chan struct{} // closed when the event loop has returned
	closeOnce sync.Once
}

var errEventSystemClosed = errors.New("event system closed")

// NewEventSystem creates a new manager that listens for events from the
// backend, filters them and hands matches to subscribers.
//
// The returned manager has a loop that stops on Close or once either backend
// subscription is closed.
func NewEventSystem(backend Backend) (*EventSystem, error) {
	m := &EventSystem{
		backend:   backend,
		install:   make(chan *subscription),
		uninstall: make(chan *subscription),
		logsCh:    make(chan []*types.Log, logsChanSize),
		rmLogsCh:  make(chan core.RemovedLogsEvent, rmLogsChanSize),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
	}

	// Subscribe events
	m.logsSub = m.backend.SubscribeLogsEvent(m.logsCh)
	m.rmLogsSub = m.backend.SubscribeRemovedLogsEvent(m.rmLogsCh)

	// Make sure none of the subscriptions are empty
	if m.logsSub == nil || m.rmLogsSub == nil {
		log.Global.Error("Subscribe for event system failed")
		return nil, errors.New("subscribe for event system failed")
	}

	go m.eventLoop()
	return m, nil
}

// Subscription is created when the client registers itself for a particular event.
type Subscription struct {
	ID        rpc.ID
	f         *subscription
	es        *EventSystem
	unsubOnce sync.Once
}

// Err returns a channel that is closed when unsubscribed.
func (sub *Subscription) Err() <-chan error {
	return sub.f.err
}

// Unsubscribe uninstalls the subscription from the event broadcast loop.
func (sub *Subscription) Unsubscribe() {
	sub.unsubOnce.Do(func() {
	uninstallLoop:
		for {
			// write uninstall request and consume logs. This prevents
			// the eventLoop broadcast method to deadlock when writing to the
			// filter event channel while the subscription loop is waiting for
			// this method to return (and thus not reading these events).
			select {
			case sub.es.uninstall <- sub.f:
				break uninstallLoop
			case <-sub.f.logs:
			case <-sub.es.done:
				return
			}
		}

		// wait for filter to be uninstalled in work loop before returning
		// this ensures that the manager won't use the event channel which
		// will probably be closed by the client asap after this method returns.
		select {
		case <-sub.Err():
		case <-sub.es.done:
		}
	})
}

// Close stops the event loop and releases the backend subscriptions. It
// returns once the loop has exited and is safe to call more than once.
func (es *EventSystem) Close() {
	es.closeOnce.Do(func() { close(es.quit) })
	<-es.done
}

// subscribe installs the subscription in the event broadcast loop.
func (es *EventSystem) subscribe(sub *subscription) (*Subscription, error) {
	select {
	case es.install <- sub:
	case <-es.done:
		return nil, errEventSystemClosed
	}
	<-sub.installed
	return &Subscription{ID: sub.id, f: sub, es: es}, nil
}

// SubscribeLogs creates a subscription that will write all logs matching the
// given criteria to the given logs channel. Removed logs are delivered with
// their Removed flag set.
func (es *EventSystem) SubscribeLogs(crit FilterCriteria, logs chan []*types.Log) (*Subscription, error) {
	if crit.FromBlock != nil && crit.ToBlock != nil &&
		crit.FromBlock.Sign() >= 0 && crit.ToBlock.Sign() >= 0 &&
		crit.FromBlock.Cmp(crit.ToBlock) > 0 {
		return nil, errInvalidBlockRange
	}
	sub := &subscription{
		id:        rpc.NewID(),
		typ:       LogsSubscription,
		logsCrit:  crit,
		created:   time.Now(),
		logs:      logs,
		installed: make(chan struct{}),
		err:       make(chan error),
	}
	return es.subscribe(sub)
}

type filterIndex map[Type]map[rpc.ID]*subscription

func (es *EventSystem) handleLogs(filters filterIndex, ev []*types.Log) {
	if len(ev) == 0 {
		return
	}
	for _, f := range filters[LogsSubscription] {
		matchedLogs := f.logsCrit.Apply(ev)
		if len(matchedLogs) > 0 {
			f.logs <- matchedLogs
		}
	}
}

func (es *EventSystem) handleRemovedLogs(filters filterIndex, ev core.RemovedLogsEvent) {
	removed := make([]*types.Log, len(ev.Logs))
	for i, l := range ev.Logs {
		logcopy := *l
		logcopy.Removed = true
		removed[i] = &logcopy
	}
	es.handleLogs(filters, removed)
}

// eventLoop (un)installs filters and processes backend events.
func (es *EventSystem) eventLoop() {
	// Ensure all subscriptions get cleaned up
	defer func() {
		es.logsSub.Unsubscribe()
		es.rmLogsSub.Unsubscribe()
		close(es.done)
	}()

	index := make(filterIndex)
	for i := UnknownSubscription; i < LastIndexSubscription; i++ {
		index[i] = make(map[rpc.ID]*subscription)
	}

	for {
		select {
		case ev := <-es.logsCh:
			es.handleLogs(index, ev)
		case ev := <-es.rmLogsCh:
			es.handleRemovedLogs(index, ev)

		case f := <-es.install:
			index[f.typ][f.id] = f
			log.Global.WithFields(log.Fields{
				"id":      f.id,
				"filters": len(index[f.typ]),
			}).Debug("Installed log subscription")
			close(f.installed)

		case f := <-es.uninstall:
			delete(index[f.typ], f.id)
			log.Global.WithFields(log.Fields{
				"id":       f.id,
				"lifetime": time.Since(f.created),
			}).Debug("Removed log subscription")
			close(f.err)

		// System stopped
		case <-es.quit:
			return
		case <-es.logsSub.Err():
			return
		case <-es.rmLogsSub.Err():
			return
		}
	}
}
