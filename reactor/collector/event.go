// Package collector ships reference Collector implementations bound to the
// Neo N3 blockchain: block height polling, mempool subscription, and fixed
// interval ticking.
package collector

import (
	"fmt"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// EventKind discriminates the ChainEvent tagged union. Go has no sum types,
// so ChainEvent carries a Kind plus one populated payload field, mirroring
// the variant-enum pattern the rest of the module uses for E/A instances.
type EventKind int

const (
	EventKindNewBlock EventKind = iota
	EventKindMempoolTx
	EventKindTick
)

func (k EventKind) String() string {
	switch k {
	case EventKindNewBlock:
		return "NewBlock"
	case EventKindMempoolTx:
		return "MempoolTx"
	case EventKindTick:
		return "Tick"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// NewBlockEvent is the payload of an EventKindNewBlock ChainEvent.
type NewBlockEvent struct {
	Index uint32
	Hash  util.Uint256
}

// MempoolTxEvent is the payload of an EventKindMempoolTx ChainEvent.
type MempoolTxEvent struct {
	Tx *transaction.Transaction
}

// TickEvent is the payload of an EventKindTick ChainEvent.
type TickEvent struct {
	At time.Time
}

// ChainEvent is the tagged-union event type the demo engine is
// instantiated with. Exactly one of NewBlock, MempoolTx, or Tick is
// populated, selected by Kind.
type ChainEvent struct {
	Kind     EventKind
	NewBlock *NewBlockEvent
	MempoolTx *MempoolTxEvent
	Tick     *TickEvent
}

// NewChainEventFromNewBlock wraps a NewBlockEvent into a ChainEvent.
// BlockCollector uses it to build the events it emits, and it can serve as
// the injection function reactor.InjectCollector needs to lift a
// Collector[NewBlockEvent] into Collector[ChainEvent].
func NewChainEventFromNewBlock(e NewBlockEvent) ChainEvent {
	return ChainEvent{Kind: EventKindNewBlock, NewBlock: &e}
}

// NewChainEventFromMempoolTx wraps a MempoolTxEvent into a ChainEvent.
func NewChainEventFromMempoolTx(e MempoolTxEvent) ChainEvent {
	return ChainEvent{Kind: EventKindMempoolTx, MempoolTx: &e}
}

// NewChainEventFromTick wraps a TickEvent into a ChainEvent.
func NewChainEventFromTick(e TickEvent) ChainEvent {
	return ChainEvent{Kind: EventKindTick, Tick: &e}
}

// AsNewBlock projects a ChainEvent down to its NewBlockEvent payload. It is
// the projection function a per-variant strategy or
// reactor.CollectorFilterMap consumer uses.
func (e ChainEvent) AsNewBlock() (NewBlockEvent, bool) {
	if e.Kind != EventKindNewBlock || e.NewBlock == nil {
		return NewBlockEvent{}, false
	}
	return *e.NewBlock, true
}

// AsMempoolTx projects a ChainEvent down to its MempoolTxEvent payload.
func (e ChainEvent) AsMempoolTx() (MempoolTxEvent, bool) {
	if e.Kind != EventKindMempoolTx || e.MempoolTx == nil {
		return MempoolTxEvent{}, false
	}
	return *e.MempoolTx, true
}

// AsTick projects a ChainEvent down to its TickEvent payload.
func (e ChainEvent) AsTick() (TickEvent, bool) {
	if e.Kind != EventKindTick || e.Tick == nil {
		return TickEvent{}, false
	}
	return *e.Tick, true
}
