// Package executor ships reference Executor implementations: a Neo N3 raw
// transaction broadcaster and a structured-log sink.
package executor

import (
	"fmt"

	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
)

// ActionKind discriminates the ChainAction tagged union.
type ActionKind int

const (
	ActionKindBroadcastTx ActionKind = iota
	ActionKindLogMessage
)

func (k ActionKind) String() string {
	switch k {
	case ActionKindBroadcastTx:
		return "BroadcastTx"
	case ActionKindLogMessage:
		return "LogMessage"
	default:
		return fmt.Sprintf("ActionKind(%d)", int(k))
	}
}

// BroadcastTxAction is the payload of an ActionKindBroadcastTx ChainAction:
// an unsigned (or partially signed) transaction to be signed and sent by
// RawTransactionExecutor.
type BroadcastTxAction struct {
	Tx *transaction.Transaction
}

// LogMessageAction is the payload of an ActionKindLogMessage ChainAction.
type LogMessageAction struct {
	Message string
	Fields  map[string]interface{}
}

// ChainAction is the tagged-union action type the demo engine is
// instantiated with. Exactly one of BroadcastTx or LogMessage is
// populated, selected by Kind.
type ChainAction struct {
	Kind        ActionKind
	BroadcastTx *BroadcastTxAction
	LogMessage  *LogMessageAction
}

// NewChainActionFromBroadcastTx wraps a BroadcastTxAction into a
// ChainAction.
func NewChainActionFromBroadcastTx(a BroadcastTxAction) ChainAction {
	return ChainAction{Kind: ActionKindBroadcastTx, BroadcastTx: &a}
}

// NewChainActionFromLogMessage wraps a LogMessageAction into a ChainAction.
func NewChainActionFromLogMessage(a LogMessageAction) ChainAction {
	return ChainAction{Kind: ActionKindLogMessage, LogMessage: &a}
}

// AsBroadcastTx projects a ChainAction down to its BroadcastTxAction
// payload. ExecutorMap uses this to dispatch only BroadcastTx actions to
// RawTransactionExecutor.
func (a ChainAction) AsBroadcastTx() (BroadcastTxAction, bool) {
	if a.Kind != ActionKindBroadcastTx || a.BroadcastTx == nil {
		return BroadcastTxAction{}, false
	}
	return *a.BroadcastTx, true
}

// AsLogMessage projects a ChainAction down to its LogMessageAction payload.
func (a ChainAction) AsLogMessage() (LogMessageAction, bool) {
	if a.Kind != ActionKindLogMessage || a.LogMessage == nil {
		return LogMessageAction{}, false
	}
	return *a.LogMessage, true
}
