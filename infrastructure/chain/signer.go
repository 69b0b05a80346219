package chain

import (
	"github.com/nspcc-dev/neo-go/pkg/config/netmode"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// Signer can authorize a Neo N3 transaction on behalf of some account.
// RawTransactionExecutor depends on this interface rather than a concrete
// wallet so callers can swap in a remote/HSM-backed signer without touching
// the executor.
type Signer interface {
	ScriptHash() util.Uint160
	SignTx(net netmode.Magic, tx *transaction.Transaction) error
}
