package executor

import (
	"context"
	"fmt"

	"github.com/R3E-Network/chainreactor/infrastructure/chain"
	"github.com/R3E-Network/chainreactor/infrastructure/logging"
	"github.com/R3E-Network/chainreactor/infrastructure/resilience"
	"github.com/nspcc-dev/neo-go/pkg/config/netmode"
)

// RawTransactionExecutor signs and broadcasts a BroadcastTxAction's
// transaction through a Neo N3 RPC client, wrapped in a retry with
// exponential backoff and a circuit breaker to stop hammering an
// unresponsive node: sign, send_raw_transaction, log the outcome, and
// return any send error to the engine, which logs it and goes on with the
// next action. Built on this codebase's own resilience.Retry and
// resilience.CircuitBreaker.
type RawTransactionExecutor struct {
	client  *chain.Client
	signer  chain.Signer
	network netmode.Magic
	retry   resilience.RetryConfig
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
}

// NewRawTransactionExecutor creates a RawTransactionExecutor. A nil logger
// defaults to logging.Default(); a nil breaker config defaults to
// resilience.DefaultChainBroadcastCBConfig, tuned for Neo N3 broadcast
// calls rather than the generic service-call defaults.
func NewRawTransactionExecutor(client *chain.Client, signer chain.Signer, network netmode.Magic, retry resilience.RetryConfig, breakerCfg *resilience.Config, logger *logging.Logger) *RawTransactionExecutor {
	if logger == nil {
		logger = logging.Default()
	}
	cfg := resilience.DefaultChainBroadcastCBConfig(logger)
	if breakerCfg != nil {
		cfg = *breakerCfg
	}
	return &RawTransactionExecutor{
		client:  client,
		signer:  signer,
		network: network,
		retry:   retry,
		breaker: resilience.New(cfg),
		logger:  logger,
	}
}

func (e *RawTransactionExecutor) Name() string { return "RawTransactionExecutor" }

// Execute operates on the concrete BroadcastTxAction payload; register it
// against the engine's ChainAction bus via
// reactor.ExecutorMap(rawTxExecutor, ChainAction.AsBroadcastTx).
func (e *RawTransactionExecutor) Execute(ctx context.Context, action BroadcastTxAction) error {
	if action.Tx == nil {
		return fmt.Errorf("rawtx executor: nil transaction")
	}

	if err := e.signer.SignTx(e.network, action.Tx); err != nil {
		return fmt.Errorf("rawtx executor: sign: %w", err)
	}

	err := e.breaker.Execute(ctx, func() error {
		return resilience.Retry(ctx, e.retry, func() error {
			_, sendErr := e.client.SendRawTransaction(ctx, action.Tx)
			return sendErr
		})
	})

	e.logger.LogChainTx(ctx, action.Tx.Hash().StringLE(), "broadcast", err)
	return err
}
