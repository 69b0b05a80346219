// Command chainreactor-demo wires the reference Neo N3 collectors,
// strategies, and executors into a running reactor.Engine, demonstrating a
// realistic scheduled-automation pipeline end to end.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/R3E-Network/chainreactor/domain/automation"
	"github.com/R3E-Network/chainreactor/domain/trigger"
	"github.com/R3E-Network/chainreactor/infrastructure/chain"
	"github.com/R3E-Network/chainreactor/infrastructure/logging"
	"github.com/R3E-Network/chainreactor/infrastructure/resilience"
	"github.com/R3E-Network/chainreactor/infrastructure/runtime"
	"github.com/R3E-Network/chainreactor/reactor"
	"github.com/R3E-Network/chainreactor/reactor/collector"
	"github.com/R3E-Network/chainreactor/reactor/executor"
	"github.com/R3E-Network/chainreactor/reactor/metrics"
	"github.com/joho/godotenv"
	"github.com/nspcc-dev/neo-go/pkg/config/netmode"
)

func main() {
	_ = godotenv.Load()

	logger := logging.NewFromEnv("chainreactor-demo")

	rpcURL := runtime.ResolveString("", "CHAINREACTOR_RPC_URL", "https://testnet1.neo.coz.io:443")
	pollInterval := runtime.ResolveDuration(0, "CHAINREACTOR_BLOCK_POLL_INTERVAL", 15*time.Second)
	privateKeyHex := runtime.ResolveString("", "CHAINREACTOR_SIGNER_PRIVATE_KEY", "")

	ctx, err := run(logger, rpcURL, pollInterval, privateKeyHex)
	if err != nil {
		logger.Error(context.Background(), "chainreactor-demo exited with error", err, nil)
		os.Exit(1)
	}
	<-ctx.Done()
}

func run(logger *logging.Logger, rpcURL string, pollInterval time.Duration, privateKeyHex string) (context.Context, error) {
	background := context.Background()
	client, err := chain.NewClient(background, chain.Config{RPCURL: rpcURL})
	if err != nil {
		return nil, fmt.Errorf("connect to neo rpc: %w", err)
	}

	jobStore := automation.StaticJobStore{
		Jobs: []*automation.Job{
			{
				ID:         "demo-heartbeat",
				Name:       "heartbeat",
				FunctionID: "log-heartbeat",
				Trigger:    trigger.TypeCron,
				Schedule:   "*/1 * * * *",
				Status:     automation.JobStatusActive,
			},
			{
				ID:         "demo-on-block",
				Name:       "log-every-block",
				FunctionID: "log-block",
				Trigger:    trigger.TypeEvent,
				Status:     automation.JobStatusActive,
				MaxRuns:    100,
			},
		},
	}

	metricsSink := metrics.New("chainreactor-demo")
	strategy := automation.NewStrategy(jobStore, logger)
	logExec := executor.NewLogExecutor(logger)

	engine := reactor.New[collector.ChainEvent, executor.ChainAction]().
		WithLogger(logger).
		WithMetricsSink(metricsSink).
		AddCollector(collector.NewTickCollector(10 * time.Second)).
		AddCollector(collector.NewBlockCollector(client, pollInterval)).
		AddStrategy(strategy).
		AddExecutor(reactor.ExecutorMap[executor.ChainAction, executor.LogMessageAction](logExec, executor.ChainAction.AsLogMessage))

	if privateKeyHex != "" {
		signer, err := chain.NewLocalSignerFromPrivateKeyHex(privateKeyHex)
		if err != nil {
			return nil, fmt.Errorf("create signer: %w", err)
		}
		rawTxExec := executor.NewRawTransactionExecutor(client, signer, netmode.TestNet, resilience.DefaultChainBroadcastRetryConfig(), nil, logger)
		engine.AddExecutor(reactor.ExecutorMap[executor.ChainAction, executor.BroadcastTxAction](rawTxExec, executor.ChainAction.AsBroadcastTx))
	}

	ctx, stop := signal.NotifyContext(background, os.Interrupt, syscall.SIGTERM)

	handle, err := engine.Run(ctx)
	if err != nil {
		stop()
		client.Close()
		return nil, fmt.Errorf("run engine: %w", err)
	}

	logger.Info(ctx, "chainreactor-demo started", map[string]interface{}{
		"rpc_url":        rpcURL,
		"strategy_count": engine.StrategyCount(),
		"executor_count": engine.ExecutorCount(),
	})

	go func() {
		<-ctx.Done()
		handle.Stop()
		handle.Join()
		client.Close()
		stop()
		logger.Info(background, "chainreactor-demo stopped", nil)
	}()

	return ctx, nil
}
