package collector

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/R3E-Network/chainreactor/infrastructure/logging"
	"github.com/gorilla/websocket"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
)

// MempoolCollector subscribes to a Neo N3 node's websocket notification
// feed for unconfirmed ("mempool_added") transactions and emits one
// MempoolTxEvent per transaction observed, following the usual
// connect/subscribe/read-loop shape of a long-lived websocket client. It
// does not reconnect: the event stream ends when the connection drops.
type MempoolCollector struct {
	wsURL  string
	logger *logging.Logger
}

// NewMempoolCollector creates a MempoolCollector for the given Neo N3
// websocket RPC endpoint (e.g. "ws://seed1.neo.org:10332/ws").
func NewMempoolCollector(wsURL string, logger *logging.Logger) *MempoolCollector {
	if logger == nil {
		logger = logging.Default()
	}
	return &MempoolCollector{wsURL: wsURL, logger: logger}
}

func (c *MempoolCollector) Name() string { return "MempoolCollector" }

type wsSubscribeRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type wsNotification struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

type mempoolNotificationParams struct {
	Transaction rawTransaction `json:"transaction"`
}

type rawTransaction struct {
	Raw string `json:"raw"`
}

// GetEventStream dials the node, subscribes to mempool notifications, and
// forwards every decoded transaction until ctx is done or the connection
// drops.
func (c *MempoolCollector) GetEventStream(ctx context.Context) (<-chan ChainEvent, error) {
	if _, err := url.Parse(c.wsURL); err != nil {
		return nil, fmt.Errorf("mempool collector: invalid websocket URL: %w", err)
	}

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, c.wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("mempool collector: dial: %w", err)
	}

	sub := wsSubscribeRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "subscribe",
		Params:  []interface{}{"mempool_added"},
	}
	if err := conn.WriteJSON(sub); err != nil {
		conn.Close()
		return nil, fmt.Errorf("mempool collector: subscribe: %w", err)
	}

	out := make(chan ChainEvent)
	go func() {
		defer close(out)
		defer conn.Close()

		go func() {
			<-ctx.Done()
			conn.Close()
		}()

		for {
			var notif wsNotification
			if err := conn.ReadJSON(&notif); err != nil {
				if ctx.Err() == nil {
					c.logger.Warn(ctx, "mempool collector websocket read failed", map[string]interface{}{"error": err.Error()})
				}
				return
			}
			if notif.Method != "mempool_added" {
				continue
			}

			var params mempoolNotificationParams
			if err := json.Unmarshal(notif.Params, &params); err != nil {
				c.logger.Warn(ctx, "mempool collector failed to decode notification", map[string]interface{}{"error": err.Error()})
				continue
			}

			tx, err := decodeRawTransaction(params.Transaction.Raw)
			if err != nil {
				c.logger.Warn(ctx, "mempool collector failed to decode transaction", map[string]interface{}{"error": err.Error()})
				continue
			}

			event := NewChainEventFromMempoolTx(MempoolTxEvent{Tx: tx})
			select {
			case out <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

func decodeRawTransaction(encoded string) (*transaction.Transaction, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode base64 transaction payload: %w", err)
	}
	return transaction.NewTransactionFromBytes(raw)
}
