package bitcoind

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/sony/gobreaker"

	"github.com/btcbank/bankd/internal/core/application"
)

var (
	// MaxNumOfFailingRequests ...
	MaxNumOfFailingRequests = 10
	// FailingRatio ...
	FailingRatio = 0.6
)

// Config collects the connection parameters of the wallet daemon's RPC
// endpoint.
type Config struct {
	Host    string
	User    string
	Pass    string
	UseTLS  bool
	Timeout time.Duration
}

// client is the low-level JSON-RPC 1.0 transport to the daemon: one HTTP
// POST per call, basic auth, bounded by the configured timeout, behind a
// circuit breaker. No retries happen at this layer.
type client struct {
	cfg        Config
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker
	nextID     uint64
}

func newClient(cfg Config) *client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name: "bitcoind",
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				ratio := float64(counts.TotalFailures) / float64(counts.Requests)
				return int(counts.Requests) > MaxNumOfFailingRequests &&
					ratio >= FailingRatio
			},
		}),
	}
}

func (c *client) url() string {
	protocol := "http"
	if c.cfg.UseTLS {
		protocol = "https"
	}
	return fmt.Sprintf("%s://%s", protocol, c.cfg.Host)
}

// call performs one daemon RPC. Daemon-reported faults are returned as
// *btcjson.RPCError untouched; transport failures are wrapped as
// ErrDaemonUnavailable. A nil result skips decoding.
func (c *client) call(
	ctx context.Context, method string, params []interface{}, result interface{},
) error {
	id := atomic.AddUint64(&c.nextID, 1)
	rpcReq, err := btcjson.NewRequest(btcjson.RpcVersion1, id, method, params)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(rpcReq)
	if err != nil {
		return err
	}

	rawBody, err := c.cb.Execute(func() (interface{}, error) {
		return c.post(ctx, payload)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return fmt.Errorf("%w: circuit breaker is open", application.ErrDaemonUnavailable)
		}
		return fmt.Errorf("%w: %v", application.ErrDaemonUnavailable, err)
	}

	var rpcRes btcjson.Response
	if err := json.Unmarshal(rawBody.([]byte), &rpcRes); err != nil {
		return fmt.Errorf("%w: malformed daemon response: %v", application.ErrDaemonUnavailable, err)
	}
	if rpcRes.Error != nil {
		return rpcRes.Error
	}

	if result != nil {
		if err := json.Unmarshal(rpcRes.Result, result); err != nil {
			return fmt.Errorf("decoding %s result: %w", method, err)
		}
	}
	return nil
}

// post runs inside the circuit breaker: only transport-level problems count
// as failures. The daemon answers wallet faults with a non-2xx status and a
// JSON-RPC body, so the body is returned for parsing regardless of status.
func (c *client) post(ctx context.Context, payload []byte) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.url(), bytes.NewReader(payload),
	)
	if err != nil {
		return nil, err
	}
	httpReq.SetBasicAuth(c.cfg.User, c.cfg.Pass)
	httpReq.Header.Set("Content-Type", "application/json")

	httpRes, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpRes.Body.Close()

	body, err := io.ReadAll(httpRes.Body)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("empty daemon response, status %d", httpRes.StatusCode)
	}
	return body, nil
}
