package eth

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"walletwatch/api/internal/config"
	"walletwatch/api/internal/logger"
	"walletwatch/api/internal/metrics"
	"walletwatch/pkg/rr"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

var errNoEndpoints = errors.New("no provider endpoints configured")

type backend interface {
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

type rpcCaller interface {
	CallContext(ctx context.Context, result any, method string, args ...any) error
}

type endpoint struct {
	url string
	eth backend
	rpc rpcCaller
}

// Client is the chain data provider. It is built once at startup and shared
// by every synchronization.
type Client struct {
	endpoints rr.RoundRobin[*endpoint]
	limiter   *rate.Limiter
	breaker   *gobreaker.CircuitBreaker
	timeout   time.Duration
	l         logger.Logger
	now       func() time.Time
}

type Options struct {
	Timeout time.Duration
	Rps     float64
}

func Init(config *config.Config, l logger.Logger) *Client {
	var endpoints []*endpoint
	for i, url := range config.Provider.Urls {
		client, err := Connect(url)
		if err != nil {
			panic("Can't connect: " + err.Error())
		}
		l.Info(fmt.Sprintf("[%d] ETH connected", i), logger.LS_MONITOR, false, "url", redact(url))
		endpoints = append(endpoints, &endpoint{url: url, eth: client, rpc: client.Client()})
	}

	return newClient(endpoints, Options{Timeout: config.Provider.Timeout, Rps: config.Provider.Rps}, l)
}

// NewFromClients builds a Client over already dialed connections.
func NewFromClients(clients []*ethclient.Client, opts Options, l logger.Logger) *Client {
	endpoints := make([]*endpoint, 0, len(clients))
	for _, c := range clients {
		endpoints = append(endpoints, &endpoint{eth: c, rpc: c.Client()})
	}
	return newClient(endpoints, opts, l)
}

func newClient(endpoints []*endpoint, opts Options, l logger.Logger) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	limit := rate.Inf
	if opts.Rps > 0 {
		limit = rate.Limit(opts.Rps)
	}

	st := gobreaker.Settings{
		Name:        "ChainProvider",
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 10
		},
		IsSuccessful: countsAsSuccess,
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			l.Info("circuit breaker state changed", logger.LS_MONITOR, false, "name", name, "from", from.String(), "to", to.String())
		},
	}

	return &Client{
		endpoints: rr.FromSlice(endpoints),
		limiter:   rate.NewLimiter(limit, max(1, int(opts.Rps))),
		breaker:   gobreaker.NewCircuitBreaker(st),
		timeout:   opts.Timeout,
		l:         l,
		now:       time.Now,
	}
}

func Connect(url string) (*ethclient.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, err
	}

	_, err = client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}

// call runs fn against the next endpoint with the per-call timeout, the rate
// limiter and the circuit breaker applied.
func (c *Client) call(ctx context.Context, op string, fn func(ctx context.Context, e *endpoint) error) error {
	e, ok := c.endpoints.Next()
	if !ok {
		return errNoEndpoints
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	start := time.Now()
	_, err := c.breaker.Execute(func() (any, error) {
		return nil, fn(ctx, e)
	})
	metrics.ProviderLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ProviderErrors.WithLabelValues(op).Inc()
		return err
	}
	return nil
}

// countsAsSuccess keeps caller cancellation and unknown receipts out of the
// breaker's failure count, the provider answered or was never asked.
func countsAsSuccess(err error) bool {
	return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, ethereum.NotFound)
}

// hide api keys that providers put in the path
func redact(url string) string {
	const keep = 32
	if len(url) <= keep {
		return url
	}
	return url[:keep] + "..."
}
