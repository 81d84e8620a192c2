package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/streamboard-api/internal/domain"
)

// fakeClock permite avançar o tempo nos testes
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestCache(t *testing.T) (*ResultCache, *fakeClock) {
	t.Helper()

	clock := &fakeClock{now: time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)}
	c, err := New(Config{LongTTL: time.Hour, ShortTTL: 5 * time.Minute, MaxEntries: 10})
	require.NoError(t, err)

	return c.WithClock(clock.Now), clock
}

func countingCompute(calls *int32, value float64) ComputeFunc {
	return func(ctx context.Context) (*domain.Result, error) {
		atomic.AddInt32(calls, 1)
		return domain.NewSummaryResult("Site A", domain.Summary{"users": value}), nil
	}
}

var testKey = Key{
	Provider: domain.ProviderAnalytics,
	Account:  "Site A",
	Kind:     domain.KindOverview,
	Params:   domain.QueryParams{DaysBack: 30},
}

func TestResultCache_GetOrCompute(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		run  func(t *testing.T, c *ResultCache, clock *fakeClock)
	}{
		{
			name: "Dentro do TTL não recalcula",
			run: func(t *testing.T, c *ResultCache, clock *fakeClock) {
				var calls int32
				first, err := c.GetOrCompute(ctx, testKey, domain.TTLLong, countingCompute(&calls, 10))
				require.NoError(t, err)

				clock.Advance(59 * time.Minute)
				second, err := c.GetOrCompute(ctx, testKey, domain.TTLLong, countingCompute(&calls, 99))
				require.NoError(t, err)

				assert.Equal(t, int32(1), calls)
				assert.Equal(t, first, second)
				assert.Equal(t, 10.0, second.Summary["users"])
			},
		},
		{
			name: "Exatamente no limite do TTL ainda é válido",
			run: func(t *testing.T, c *ResultCache, clock *fakeClock) {
				var calls int32
				_, _ = c.GetOrCompute(ctx, testKey, domain.TTLLong, countingCompute(&calls, 10))

				clock.Advance(time.Hour)
				_, _ = c.GetOrCompute(ctx, testKey, domain.TTLLong, countingCompute(&calls, 10))

				assert.Equal(t, int32(1), calls)
			},
		},
		{
			name: "Após expirar recalcula exatamente uma vez",
			run: func(t *testing.T, c *ResultCache, clock *fakeClock) {
				var calls int32
				_, _ = c.GetOrCompute(ctx, testKey, domain.TTLLong, countingCompute(&calls, 10))

				clock.Advance(time.Hour + time.Second)
				result, err := c.GetOrCompute(ctx, testKey, domain.TTLLong, countingCompute(&calls, 20))
				require.NoError(t, err)
				_, _ = c.GetOrCompute(ctx, testKey, domain.TTLLong, countingCompute(&calls, 30))

				assert.Equal(t, int32(2), calls)
				assert.Equal(t, 20.0, result.Summary["users"])
			},
		},
		{
			name: "Classe curta expira antes da longa",
			run: func(t *testing.T, c *ResultCache, clock *fakeClock) {
				var longCalls, shortCalls int32
				realtime := testKey
				realtime.Kind = domain.KindRealtime
				realtime.Params = domain.QueryParams{}

				_, _ = c.GetOrCompute(ctx, testKey, domain.TTLLong, countingCompute(&longCalls, 1))
				_, _ = c.GetOrCompute(ctx, realtime, domain.TTLShort, countingCompute(&shortCalls, 1))

				clock.Advance(6 * time.Minute)
				_, _ = c.GetOrCompute(ctx, testKey, domain.TTLLong, countingCompute(&longCalls, 1))
				_, _ = c.GetOrCompute(ctx, realtime, domain.TTLShort, countingCompute(&shortCalls, 1))

				assert.Equal(t, int32(1), longCalls)
				assert.Equal(t, int32(2), shortCalls)
			},
		},
		{
			name: "Falha não é cacheada",
			run: func(t *testing.T, c *ResultCache, clock *fakeClock) {
				var calls int32
				failing := func(ctx context.Context) (*domain.Result, error) {
					atomic.AddInt32(&calls, 1)
					return nil, errors.New("timeout remoto")
				}

				_, err := c.GetOrCompute(ctx, testKey, domain.TTLLong, failing)
				assert.Error(t, err)

				result, err := c.GetOrCompute(ctx, testKey, domain.TTLLong, countingCompute(&calls, 5))
				require.NoError(t, err)

				assert.Equal(t, int32(2), calls)
				assert.Equal(t, 5.0, result.Summary["users"])
			},
		},
		{
			name: "Parâmetros diferentes usam chaves diferentes",
			run: func(t *testing.T, c *ResultCache, clock *fakeClock) {
				var calls int32
				week := testKey
				week.Params = domain.QueryParams{DaysBack: 7}

				_, _ = c.GetOrCompute(ctx, testKey, domain.TTLLong, countingCompute(&calls, 1))
				_, _ = c.GetOrCompute(ctx, week, domain.TTLLong, countingCompute(&calls, 1))

				assert.Equal(t, int32(2), calls)
			},
		},
		{
			name: "Entrada expirada só é removida na consulta",
			run: func(t *testing.T, c *ResultCache, clock *fakeClock) {
				var calls int32
				_, _ = c.GetOrCompute(ctx, testKey, domain.TTLLong, countingCompute(&calls, 1))

				clock.Advance(2 * time.Hour)
				assert.Equal(t, 1, c.Stats().Entries)

				_, err := c.GetOrCompute(ctx, testKey, domain.TTLLong, func(ctx context.Context) (*domain.Result, error) {
					return nil, errors.New("indisponível")
				})
				assert.Error(t, err)
				assert.Equal(t, 0, c.Stats().Entries)
			},
		},
		{
			name: "Alterar o resultado devolvido não altera o cache",
			run: func(t *testing.T, c *ResultCache, clock *fakeClock) {
				var calls int32
				first, _ := c.GetOrCompute(ctx, testKey, domain.TTLLong, countingCompute(&calls, 10))
				first.Summary["users"] = 1000

				second, _ := c.GetOrCompute(ctx, testKey, domain.TTLLong, countingCompute(&calls, 10))
				assert.Equal(t, 10.0, second.Summary["users"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, clock := newTestCache(t)
			tt.run(t, c, clock)
		})
	}
}

func TestResultCache_SingleFlight(t *testing.T) {
	c, _ := newTestCache(t)

	var calls int32
	release := make(chan struct{})
	compute := func(ctx context.Context) (*domain.Result, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return domain.NewSummaryResult("Site A", domain.Summary{"users": 42}), nil
	}

	const callers = 20
	var wg sync.WaitGroup
	results := make([]*domain.Result, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := c.GetOrCompute(context.Background(), testKey, domain.TTLLong, compute)
			assert.NoError(t, err)
			results[i] = r
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, r := range results {
		require.NotNil(t, r)
		assert.Equal(t, 42.0, r.Summary["users"])
	}
}

func TestResultCache_CallerCancellation(t *testing.T) {
	c, _ := newTestCache(t)

	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})
	compute := func(ctx context.Context) (*domain.Result, error) {
		atomic.AddInt32(&calls, 1)
		close(started)
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return domain.NewSummaryResult("Site A", domain.Summary{"users": 42}), nil
	}

	leaderCtx, cancel := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, err := c.GetOrCompute(leaderCtx, testKey, domain.TTLLong, compute)
		leaderErr <- err
	}()
	<-started

	type reply struct {
		result *domain.Result
		err    error
	}
	waiter := make(chan reply, 1)
	go func() {
		r, err := c.GetOrCompute(context.Background(), testKey, domain.TTLLong, compute)
		waiter <- reply{result: r, err: err}
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-leaderErr, context.Canceled)

	close(release)
	got := <-waiter
	require.NoError(t, got.err)
	assert.Equal(t, 42.0, got.result.Summary["users"])
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, 1, c.Stats().Entries)
}

func TestResultCache_StaleReadKeepsFreshEntry(t *testing.T) {
	c, clock := newTestCache(t)
	ctx := context.Background()
	k := testKey.String()

	var calls int32
	_, _ = c.GetOrCompute(ctx, testKey, domain.TTLLong, countingCompute(&calls, 1))
	clock.Advance(2 * time.Hour)

	// leitura fora do singleflight não remove a entrada expirada
	assert.Nil(t, c.lookup(k, time.Hour, false))
	assert.Equal(t, 1, c.Stats().Entries)

	fresh, err := c.GetOrCompute(ctx, testKey, domain.TTLLong, countingCompute(&calls, 2))
	require.NoError(t, err)
	assert.Equal(t, 2.0, fresh.Summary["users"])

	assert.NotNil(t, c.lookup(k, time.Hour, false))
	again, err := c.GetOrCompute(ctx, testKey, domain.TTLLong, countingCompute(&calls, 3))
	require.NoError(t, err)
	assert.Equal(t, 2.0, again.Summary["users"])
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestResultCache_PurgeAndStats(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	var calls int32
	_, _ = c.GetOrCompute(ctx, testKey, domain.TTLLong, countingCompute(&calls, 1))
	_, _ = c.GetOrCompute(ctx, testKey, domain.TTLLong, countingCompute(&calls, 1))

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.Entries)

	c.Purge()
	assert.Equal(t, 0, c.Stats().Entries)
}

func TestKey_String(t *testing.T) {
	assert.Equal(t, "analytics|Site A|overview|d=30|l=0", testKey.String())
}
