package cache

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/streamboard-api/internal/domain"
	"golang.org/x/sync/singleflight"
)

const defaultMaxEntries = 1000

// Key identifica um resultado cacheado. Params deve estar normalizado.
type Key struct {
	Provider domain.Provider
	Account  string
	Kind     domain.QueryKind
	Params   domain.QueryParams
}

func (k Key) String() string {
	return fmt.Sprintf("%s|%s|%s|d=%d|l=%d", k.Provider, k.Account, k.Kind, k.Params.DaysBack, k.Params.Limit)
}

// ComputeFunc produz o resultado quando não há entrada válida
type ComputeFunc func(ctx context.Context) (*domain.Result, error)

type Config struct {
	LongTTL    time.Duration
	ShortTTL   time.Duration
	MaxEntries int
}

type Stats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Entries int   `json:"entries"`
}

// entry guarda o resultado com o instante do cálculo
type entry struct {
	result     *domain.Result
	computedAt time.Time
}

// ResultCache é o cache de resultados por conta. Entradas expiradas só são
// removidas quando consultadas; falhas nunca são guardadas.
type ResultCache struct {
	entries *lru.Cache[string, *entry]
	group   singleflight.Group
	ttls    map[domain.TTLClass]time.Duration
	now     func() time.Time

	hits   atomic.Int64
	misses atomic.Int64
}

func New(cfg Config) (*ResultCache, error) {
	size := cfg.MaxEntries
	if size <= 0 {
		size = defaultMaxEntries
	}

	entries, err := lru.New[string, *entry](size)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"cache_long_ttl":    cfg.LongTTL.String(),
		"cache_short_ttl":   cfg.ShortTTL.String(),
		"cache_max_entries": size,
	}).Info("Cache de resultados configurado")

	return &ResultCache{
		entries: entries,
		ttls: map[domain.TTLClass]time.Duration{
			domain.TTLLong:  cfg.LongTTL,
			domain.TTLShort: cfg.ShortTTL,
		},
		now: time.Now,
	}, nil
}

// WithClock substitui o relógio usado para calcular a validade das entradas
func (c *ResultCache) WithClock(now func() time.Time) *ResultCache {
	c.now = now
	return c
}

// lookup devolve a entrada válida. evict remove a expirada e só deve ser usado
// dentro do singleflight da chave.
func (c *ResultCache) lookup(key string, ttl time.Duration, evict bool) *entry {
	e, ok := c.entries.Get(key)
	if !ok {
		return nil
	}

	if c.now().Sub(e.computedAt) > ttl {
		if evict {
			c.entries.Remove(key)
		}
		return nil
	}

	return e
}

// GetOrCompute devolve o resultado cacheado ou executa compute. Chamadas
// concorrentes para a mesma chave compartilham uma única execução, que não é
// interrompida pelo cancelamento de quem a iniciou; cada chamador desiste
// apenas pelo próprio ctx.
func (c *ResultCache) GetOrCompute(ctx context.Context, key Key, class domain.TTLClass, compute ComputeFunc) (*domain.Result, error) {
	k := key.String()
	ttl := c.ttls[class]

	if e := c.lookup(k, ttl, false); e != nil {
		c.hits.Add(1)
		return e.result.Clone(), nil
	}

	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(k, func() (any, error) {
		// outra execução pode ter preenchido a chave enquanto esperávamos
		if e := c.lookup(k, ttl, true); e != nil {
			c.hits.Add(1)
			return e.result, nil
		}

		c.misses.Add(1)
		result, err := compute(detached)
		if err != nil {
			return nil, err
		}

		stored := result.Clone()
		c.entries.Add(k, &entry{result: stored, computedAt: c.now()})
		return stored, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			logrus.WithField("cache_key", k).Debug("cache: resultado compartilhado entre chamadas concorrentes")
		}
		return res.Val.(*domain.Result).Clone(), nil
	}
}

// Purge descarta todas as entradas
func (c *ResultCache) Purge() {
	c.entries.Purge()
}

func (c *ResultCache) Stats() Stats {
	return Stats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: c.entries.Len(),
	}
}
