package integrator

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"time"

	"github.com/vfg2006/streamboard-api/pkg/utils"
)

// SeededRand devolve um gerador determinístico para a combinação informada,
// usado pelos geradores de dados de demonstração
func SeededRand(parts ...any) *rand.Rand {
	h := fnv.New64a()
	for _, p := range parts {
		fmt.Fprint(h, p)
		h.Write([]byte{0})
	}
	seed := h.Sum64()

	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Uniform sorteia um valor em [lo, hi)
func Uniform(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// IntBetween sorteia um inteiro em [lo, hi)
func IntBetween(r *rand.Rand, lo, hi int) float64 {
	return float64(lo + r.IntN(hi-lo))
}

// Days devolve n dias consecutivos terminando no dia de end, do mais antigo ao mais recente
func Days(end time.Time, n int) []time.Time {
	last := utils.TruncateDay(end)
	days := make([]time.Time, n)
	for i := 0; i < n; i++ {
		days[i] = last.AddDate(0, 0, i-n+1)
	}
	return days
}
