package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/viniciusth/skew"
)

type densityType string

const (
	// densityLow draws every symbol independently; sample windows rarely
	// collide and the construction mostly avoids recursing.
	densityLow densityType = "low"
	// densityHigh fills the sequence with long repeated runs, forcing
	// window collisions and deep recursion.
	densityHigh densityType = "high"
)

type memMonitor struct {
	maxAlloc uint64
	stop     chan struct{}
}

func newMemMonitor() *memMonitor {
	mm := &memMonitor{stop: make(chan struct{})}
	go func() {
		for {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			if m.Alloc > mm.maxAlloc {
				mm.maxAlloc = m.Alloc
			}
			select {
			case <-mm.stop:
				return
			default:
				time.Sleep(10 * time.Millisecond)
			}
		}
	}()
	return mm
}

func (mm *memMonitor) Stop() uint64 {
	close(mm.stop)
	return mm.maxAlloc
}

func getCurrentAlloc() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc
}

func generate(r *rand.Rand, n, sigma int, density densityType) []int {
	seq := make([]int, n)
	if density == densityHigh {
		for i := 0; i < n; {
			s := r.Intn(sigma)
			run := 1 + r.Intn(n/4+1)
			for ; run > 0 && i < n; run-- {
				seq[i] = s
				i++
			}
		}
		return seq
	}
	for i := range seq {
		seq[i] = r.Intn(sigma)
	}
	return seq
}

func measureBuild(seq []int, sigma int) (time.Duration, uint64, uint64) {
	runtime.GC()
	mm := newMemMonitor()
	start := time.Now()
	if _, err := skew.NewBuilder(seq).MaxSymbol(sigma - 1).Build(); err != nil {
		panic(err)
	}
	dur := time.Since(start)
	peak := mm.Stop()
	runtime.GC()
	alloc := getCurrentAlloc()
	return dur, peak, alloc
}

func runBenchmark(n, sigma, runs int, density densityType) {
	for run := 0; run < runs; run++ {
		r := rand.New(rand.NewSource(int64(run)))
		seq := generate(r, n, sigma, density)
		bt, bp, ba := measureBuild(seq, sigma)
		fmt.Printf("%d,%d,%s,%.0f,%d,%d\n",
			n, sigma, density, float64(bt.Nanoseconds()), bp, ba)
	}
}

func main() {
	n := flag.Int("n", 0, "Sequence length N")
	sigma := flag.Int("sigma", 0, "Alphabet size")
	runs := flag.Int("runs", 3, "Number of runs for averaging")
	d := flag.String("d", "low", "Density: low or high")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file")
	flag.Parse()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	if *n <= 0 || *sigma <= 0 || (*d != string(densityLow) && *d != string(densityHigh)) {
		fmt.Println("Usage: go run main.go -n=<N> -sigma=<sigma> -d=<density> [-runs=<runs>]")
		os.Exit(1)
	}

	runBenchmark(*n, *sigma, *runs, densityType(*d))
}
