package game

import (
	"runtime"
	"sync"

	"github.com/pthm-cable/shatter/components"
	"github.com/pthm-cable/shatter/systems"
)

// defaultParallelThreshold is the minimum entity count to use the worker pool.
// Below this, single-threaded is faster due to goroutine overhead.
const defaultParallelThreshold = 64

// workChunk is a range of one entity kind for a worker to integrate.
// Exactly one of targets and projectiles is set.
type workChunk struct {
	targets     []components.Target
	projectiles []components.Projectile
	arena       systems.Arena
	maxSpeed    float32
	dt          float32
}

func (c workChunk) run() {
	if c.targets != nil {
		systems.IntegrateTargets(c.targets, c.arena, c.maxSpeed, c.dt)
		return
	}
	systems.IntegrateProjectiles(c.projectiles, c.arena, c.dt)
}

// parallelState holds the persistent integration worker pool.
type parallelState struct {
	threshold  int
	numWorkers int

	workChan chan workChunk // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool           // true if workers are running
}

func newParallelState(threshold int) *parallelState {
	if threshold <= 0 {
		threshold = defaultParallelThreshold
	}
	return &parallelState{
		threshold:  threshold,
		numWorkers: runtime.GOMAXPROCS(0),
	}
}

// startWorkers launches persistent worker goroutines.
func (p *parallelState) startWorkers() {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, 2*p.numWorkers)
	p.doneChan = make(chan struct{}, 2*p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (p *parallelState) stopWorkers() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker processes chunks until stopped.
func (p *parallelState) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			chunk.run()
			p.doneChan <- struct{}{}
		}
	}
}

// integrate runs the integration phase. Targets and projectiles are
// independent; each kind is split into disjoint index ranges so the result
// does not depend on scheduling.
func (g *Game) integrate(dt float32) {
	targets := g.targets.Items()
	projectiles := g.projectiles.Items()
	maxSpeed := float32(g.config().Targets.MaxSpeed)

	if len(targets)+len(projectiles) < g.parallel.threshold {
		systems.IntegrateTargets(targets, g.arena, maxSpeed, dt)
		systems.IntegrateProjectiles(projectiles, g.arena, dt)
		return
	}

	p := g.parallel
	if !p.running {
		p.startWorkers()
	}

	dispatched := 0
	chunkSize := (len(targets) + p.numWorkers - 1) / p.numWorkers
	for start := 0; start < len(targets); start += chunkSize {
		end := min(start+chunkSize, len(targets))
		p.workChan <- workChunk{targets: targets[start:end:end], arena: g.arena, maxSpeed: maxSpeed, dt: dt}
		dispatched++
	}
	chunkSize = (len(projectiles) + p.numWorkers - 1) / p.numWorkers
	for start := 0; start < len(projectiles); start += chunkSize {
		end := min(start+chunkSize, len(projectiles))
		p.workChan <- workChunk{projectiles: projectiles[start:end:end], arena: g.arena, dt: dt}
		dispatched++
	}

	// Barrier: the phase is complete only when every chunk is done.
	for i := 0; i < dispatched; i++ {
		<-p.doneChan
	}
}
