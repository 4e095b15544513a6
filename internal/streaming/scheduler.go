package streaming

import (
	"runtime"

	"github.com/MarvinIG/projectrube/internal/culling"
	"github.com/MarvinIG/projectrube/internal/logger"
	"github.com/MarvinIG/projectrube/internal/meshing"
	"github.com/MarvinIG/projectrube/internal/noise"
	"github.com/MarvinIG/projectrube/internal/scene"
	"github.com/MarvinIG/projectrube/internal/terrain"

	"github.com/alitto/pond/v2"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Options configures a Scheduler. Zero fields fall back to defaults.
type Options struct {
	// ViewWidth is the ring radius in chunks around the observer.
	ViewWidth int
	// VerticalChunks is the fixed number of vertical chunk layers.
	VerticalChunks int
	// NearRing is the largest ring distance still meshed at full detail;
	// everything beyond it drops to LOD 2.
	NearRing int
	// EvictionMargin is the hysteresis band beyond ViewWidth that keeps
	// boundary chunks from thrashing between create and destroy.
	EvictionMargin int
	// Workers sizes the background pool; 0 means one per CPU.
	Workers int
	// MaxPendingPerTick caps new task submissions per scheduling pass.
	// 0 disables the cap.
	MaxPendingPerTick int

	Generator terrain.GeneratorConfig
}

func DefaultOptions() Options {
	return Options{
		ViewWidth:      8,
		VerticalChunks: terrain.WorldChunksY,
		NearRing:       6,
		EvictionMargin: 2,
		Generator:      terrain.DefaultGeneratorConfig(),
	}
}

type residentChunk struct {
	lod    int
	handle scene.Handle
}

// result is a background completion message, tagged with its originating
// coordinate and requested LOD so the scheduler can validate it against
// current bookkeeping before applying.
type result struct {
	coord ChunkCoord
	lod   int
	mesh  *meshing.Mesh
}

// Scheduler decides every tick which chunk coordinates at which LOD must
// exist around the observer, dispatches generation+meshing to a
// background pool, promotes completed results into the scene and evicts
// chunks outside range.
//
// The resident and pending maps are owned by whichever goroutine drives
// Tick; background tasks communicate only through the results channel,
// so residency state needs no locks. A coordinate lives in at most one
// of the two maps at any instant.
type Scheduler struct {
	opts     Options
	renderer scene.Renderer

	pool    pond.Pool
	results chan result

	pending  map[ChunkCoord]int
	resident map[ChunkCoord]residentChunk

	lastChunk ChunkCoord
	hasLast   bool
	closed    bool

	submittedTotal int
}

// New allocates scheduler state: the "enter generation mode" hook. Close
// is its counterpart.
func New(renderer scene.Renderer, opts Options) *Scheduler {
	logger.Init()

	def := DefaultOptions()
	if opts.ViewWidth <= 0 {
		opts.ViewWidth = def.ViewWidth
	}
	if opts.VerticalChunks <= 0 {
		opts.VerticalChunks = def.VerticalChunks
	}
	if opts.NearRing <= 0 {
		opts.NearRing = def.NearRing
	}
	if opts.EvictionMargin <= 0 {
		opts.EvictionMargin = def.EvictionMargin
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if len(opts.Generator.Layers) == 0 {
		opts.Generator = def.Generator
	}

	// The buffer only has to hold finished-but-undrained results; Tick
	// drains it fully, so working-set-sized plus slack is plenty.
	span := 2*(opts.ViewWidth+opts.EvictionMargin) + 1
	buffer := span * span * opts.VerticalChunks * 2
	if buffer < 256 {
		buffer = 256
	}

	s := &Scheduler{
		opts:     opts,
		renderer: renderer,
		pool:     pond.NewPool(opts.Workers),
		results:  make(chan result, buffer),
		pending:  make(map[ChunkCoord]int),
		resident: make(map[ChunkCoord]residentChunk),
	}
	logger.Log.Info("Chunk scheduler started",
		zap.Int("viewWidth", opts.ViewWidth),
		zap.Int("verticalChunks", opts.VerticalChunks),
		zap.Int("workers", opts.Workers))
	return s
}

// SetLayers swaps the terrain layer parameters live. Tasks already in
// flight keep the snapshot they were dispatched with.
func (s *Scheduler) SetLayers(layers []noise.Layer) {
	s.opts.Generator.Layers = append([]noise.Layer(nil), layers...)
}

// Tick runs one scheduling pass for the observer position. It never
// blocks on background work: completions are polled non-blockingly and
// whatever has finished is promoted. The scheduling pass itself is
// skipped while the observer stays inside the same chunk.
func (s *Scheduler) Tick(observer mgl32.Vec3) {
	if s.closed {
		return
	}

	obs := WorldToChunk(observer)
	if !s.hasLast || obs != s.lastChunk {
		s.evict(obs)
		// A pass truncated by the submission cap reruns next tick until
		// the whole ring is covered.
		s.hasLast = !s.request(obs)
		s.lastChunk = obs
	}

	s.drain()
}

// evict drops every resident or pending coordinate whose ring distance
// exceeds the view width plus the hysteresis margin.
func (s *Scheduler) evict(obs ChunkCoord) {
	limit := s.opts.ViewWidth + s.opts.EvictionMargin
	evicted := 0

	for coord, rc := range s.resident {
		if coord.RingDistance(obs) > limit {
			s.renderer.Despawn(rc.handle)
			delete(s.resident, coord)
			evicted++
		}
	}
	for coord := range s.pending {
		if coord.RingDistance(obs) > limit {
			// The in-flight task keeps running; its result arrives
			// untracked and is dropped.
			delete(s.pending, coord)
			evicted++
		}
	}

	if evicted > 0 {
		logger.Log.Debug("Evicted out-of-range chunks", zap.Int("count", evicted))
	}
}

// request walks the square ring around the observer across all vertical
// layers and dispatches generation for every coordinate that is absent
// or tracked at the wrong LOD. It reports whether the submission cap cut
// the pass short.
func (s *Scheduler) request(obs ChunkCoord) bool {
	submitted := 0
	truncated := false

	for dx := -s.opts.ViewWidth; dx <= s.opts.ViewWidth; dx++ {
		for dz := -s.opts.ViewWidth; dz <= s.opts.ViewWidth; dz++ {
			lod := s.lodForRing(maxInt(abs(dx), abs(dz)))

			for cy := 0; cy < s.opts.VerticalChunks; cy++ {
				coord := ChunkCoord{X: obs.X + dx, Y: cy, Z: obs.Z + dz}

				if rc, ok := s.resident[coord]; ok && rc.lod == lod {
					continue
				}
				if plod, ok := s.pending[coord]; ok && plod == lod {
					continue
				}

				// Cap first: a truncated pass must leave stale entries
				// standing until the retry tick can actually replace
				// them, never tear down a resident without a dispatch.
				if s.opts.MaxPendingPerTick > 0 && submitted >= s.opts.MaxPendingPerTick {
					truncated = true
					continue
				}

				if _, ok := s.pending[coord]; ok {
					// Stale in-flight LOD; forget it so the late result
					// gets dropped on arrival.
					delete(s.pending, coord)
				}
				if rc, ok := s.resident[coord]; ok {
					s.renderer.Despawn(rc.handle)
					delete(s.resident, coord)
				}
				s.pending[coord] = lod
				s.dispatch(coord, lod)
				submitted++
			}
		}
	}

	if submitted > 0 {
		logger.Log.Debug("Dispatched chunk generation",
			zap.Int("count", submitted),
			zap.Int("pending", len(s.pending)))
	}
	return truncated
}

func (s *Scheduler) lodForRing(ring int) int {
	if ring <= s.opts.NearRing {
		return 1
	}
	return 2
}

// dispatch snapshots the generator config and hands the chunk to the
// pool. The task builds its own samplers, so a live parameter edit never
// reaches work already in flight.
func (s *Scheduler) dispatch(coord ChunkCoord, lod int) {
	cfg := s.opts.Generator
	cfg.Layers = append([]noise.Layer(nil), cfg.Layers...)
	s.submittedTotal++

	s.pool.Submit(func() {
		gen := terrain.NewGenerator(cfg)
		grid := gen.Generate(coord.X, coord.Y, coord.Z, lod)
		s.results <- result{coord: coord, lod: lod, mesh: meshing.BuildGreedy(grid)}
	})
}

// drain applies every completed result without blocking.
func (s *Scheduler) drain() {
	for {
		select {
		case r := <-s.results:
			s.apply(r)
		default:
			return
		}
	}
}

// apply promotes one completion, or drops it when the coordinate was
// superseded or evicted since dispatch. Stale results are expected, not
// errors.
func (s *Scheduler) apply(r result) {
	want, ok := s.pending[r.coord]
	if !ok || want != r.lod {
		logger.Log.Debug("Dropped stale chunk result",
			zap.Int("x", r.coord.X), zap.Int("y", r.coord.Y), zap.Int("z", r.coord.Z),
			zap.Int("lod", r.lod))
		return
	}
	delete(s.pending, r.coord)

	if old, exists := s.resident[r.coord]; exists {
		s.renderer.Despawn(old.handle)
	}
	handle := s.renderer.Spawn(r.mesh, r.coord.Origin())
	s.resident[r.coord] = residentChunk{lod: r.lod, handle: handle}
}

// Cull updates per-frame visibility of every resident chunk against the
// camera frustum. Purely synchronous; residency is untouched.
func (s *Scheduler) Cull(f *culling.Frustum) {
	size := float32(terrain.ChunkSize)
	for coord, rc := range s.resident {
		min := coord.Origin()
		max := min.Add(mgl32.Vec3{size, size, size})
		s.renderer.SetVisible(rc.handle, f.IntersectsAABB(min, max))
	}
}

// PendingCount is the number of coordinates with in-flight work.
func (s *Scheduler) PendingCount() int {
	return len(s.pending)
}

// ResidentCount is the number of chunks currently in the scene.
func (s *Scheduler) ResidentCount() int {
	return len(s.resident)
}

// Close tears down all scheduler state: the "exit generation mode" hook.
// It waits for the pool to finish, discards every outstanding result and
// despawns all resident chunks.
func (s *Scheduler) Close() {
	if s.closed {
		return
	}
	s.closed = true

	// Keep the results channel flowing while the pool winds down so no
	// worker blocks on its final send.
	done := make(chan struct{})
	go func() {
		s.pool.StopAndWait()
		close(done)
	}()
	for stopped := false; !stopped; {
		select {
		case <-s.results:
		case <-done:
			stopped = true
		}
	}
	for {
		select {
		case <-s.results:
			continue
		default:
		}
		break
	}

	for coord, rc := range s.resident {
		s.renderer.Despawn(rc.handle)
		delete(s.resident, coord)
	}
	for coord := range s.pending {
		delete(s.pending, coord)
	}
	logger.Log.Info("Chunk scheduler closed")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
