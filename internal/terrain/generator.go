package terrain

import (
	"github.com/MarvinIG/projectrube/internal/noise"
)

// Seed offsets for the derived noise fields, so one world seed fans out
// into independent samplers.
const (
	caveSeedOffset           = 300
	ridgeSeedOffset          = 400
	boulderDensitySeedOffset = 500
	boulderScatterSeedOffset = 501
	boulderShapeSeedOffset   = 502
	treeDensitySeedOffset    = 600
	treeScatterSeedOffset    = 601
)

// SnowLine is the surface height above which grass gives way to snow.
const SnowLine = 72

// GeneratorConfig is the full parameter set for chunk synthesis. It is a
// plain value so the scheduler can snapshot it per background task.
type GeneratorConfig struct {
	Seed       int64
	Layers     []noise.Layer
	BaseHeight float64

	RidgeFrequency float64
	RidgeWeight    float64

	// CarveThreshold is tuned to the amplitude our perlin source actually
	// produces; values near 1.0 would disable caves entirely.
	CaveFrequency  float64
	CarveThreshold float64

	Decorations bool
}

// DefaultGeneratorConfig mirrors the built-in terrain settings.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:           0,
		Layers:         noise.DefaultLayers(),
		BaseHeight:     40,
		RidgeFrequency: 0.007,
		RidgeWeight:    12,
		CaveFrequency:  0.08,
		CarveThreshold: 0.45,
		Decorations:    true,
	}
}

// Generator synthesizes padded voxel grids for (coordinate, LOD) pairs.
// It owns its samplers outright; build one inside each background task
// from a snapshotted config instead of sharing a live instance.
type Generator struct {
	cfg    GeneratorConfig
	height *noise.HeightField
	cave   *noise.Sampler

	boulderDensity *noise.Sampler
	boulderScatter *noise.Sampler
	boulderShape   *noise.Sampler
	treeDensity    *noise.Sampler
	treeScatter    *noise.Sampler
}

func NewGenerator(cfg GeneratorConfig) *Generator {
	return &Generator{
		cfg: cfg,
		height: noise.NewHeightField(cfg.BaseHeight, cfg.Layers,
			cfg.Seed+ridgeSeedOffset, cfg.RidgeFrequency, cfg.RidgeWeight),
		cave:           noise.NewSampler(cfg.Seed+caveSeedOffset, cfg.CaveFrequency),
		boulderDensity: noise.NewSampler(cfg.Seed+boulderDensitySeedOffset, 0.004),
		boulderScatter: noise.NewSampler(cfg.Seed+boulderScatterSeedOffset, 0.9),
		boulderShape:   noise.NewSampler(cfg.Seed+boulderShapeSeedOffset, 0.25),
		treeDensity:    noise.NewSampler(cfg.Seed+treeDensitySeedOffset, 0.003),
		treeScatter:    noise.NewSampler(cfg.Seed+treeScatterSeedOffset, 0.95),
	}
}

// Generate builds the padded grid for a chunk coordinate at the given
// LOD. At LOD > 1 each logical voxel stands for lod³ world blocks,
// sampled at LOD-scaled world coordinates; that is an approximation of
// the LOD-1 terrain, not a downsample, so seams at LOD boundaries are
// expected. Deterministic for identical (coord, lod, config).
func (g *Generator) Generate(cx, cy, cz, lod int) *Grid {
	grid := NewGrid(lod)
	dim := grid.Dim

	heights := make([]int, dim*dim)
	// Tallest solid world Y per column, decorations included, used for
	// decoration collision checks.
	occupancy := make([]int, dim*dim)

	for ix := 0; ix < dim; ix++ {
		for iz := 0; iz < dim; iz++ {
			wx := float64(cx*ChunkSize + (ix-Skirt)*lod)
			wz := float64(cz*ChunkSize + (iz-Skirt)*lod)
			h := g.height.At(wx, wz, MaxHeight)
			col := ix*dim + iz
			heights[col] = h
			occupancy[col] = h

			for iy := 0; iy < dim; iy++ {
				wy := cy*ChunkSize + (iy-Skirt)*lod
				if wy < 0 {
					// Below the world floor; keep solid so no underside
					// faces are ever emitted.
					grid.Set(ix, iy, iz, Stone)
					continue
				}
				if wy > h || wy >= MaxHeight {
					continue
				}
				// The world floor at Y=0 stays solid unconditionally so
				// caves never open onto the unmeshed underside.
				if wy > 0 && g.cave.Sample3D(wx, float64(wy), wz) > g.cfg.CarveThreshold {
					// Cave carve. A pass that re-filled Stone right above
					// carved cells produced floating shelves; it stays
					// disabled.
					const caveCeilings = false
					if caveCeilings {
						if wy+lod > h {
							grid.Set(ix, iy, iz, Stone)
						}
					}
					continue
				}
				switch {
				case h-wy < lod:
					if h >= SnowLine {
						grid.Set(ix, iy, iz, Snow)
					} else {
						grid.Set(ix, iy, iz, Grass)
					}
				case h-wy < 2*lod:
					grid.Set(ix, iy, iz, Dirt)
				default:
					grid.Set(ix, iy, iz, Stone)
				}
			}
		}
	}

	// Decorations only exist at full resolution; distant chunks render
	// bare terrain.
	if lod == 1 && g.cfg.Decorations {
		g.placeBoulders(grid, cx, cy, cz, heights, occupancy)
		g.placeTrees(grid, cx, cy, cz, heights, occupancy)
	}

	return grid
}

// stamp writes one world voxel into the grid if it falls inside the
// padded volume, tracking column occupancy. Voxels spilling into a
// neighboring chunk are dropped: decorations are clipped at chunk
// boundaries, not merged across them.
func stamp(grid *Grid, cx, cy, cz, wx, wy, wz int, b BlockType, occupancy []int) {
	lx := wx - cx*ChunkSize + Skirt
	ly := wy - cy*ChunkSize + Skirt
	lz := wz - cz*ChunkSize + Skirt
	if lx < 0 || ly < 0 || lz < 0 || lx >= grid.Dim || ly >= grid.Dim || lz >= grid.Dim {
		return
	}
	grid.Set(lx, ly, lz, b)
	if b.Solid() {
		col := lx*grid.Dim + lz
		if wy > occupancy[col] {
			occupancy[col] = wy
		}
	}
}

func (g *Generator) placeBoulders(grid *Grid, cx, cy, cz int, heights, occupancy []int) {
	dim := grid.Dim
	for ix := 0; ix < dim; ix++ {
		for iz := 0; iz < dim; iz++ {
			wx := cx*ChunkSize + (ix - Skirt)
			wz := cz*ChunkSize + (iz - Skirt)
			density := (g.boulderDensity.Sample2D(float64(wx), float64(wz)) + 1) / 2
			scatter := (g.boulderScatter.Sample2D(float64(wx), float64(wz)) + 1) / 2
			// Density-gated sparse placement: the finer the scatter value
			// under the density curve, the rarer the boulder.
			if scatter >= density*0.012 {
				continue
			}

			h := heights[ix*dim+iz]
			radius := 2 + int(density*2)
			centerY := h + 1
			for dx := -radius - 1; dx <= radius+1; dx++ {
				for dy := -radius - 1; dy <= radius+1; dy++ {
					for dz := -radius - 1; dz <= radius+1; dz++ {
						tx, ty, tz := wx+dx, centerY+dy, wz+dz
						if ty < 0 || ty >= MaxHeight {
							continue
						}
						// Sphere-ish: the shape field perturbs the radius
						// so boulders read as rocks, not geometry.
						shape := g.boulderShape.Sample3D(float64(tx), float64(ty), float64(tz))
						rr := float64(radius) + shape*1.2
						if float64(dx*dx+dy*dy+dz*dz) <= rr*rr {
							stamp(grid, cx, cy, cz, tx, ty, tz, Stone, occupancy)
						}
					}
				}
			}
		}
	}
}

func (g *Generator) placeTrees(grid *Grid, cx, cy, cz int, heights, occupancy []int) {
	dim := grid.Dim
	for ix := 0; ix < dim; ix++ {
		for iz := 0; iz < dim; iz++ {
			wx := cx*ChunkSize + (ix - Skirt)
			wz := cz*ChunkSize + (iz - Skirt)
			density := (g.treeDensity.Sample2D(float64(wx), float64(wz)) + 1) / 2
			scatter := (g.treeScatter.Sample2D(float64(wx), float64(wz)) + 1) / 2
			if scatter >= density*0.02 {
				continue
			}

			col := ix*dim + iz
			h := heights[col]
			// Columns already built up by a boulder or an earlier tree
			// footprint stay clear.
			if occupancy[col] > h {
				continue
			}
			if h >= SnowLine || h <= 2 {
				continue
			}

			trunk := 4 + int(density*3)
			if h+trunk+3 >= MaxHeight {
				continue
			}
			for dy := 1; dy <= trunk; dy++ {
				stamp(grid, cx, cy, cz, wx, h+dy, wz, Wood, occupancy)
			}

			canopy := 2 + int(density*1.5)
			topY := h + trunk
			for dx := -canopy; dx <= canopy; dx++ {
				for dy := -canopy; dy <= canopy; dy++ {
					for dz := -canopy; dz <= canopy; dz++ {
						if dx*dx+dy*dy+dz*dz > canopy*canopy+1 {
							continue
						}
						tx, ty, tz := wx+dx, topY+dy, wz+dz
						lx := tx - cx*ChunkSize + Skirt
						ly := ty - cy*ChunkSize + Skirt
						lz := tz - cz*ChunkSize + Skirt
						// Leaves never replace trunk or terrain.
						if grid.At(lx, ly, lz) != Empty {
							continue
						}
						stamp(grid, cx, cy, cz, tx, ty, tz, Leaf, occupancy)
					}
				}
			}
		}
	}
}
