package scene

import (
	"github.com/MarvinIG/projectrube/internal/meshing"

	"github.com/go-gl/mathgl/mgl32"
)

// Handle identifies one renderable entity owned by the renderer.
type Handle uint64

// Renderer is the narrow sink the streaming core hands meshes to. The
// real implementation lives in the surrounding engine; it owns display,
// lighting and material binding. All calls arrive from the control-loop
// goroutine only.
type Renderer interface {
	// Spawn places a mesh at a world-space position and returns its handle.
	Spawn(mesh *meshing.Mesh, position mgl32.Vec3) Handle
	// Despawn removes the entity. Unknown handles are ignored.
	Despawn(h Handle)
	// SetVisible toggles per-frame visibility without touching residency.
	SetVisible(h Handle, visible bool)
}

// Entity is one spawned mesh as the Registry tracks it.
type Entity struct {
	Mesh     *meshing.Mesh
	Position mgl32.Vec3
	Visible  bool
}

// Registry is an in-memory Renderer. The engine swaps in its real
// renderer in production; tests and the headless demo use this one.
type Registry struct {
	next     Handle
	entities map[Handle]*Entity

	Spawned   int
	Despawned int
}

func NewRegistry() *Registry {
	return &Registry{
		next:     1,
		entities: make(map[Handle]*Entity),
	}
}

func (r *Registry) Spawn(mesh *meshing.Mesh, position mgl32.Vec3) Handle {
	h := r.next
	r.next++
	r.entities[h] = &Entity{Mesh: mesh, Position: position, Visible: true}
	r.Spawned++
	return h
}

func (r *Registry) Despawn(h Handle) {
	if _, ok := r.entities[h]; !ok {
		return
	}
	delete(r.entities, h)
	r.Despawned++
}

func (r *Registry) SetVisible(h Handle, visible bool) {
	if e, ok := r.entities[h]; ok {
		e.Visible = visible
	}
}

// Len is the number of live entities.
func (r *Registry) Len() int {
	return len(r.entities)
}

// Get returns the entity behind a handle, or nil.
func (r *Registry) Get(h Handle) *Entity {
	return r.entities[h]
}

// Each visits every live entity.
func (r *Registry) Each(fn func(Handle, *Entity)) {
	for h, e := range r.entities {
		fn(h, e)
	}
}
