package system

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/instanced/ecs"
	"github.com/milk9111/instanced/ecs/component"
	"github.com/milk9111/instanced/instance"
)

const defaultPhysicsIterations = 10

type PhysicsSystem struct {
	space    *cp.Space
	dt       float64
	damping  float64
	debug    bool
	entities map[ecs.Entity]*bodyInfo
}

type bodyInfo struct {
	body   *cp.Body
	shapes []*cp.Shape
	static bool
}

// NewPhysicsSystem creates a zero-gravity space stepped by dt each update.
// damping is the fraction of velocity kept per second.
func NewPhysicsSystem(dt, damping float64) *PhysicsSystem {
	if dt <= 0 {
		dt = 1.0 / 60.0
	}
	if damping <= 0 || damping > 1 {
		damping = 1
	}
	ps := &PhysicsSystem{
		dt:       dt,
		damping:  damping,
		entities: make(map[ecs.Entity]*bodyInfo),
	}
	ps.space = ps.newSpace()
	return ps
}

func (ps *PhysicsSystem) newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = defaultPhysicsIterations
	space.SetGravity(cp.Vector{})
	space.SetDamping(ps.damping)
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) SetDebug(debug bool) {
	ps.debug = debug
}

// Reset drops every body and starts over with an empty space.
func (ps *PhysicsSystem) Reset() {
	ps.space = ps.newSpace()
	ps.entities = make(map[ecs.Entity]*bodyInfo)
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.space = ps.newSpace()
	}

	ps.cleanupEntities(w)
	ps.syncEntities(w)

	ps.space.Step(ps.dt)

	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	entities := w.Query(
		component.PhysicsBodyComponent.Kind(),
		component.TransformComponent.Kind(),
		component.VisualComponent.Kind(),
	)
	for _, e := range entities {
		if _, ok := ps.entities[e]; ok {
			continue
		}
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent)
		transform, _ := ecs.Get(w, e, component.TransformComponent)
		visual, _ := ecs.Get(w, e, component.VisualComponent)

		info := ps.createBodyInfo(*transform, bodyComp, visual.Parts)
		if info == nil {
			continue
		}
		ps.entities[e] = info
		bodyComp.Body = info.body
		bodyComp.Shapes = info.shapes

		if ps.debug {
			log.Printf("physics: created body for %v with %d shapes, mass %.3f", e, len(info.shapes), info.body.Mass())
		}
	}
}

func (ps *PhysicsSystem) createBodyInfo(transform component.Transform, bodyComp *component.PhysicsBody, parts []instance.Component) *bodyInfo {
	polys := make([][]cp.Vector, 0, len(parts))
	for _, part := range parts {
		if verts := partPolygon(part); len(verts) >= 3 {
			polys = append(polys, verts)
		}
	}
	if len(polys) == 0 {
		return nil
	}

	info := &bodyInfo{static: bodyComp.Static}

	// Dynamic bodies take mass, moment and centre of gravity from their
	// shapes' densities, so they turn about the mass centroid.
	var body *cp.Body
	if bodyComp.Static {
		body = cp.NewStaticBody()
	} else {
		body = cp.NewBody(0, 0)
	}
	body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
	body.SetAngle(transform.Rotation)
	ps.space.AddBody(body)

	density := bodyComp.Density
	if density <= 0 {
		density = 1
	}
	for _, verts := range polys {
		shape := cp.NewPolyShape(body, len(verts), verts, cp.NewTransformIdentity(), 0)
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(bodyComp.Elasticity)
		ps.space.AddShape(shape)
		if !bodyComp.Static {
			shape.SetDensity(density)
		}
		info.shapes = append(info.shapes, shape)
	}
	if !bodyComp.Static {
		body.SetVelocity(bodyComp.VelocityX, bodyComp.VelocityY)
		body.SetAngularVelocity(bodyComp.AngularVelocity)
	}

	info.body = body
	return info
}

// partPolygon returns a part's vertex positions in body space, wound
// counter-clockwise.
func partPolygon(part instance.Component) []cp.Vector {
	if part.Model == nil {
		return nil
	}
	n := part.Model.VertexCount()
	verts := make([]cp.Vector, 0, n)
	for i := 0; i < n; i++ {
		x, y := part.Model.Position(i)
		p := instance.Compose(part.Transform, instance.Transform{X: x, Y: y})
		verts = append(verts, cp.Vector{X: p.X, Y: p.Y})
	}
	if signedArea(verts) < 0 {
		for i, j := 0, len(verts)-1; i < j; i, j = i+1, j-1 {
			verts[i], verts[j] = verts[j], verts[i]
		}
	}
	return verts
}

func signedArea(verts []cp.Vector) float64 {
	a := 0.0
	for i := range verts {
		p, q := verts[i], verts[(i+1)%len(verts)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.entities {
		if info.static {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}
		pos := info.body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
		transform.Rotation = info.body.Angle()
	}
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		keep := w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent)
		if keep {
			continue
		}
		for _, shape := range info.shapes {
			ps.space.RemoveShape(shape)
		}
		ps.space.RemoveBody(info.body)
		delete(ps.entities, e)
		w.Events().Push(ecs.Event{Type: ecs.EventBodyRemoved, Data: e})
		if ps.debug {
			log.Printf("physics: removed body for %v", e)
		}
	}
}
