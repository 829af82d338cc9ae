package inspect

import (
	"math"
	"sync"

	"github.com/fogleman/pt/pt"
	"github.com/jdginn/go-whitted/raytrace"
)

// Segment is one traced ray, from its origin to where it stopped.
type Segment struct {
	From pt.Vector
	To   pt.Vector
	Kind raytrace.RayKind
	Hit  bool
	// Depth is the bounce count of the hit, or -1 for shadow rays
	Depth int
}

// RecordingScene passes queries through to a scene and remembers every ray
// it was asked about. Rays that escape are recorded with length MissLength.
type RecordingScene struct {
	raytrace.Scene
	MissLength float64

	mu       sync.Mutex
	segments []Segment
}

func NewRecordingScene(scene raytrace.Scene, missLength float64) *RecordingScene {
	return &RecordingScene{Scene: scene, MissLength: missLength}
}

func (s *RecordingScene) end(r raytrace.Ray, dist float64) pt.Vector {
	if math.IsInf(dist, 1) || dist > s.MissLength {
		dist = s.MissLength
	}
	return r.Position(dist)
}

func (s *RecordingScene) record(seg Segment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.segments = append(s.segments, seg)
}

func (s *RecordingScene) NearestHit(r raytrace.Ray, hit *raytrace.HitRecord) bool {
	ok := s.Scene.NearestHit(r, hit)
	dist := r.TMax
	if ok {
		dist = hit.Dist
	}
	s.record(Segment{From: r.Origin, To: s.end(r, dist), Kind: r.Kind, Hit: ok, Depth: hit.TraceDepth})
	return ok
}

func (s *RecordingScene) AnyHit(r raytrace.Ray) bool {
	ok := s.Scene.AnyHit(r)
	s.record(Segment{From: r.Origin, To: s.end(r, r.TMax), Kind: r.Kind, Hit: ok, Depth: -1})
	return ok
}

// Segments returns a copy of everything recorded so far.
func (s *RecordingScene) Segments() []Segment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Segment(nil), s.segments...)
}

func (s *RecordingScene) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.segments = nil
}
