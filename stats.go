package gg3d

import "log/slog"

// Stats counts the work done in one frame. BeginFrame resets it.
type Stats struct {
	// Entities is the number of draw calls that reached the pipeline.
	Entities int
	// EntitiesCulled were rejected whole by the view frustum.
	EntitiesCulled int

	Triangles int
	// TrianglesClipped lay entirely behind the near plane.
	TrianglesClipped int
	// TrianglesCulled were rejected by face culling.
	TrianglesCulled int
	// TrianglesDegenerate had (near) zero area or non-finite coordinates.
	TrianglesDegenerate int

	// Fragments passed the depth test and were written.
	Fragments int
	// FragmentsDiscarded were dropped by the alpha or geometry shader.
	FragmentsDiscarded int
	// TransparentFragments were accumulated for the transparency resolve.
	TransparentFragments int
	// Lit is the number of pixels shaded by the deferred lighting pass.
	Lit int
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Entities += o.Entities
	s.EntitiesCulled += o.EntitiesCulled
	s.Triangles += o.Triangles
	s.TrianglesClipped += o.TrianglesClipped
	s.TrianglesCulled += o.TrianglesCulled
	s.TrianglesDegenerate += o.TrianglesDegenerate
	s.Fragments += o.Fragments
	s.FragmentsDiscarded += o.FragmentsDiscarded
	s.TransparentFragments += o.TransparentFragments
	s.Lit += o.Lit
}

// LogValue implements slog.LogValuer.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("entities", s.Entities),
		slog.Int("entities_culled", s.EntitiesCulled),
		slog.Int("triangles", s.Triangles),
		slog.Int("clipped", s.TrianglesClipped),
		slog.Int("culled", s.TrianglesCulled),
		slog.Int("degenerate", s.TrianglesDegenerate),
		slog.Int("fragments", s.Fragments),
		slog.Int("discarded", s.FragmentsDiscarded),
		slog.Int("transparent", s.TransparentFragments),
		slog.Int("lit", s.Lit),
	)
}
