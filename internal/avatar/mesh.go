package avatar

// Mesh is the avatar silhouette as a triangle list of (x, y) pairs centred
// on the anchor: torso, head fan, both arms and both legs.
var Mesh = []float32{
	// torso
	-0.07, -0.10, 0.07, -0.10, 0.07, 0.08,
	-0.07, -0.10, 0.07, 0.08, -0.07, 0.08,

	// head
	0.00, 0.18, 0.06, 0.14, 0.04, 0.22,
	0.00, 0.18, 0.04, 0.22, -0.04, 0.22,
	0.00, 0.18, -0.04, 0.22, -0.06, 0.14,
	0.00, 0.18, -0.06, 0.14, -0.04, 0.12,
	0.00, 0.18, -0.04, 0.12, 0.04, 0.12,
	0.00, 0.18, 0.04, 0.12, 0.06, 0.14,

	// left arm
	-0.085, 0.05, -0.15, -0.02, -0.12, -0.06,
	-0.085, 0.05, -0.12, -0.06, -0.085, -0.02,

	// right arm
	0.085, 0.05, 0.15, -0.02, 0.12, -0.06,
	0.085, 0.05, 0.12, -0.06, 0.085, -0.02,

	// legs
	-0.05, -0.10, -0.025, -0.22, -0.01, -0.10,
	0.05, -0.10, 0.025, -0.22, 0.01, -0.10,
}

// MeshVertices is the number of vertices in Mesh.
const MeshVertices = 42
