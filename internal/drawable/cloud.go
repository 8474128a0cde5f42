package drawable

import (
	"fmt"

	"github.com/philipparndt/space3d/internal/scene"
	"github.com/philipparndt/space3d/pkg/geometry"
	"github.com/philipparndt/space3d/pkg/stats"
	"gonum.org/v1/gonum/mat"
)

// PointCloud draws one point per row of an N×3 coordinate table
type PointCloud struct {
	scene Scene
	opts  options
	x     *mat.Dense
	nodes []*scene.Node
}

// NewPointCloud draws the rows of x. A nil x draws samples from a
// multivariate normal, see WithSampling.
func NewPointCloud(s Scene, x mat.Matrix, opts ...Option) (*PointCloud, error) {
	pc := &PointCloud{scene: s, opts: buildOptions(DefaultPointColor, opts)}
	if x == nil {
		mean, cov := pc.opts.mean, pc.opts.cov
		if mean == nil {
			mean = stats.DefaultMean
		}
		if cov == nil {
			cov = stats.DefaultCovariance
		}
		sampled, err := stats.MultivariateNormal(mean, cov, pc.opts.samples, pc.opts.src)
		if err != nil {
			return nil, fmt.Errorf("sample point cloud: %w", err)
		}
		x = sampled
	}
	if err := pc.Redraw(x); err != nil {
		return nil, err
	}
	return pc, nil
}

// Pos returns a copy of the coordinate table of the last draw, or nil
// when nothing is drawn.
func (pc *PointCloud) Pos() *mat.Dense {
	if pc.x == nil {
		return nil
	}
	return mat.DenseCopyOf(pc.x)
}

// Len returns the number of drawn points
func (pc *PointCloud) Len() int {
	return len(pc.nodes)
}

// Nodes returns the owned scene nodes in row order
func (pc *PointCloud) Nodes() []*scene.Node {
	out := make([]*scene.Node, len(pc.nodes))
	copy(out, pc.nodes)
	return out
}

// Redraw replaces every owned node with one per row of x. The row count
// may differ from the previous draw. An x that is not N×3 is rejected
// and leaves the cloud untouched; a load failure leaves it empty.
func (pc *PointCloud) Redraw(x mat.Matrix) error {
	if x == nil {
		return ErrEmpty
	}
	r, c := x.Dims()
	if c != 3 {
		return fmt.Errorf("coordinate table is %dx%d, want Nx3: %w", r, c, ErrShape)
	}

	pc.Delete()
	nodes := make([]*scene.Node, 0, r)
	for i := 0; i < r; i++ {
		pos := geometry.NewVector3(x.At(i, 0), x.At(i, 1), x.At(i, 2))
		n, err := spawnPoint(pc.scene, pc.opts, pos)
		if err != nil {
			release(nodes)
			return fmt.Errorf("draw point %d: %w", i, err)
		}
		nodes = append(nodes, n)
	}
	pc.nodes = nodes
	pc.x = mat.DenseCopyOf(x)
	return nil
}

// Delete releases all owned nodes. Calling it again is a no-op.
func (pc *PointCloud) Delete() {
	release(pc.nodes)
	pc.nodes = nil
	pc.x = nil
}
