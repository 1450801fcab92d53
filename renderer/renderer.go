package renderer

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/DanielQ-51/cpu-pathtracer/img"
	"github.com/DanielQ-51/cpu-pathtracer/log"
	scenePkg "github.com/DanielQ-51/cpu-pathtracer/scene"
	"github.com/DanielQ-51/cpu-pathtracer/tracer"
	"github.com/DanielQ-51/cpu-pathtracer/types"
)

var logger = log.New("renderer")

// The pinhole camera sits on the +Z axis looking through a 1x1 viewport
// centered on the origin in the z = 0 plane.
var cameraOrigin = types.XYZ(0, 0, 1)

// Workers pull pixel ranges of this size off the shared cursor. Small
// chunks keep the pool balanced around expensive regions (caustics, light
// sources) where path cost spikes.
const pixelChunkSize = 64

// Completed-pixel interval between progress reports.
const progressInterval = 100000

// Renderer drives the pixel-parallel render loop: primary ray generation,
// per-pixel sample accumulation, progress reporting and periodic snapshot
// writes of the in-flight frame.
type Renderer struct {
	scene      *scenePkg.Scene
	opts       Options
	integrator *tracer.Integrator
	buf        *img.Buffer

	progress   atomic.Int64
	snapshotMu sync.Mutex
	snapshots  atomic.Int64

	stats FrameStats
}

// Create a renderer for a scene.
func New(sc *scenePkg.Scene, opts Options) (*Renderer, error) {
	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	if opts.FrameW <= 0 || opts.FrameH <= 0 {
		return nil, ErrInvalidFrameDims
	}
	if opts.SamplesPerPixel <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = defaultWorkerCount()
	}

	return &Renderer{
		scene:      sc,
		opts:       opts,
		integrator: tracer.NewIntegrator(opts.MaxDepth),
		buf:        img.NewBuffer(opts.FrameW, opts.FrameH),
	}, nil
}

// Size the worker pool at ~90% of the hardware threads, keeping at least
// one.
func defaultWorkerCount() int {
	workers := int(float64(runtime.NumCPU()) * 0.9)
	if workers < 1 {
		workers = 1
	}
	return workers
}

// Render the frame and return the pixel buffer. Workers claim chunks off a
// flat pixel index space until it is exhausted.
func (r *Renderer) Render() (*img.Buffer, error) {
	start := time.Now()

	entropy := r.opts.Seed
	if entropy == 0 {
		entropy = time.Now().UnixNano()
	}

	totalPixels := int64(r.opts.FrameW * r.opts.FrameH)
	var cursor atomic.Int64

	var wg sync.WaitGroup
	for w := 0; w < r.opts.NumWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				chunkStart := cursor.Add(pixelChunkSize) - pixelChunkSize
				if chunkStart >= totalPixels {
					return
				}
				chunkEnd := chunkStart + pixelChunkSize
				if chunkEnd > totalPixels {
					chunkEnd = totalPixels
				}

				for idx := chunkStart; idx < chunkEnd; idx++ {
					r.renderPixel(int(idx), entropy)
					r.completePixel(totalPixels)
				}
			}
		}()
	}
	wg.Wait()

	r.stats = FrameStats{
		Workers:         r.opts.NumWorkers,
		Pixels:          int(totalPixels),
		SamplesPerPixel: r.opts.SamplesPerPixel,
		Snapshots:       int(r.snapshots.Load()),
		RenderTime:      time.Since(start),
	}

	return r.buf, nil
}

// Trace all samples for one pixel of the flat index space and store the
// average. Every pixel owns an independent sampler so the result does not
// depend on worker scheduling.
func (r *Renderer) renderPixel(index int, entropy int64) {
	i := index % r.opts.FrameW
	j := index / r.opts.FrameW

	sampler := tracer.NewSampler(entropy + int64(j*r.opts.FrameW+i))

	frameW := float64(r.opts.FrameW)
	frameH := float64(r.opts.FrameH)

	var radiance types.Vec3
	for s := 0; s < r.opts.SamplesPerPixel; s++ {
		du, dv := sampler.Get2D()
		viewportPoint := types.XYZ(
			(float64(i)+du-0.5-frameW/2)*(1.0/frameW),
			(float64(j)+dv-0.5-frameH/2)*(1.0/frameH),
			0,
		)
		ray := types.NewRay(cameraOrigin, viewportPoint.Sub(cameraOrigin))

		radiance = radiance.Add(r.integrator.Li(r.scene, ray, sampler))
	}

	r.buf.Set(i, j, radiance.Div(float64(r.opts.SamplesPerPixel)))
}

// Bump the progress counter and fire the periodic progress report and
// snapshot write when the count crosses their intervals.
func (r *Renderer) completePixel(totalPixels int64) {
	done := r.progress.Add(1)

	if done%progressInterval == 0 || done == totalPixels {
		logger.Noticef("progress: %.2f%%", float64(done)/float64(totalPixels)*100.0)
	}

	if r.opts.SnapshotInterval > 0 && done%int64(r.opts.SnapshotInterval) == 0 && done != totalPixels {
		r.writeSnapshot()
	}
}

// Write an intermediate snapshot of the frame buffer. Only one writer runs
// at a time; a worker that loses the race skips its write, the winner's
// snapshot is recent enough. Pixels still being accumulated may appear torn
// in the output, which is acceptable for a progress artifact.
func (r *Renderer) writeSnapshot() {
	if !r.snapshotMu.TryLock() {
		return
	}
	defer r.snapshotMu.Unlock()

	if err := img.WriteBMP(r.buf, r.opts.OutFile); err != nil {
		logger.Errorf("snapshot write failed: %s", err)
		return
	}
	r.snapshots.Add(1)
	logger.Infof("wrote snapshot to %s", r.opts.OutFile)
}

// Get render statistics for the last frame.
func (r *Renderer) Stats() FrameStats {
	return r.stats
}
