package renderer

type Options struct {
	// Frame dims.
	FrameW int
	FrameH int

	// Number of samples per pixel.
	SamplesPerPixel int

	// Maximum path depth.
	MaxDepth int

	// Worker pool size. Zero selects ~90% of the available hardware
	// threads, with a minimum of one.
	NumWorkers int

	// Entropy term mixed into every per-pixel sampler seed. Zero derives a
	// seed from the clock; set it for reproducible renders.
	Seed int64

	// Number of completed pixels between intermediate snapshot writes.
	// Zero disables snapshots.
	SnapshotInterval int

	// Output image filename, also used for intermediate snapshots.
	OutFile string
}
