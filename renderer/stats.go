package renderer

import "time"

type FrameStats struct {
	// Worker pool size used for the frame.
	Workers int

	// Total pixels rendered and samples taken per pixel.
	Pixels          int
	SamplesPerPixel int

	// Number of intermediate snapshots written.
	Snapshots int

	// Total render time for the entire frame.
	RenderTime time.Duration
}
