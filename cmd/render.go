package cmd

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/DanielQ-51/cpu-pathtracer/img"
	"github.com/DanielQ-51/cpu-pathtracer/renderer"
	"github.com/DanielQ-51/cpu-pathtracer/scene/reader"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	opts := renderer.Options{
		FrameW:           ctx.Int("width"),
		FrameH:           ctx.Int("height"),
		SamplesPerPixel:  ctx.Int("spp"),
		MaxDepth:         ctx.Int("depth"),
		NumWorkers:       ctx.Int("workers"),
		Seed:             ctx.Int64("seed"),
		SnapshotInterval: ctx.Int("snapshot-every"),
		OutFile:          ctx.String("out"),
	}

	// Load scene
	if ctx.NArg() != 1 {
		return errors.New("missing scene description argument")
	}

	sc, err := reader.ReadScene(ctx.Args().First())
	if err != nil {
		return err
	}
	logger.Noticef("loaded %d triangles (%d emissive) from %d meshes", len(sc.Triangles), len(sc.Emissive), len(sc.Meshes))

	// Create renderer
	r, err := renderer.New(sc, opts)
	if err != nil {
		return err
	}

	logger.Noticef("rendering %dx%d frame at %d spp", opts.FrameW, opts.FrameH, opts.SamplesPerPixel)
	buf, err := r.Render()
	if err != nil {
		return err
	}

	// A failed final image write is the render's only terminal failure.
	if err = img.WriteBMP(buf, opts.OutFile); err != nil {
		return err
	}
	logger.Noticef("wrote frame to %s", opts.OutFile)

	// Display stats
	displayFrameStats(r.Stats())

	return nil
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Workers", "Pixels", "Samples/pixel", "Snapshots", "Render time"})
	table.Append([]string{
		fmt.Sprintf("%d", stats.Workers),
		fmt.Sprintf("%d", stats.Pixels),
		fmt.Sprintf("%d", stats.SamplesPerPixel),
		fmt.Sprintf("%d", stats.Snapshots),
		fmt.Sprintf("%s", stats.RenderTime),
	})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
