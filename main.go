package main

import (
	"os"

	"github.com/DanielQ-51/cpu-pathtracer/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "cpu-pathtracer"
	app.Usage = "render triangle mesh scenes using path tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "log-file",
			Usage: "write log output to a rotating file instead of stderr",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render scene to a bitmap file",
			Description: `
Load the meshes listed in a yaml scene description, then render the scene
with the multiple importance sampling path integrator and write the result
as a 24-bit bitmap. While the render runs, intermediate snapshots of the
frame are written periodically to the same file.`,
			ArgsUsage: "scene.yaml",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: 512,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 512,
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "spp",
					Value: 16,
					Usage: "samples per pixel",
				},
				cli.IntFlag{
					Name:  "depth",
					Value: 6,
					Usage: "maximum path depth",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: 0,
					Usage: "worker pool size (0 selects ~90% of hardware threads)",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 0,
					Usage: "sampler entropy for reproducible renders (0 seeds from the clock)",
				},
				cli.IntFlag{
					Name:  "snapshot-every",
					Value: 1000000,
					Usage: "pixels between intermediate snapshot writes (0 disables)",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "render.bmp",
					Usage: "image filename for the rendered frame",
				},
			},
			Action: cmd.RenderFrame,
		},
		{
			Name:      "info",
			Usage:     "print statistics for a scene description",
			ArgsUsage: "scene.yaml",
			Action:    cmd.ShowSceneInfo,
		},
	}

	app.Run(os.Args)
}
