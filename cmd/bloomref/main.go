package main

import (
	"fmt"
	"os"

	"bloom-gl/log"

	"github.com/urfave/cli"
)

var logger = log.New("bloomref")

func main() {
	app := cli.NewApp()
	app.Name = "bloomref"
	app.Usage = "run the bloom post process on dumped f32 frames and write a png"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "run",
			Usage: "tone map a scene and bright pass dump",
			Description: `
Reads the scene and bright outputs written by the demo (Ctrl+F11) and runs
blur and composite with either the software or the OpenGL implementation.
Settings are read from the dumped bloom.toml when present and can be
overridden with flags.`,
			ArgsUsage: "dump_dir",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "impl",
					Value: implGl,
					Usage: "implementation, one of opengl or software; opengl falls back to software",
				},
				cli.StringFlag{
					Name:  "config, c",
					Usage: "config file, defaults to bloom.toml in the dump directory",
				},
				cli.Float64Flag{
					Name:  "exposure",
					Usage: "tone mapping exposure, overrides the config",
				},
				cli.IntFlag{
					Name:  "iterations",
					Usage: "number of blur passes, overrides the config",
				},
				cli.BoolFlag{
					Name:  "no-bloom",
					Usage: "tone map the scene without adding the blur",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "bloom.png",
					Usage: "output png filename",
				},
			},
			Action: Run,
		},
		{
			Name:      "compare",
			Usage:     "run both implementations and report the largest difference",
			ArgsUsage: "dump_dir",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "config, c",
					Usage: "config file, defaults to bloom.toml in the dump directory",
				},
			},
			Action: Compare,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}
	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
