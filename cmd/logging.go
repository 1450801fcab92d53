package cmd

import (
	"github.com/DanielQ-51/cpu-pathtracer/log"
	"github.com/urfave/cli"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logger = log.New("pathtracer")

func setupLogging(ctx *cli.Context) {
	if logFile := ctx.GlobalString("log-file"); logFile != "" {
		log.SetSink(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    50, // megabytes
			MaxBackups: 3,
		})
	}

	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
