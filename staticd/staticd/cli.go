package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/contiv/staticd/config"
	"github.com/contiv/staticd/staticd"

	"github.com/urfave/cli"
)

// version is provided by build
var version = ""

func start(global *config.Global) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return staticd.NewDaemonConfig(global).Daemon(ctx)
}

func globalFromContext(ctx *cli.Context) *config.Global {
	global := config.NewGlobalConfig()
	global.Listen = ctx.String("listen")
	global.Root = ctx.String("root")
	global.DefaultDocument = ctx.String("index")
	global.Debug = ctx.Bool("debug")
	global.BinaryCharset = ctx.BoolT("binary-charset")
	global.SilentErrors = ctx.Bool("silent-errors")
	global.Timeout = ctx.Duration("timeout")
	return global
}

func newApp(run func(*config.Global) error) *cli.App {
	app := cli.NewApp()
	app.Name = "staticd"
	app.Version = version
	app.Usage = "Serve the files of a directory over HTTP"
	app.Action = func(ctx *cli.Context) error {
		return run(globalFromContext(ctx))
	}
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "listen",
			Usage:  "listen address for the file server",
			EnvVar: "LISTEN",
			Value:  config.DefaultListen,
		},
		cli.StringFlag{
			Name:   "root",
			Usage:  "directory to serve files from",
			EnvVar: "ROOT",
			Value:  config.DefaultRoot,
		},
		cli.StringFlag{
			Name:   "index",
			Usage:  "document served for targets ending in a slash",
			EnvVar: "INDEX",
			Value:  config.DefaultDocument,
		},
		cli.BoolFlag{
			Name:   "debug",
			Usage:  "turn on debugging output",
			EnvVar: "DEBUG",
		},
		cli.BoolTFlag{
			Name:   "binary-charset",
			Usage:  "append the utf-8 charset to binary content types as well",
			EnvVar: "BINARY_CHARSET",
		},
		cli.BoolFlag{
			Name:   "silent-errors",
			Usage:  "close the connection without a response instead of sending 404/403/500",
			EnvVar: "SILENT_ERRORS",
		},
		cli.DurationFlag{
			Name:   "timeout",
			Usage:  "read and write timeout per connection; 0 means none",
			EnvVar: "TIMEOUT",
		},
	}

	return app
}

func main() {
	if err := newApp(start).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "\nError: %v\n\n", err)
		os.Exit(1)
	}
}
