// Command procgen renders Voronoi noise textures and procedural meshes.
//
//	procgen noise -config noise.yaml -out noise.bmp
//	procgen mesh -shape uv-sphere -resolution 16 -layout separated -out sphere.obj
//	procgen all -out dir
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/xlab/closer"

	"procgen/internal/config"
	"procgen/internal/jobs"
	"procgen/internal/profiling"
)

var errUsage = errors.New("usage: procgen noise|mesh|all [flags]")

type command struct {
	flags func(*cli)
	run   func(pool *jobs.WorkerPool, cfg config.Config, out string) error
}

var commands = map[string]command{
	"noise": {flags: (*cli).noiseFlags, run: runNoise},
	"mesh":  {flags: (*cli).meshFlags, run: runMesh},
	"all": {flags: func(c *cli) {
		c.noiseFlags()
		c.meshFlags()
	}, run: runAll},
}

func main() {
	closer.Bind(removePartial)
	closer.Bind(func() { jobs.Default().Shutdown() })
	defer closer.Close()

	if err := run(os.Args[1:], os.Stderr); err != nil {
		closer.Fatalln(err)
	}
}

func run(args []string, stderr io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("unknown command %q; %w", args[0], errUsage)
	}
	c := newCLI(args[0], stderr)
	cmd.flags(c)
	cfg, err := c.parse(args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	log := newLogger(cfg.LogLevel, stderr)
	slog.SetDefault(log)
	jobs.SetLogger(log)
	config.SetWorkerCount(cfg.Workers)
	pool := jobs.Default()

	profiling.Reset()
	defer func() {
		log.Debug("stage timings", "top", profiling.TopN(8))
	}()
	return cmd.run(pool, cfg, c.out)
}

func newLogger(level string, w io.Writer) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}

// in-flight output files, removed if the process is interrupted
var (
	partialMu sync.Mutex
	partial   = make(map[string]struct{})
)

func trackPartial(path string) (done func()) {
	partialMu.Lock()
	partial[path] = struct{}{}
	partialMu.Unlock()
	return func() {
		partialMu.Lock()
		delete(partial, path)
		partialMu.Unlock()
	}
}

func removePartial() {
	partialMu.Lock()
	defer partialMu.Unlock()
	for path := range partial {
		os.Remove(path)
	}
}
