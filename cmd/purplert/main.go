// Command purplert embeds the runtime library for standalone use: it
// builds a Runtime, invokes a __container__, and reports the §6 exit code.
// There is no source-language parser or code generator here (SPEC_FULL.md
// §1 keeps those out of scope); the "programs" this CLI runs are the
// hand-built demos in demos.go standing in for what a translation unit's
// generated Go would call into.
//
// Grounded on the teacher's main.go for the overall "one binary, several
// run modes" shape (compile/interpret/REPL flags there become
// run/list/fanout subcommands here); cobra replaces the teacher's raw
// `flag` package because every retrieved example repo with a CLI surface
// reaches for it instead.
package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/purplert/jsruntime/internal/rtlog"
	"github.com/purplert/jsruntime/pkg/runtime"
	"github.com/purplert/jsruntime/pkg/value"
)

var verbose bool

func main() {
	root := &cobra.Command{
		Use:   "purplert",
		Short: "Embeds the js-runtime library and drives its demo programs",
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug-level logging")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		rtlog.Configure(os.Stderr, level)
	}

	root.AddCommand(listCmd(), runCmd(), fanoutCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available demo programs",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range demoNames() {
				fmt.Printf("%s\t%s\n", name, demos[name].description)
			}
			return nil
		},
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <demo>",
		Short: "Run one demo program through the §6 embedding contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, ok := demos[args[0]]
			if !ok {
				return fmt.Errorf("unknown demo %q (see 'purplert list')", args[0])
			}
			rt := runtime.Init(os.Args, os.Stdout, os.Stderr)
			defer rt.Shutdown()
			code := runtime.RunContainer(rt, func() (*value.Value, error) {
				return d.run(rt)
			})
			os.Exit(code)
			return nil
		},
	}
}

// schedulerMu serializes Runtime instances against each other: pkg/promise
// wires reactions onto one process-wide loop pointer (§5 "the microtask
// queue and timer heap are owned by the scheduler singleton"), so two
// Runtime.Init/RunContainer cycles cannot actually settle promises at the
// same time without one clobbering the other's loop. fanoutCmd still starts
// each demo on its own errgroup goroutine, but every goroutine holds this
// mutex from Runtime.Init through Shutdown, so the demos run one at a time.
var schedulerMu sync.Mutex

// fanoutCmd runs every demo, each in its own Runtime instance, collecting
// exit codes via errgroup the way a host running many independent
// translation units would — serialized one-at-a-time by schedulerMu since
// pkg/promise's scheduler wiring is a process singleton, not a per-Runtime
// one.
func fanoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fanout",
		Short: "Run every demo, one Runtime instance per demo",
		RunE: func(cmd *cobra.Command, args []string) error {
			var g errgroup.Group
			names := demoNames()
			codes := make([]int, len(names))
			for i, name := range names {
				i, name := i, name
				g.Go(func() error {
					d := demos[name]
					schedulerMu.Lock()
					defer schedulerMu.Unlock()
					rt := runtime.Init([]string{"purplert", "fanout", name}, os.Stdout, os.Stderr)
					defer rt.Shutdown()
					codes[i] = runtime.RunContainer(rt, func() (*value.Value, error) {
						return d.run(rt)
					})
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			for i, name := range names {
				fmt.Printf("%s: exit %d\n", name, codes[i])
			}
			return nil
		},
	}
}
