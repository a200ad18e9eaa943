// Command rill is a minimal manual-test harness: it parses and runs a
// script file, printing its final value or any diagnostic. CLI/packaging
// concerns are explicitly out of scope (spec.md §1), so this stays a
// two-flag wrapper around pkg/rill rather than a full command tree.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/pkg/rill"
)

func main() {
	recoverMode := flag.Bool("recover", false, "parse in recovery mode and print every error")
	timeoutMs := flag.Int("timeout", 30000, "default host-call timeout in milliseconds")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: rill [-recover] [-timeout ms] <script>")
		os.Exit(2)
	}

	path := flag.Arg(0)
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	source := string(src)

	var script *ast.ScriptNode
	if *recoverMode {
		result := rill.ParseWithRecovery(source)
		for _, e := range result.Errors {
			fmt.Fprintln(os.Stderr, e.Format())
		}
		if !result.Success {
			os.Exit(1)
		}
		script = result.Script
	} else {
		s, perr := rill.Parse(source)
		if perr != nil {
			fmt.Fprintln(os.Stderr, perr)
			os.Exit(1)
		}
		script = s
	}

	ctx, err := rill.CreateRuntimeContext(rill.WithTimeoutMs(*timeoutMs), rill.WithFile(path))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	result, rerr := rill.Execute(ctx, script, source)
	if rerr != nil {
		fmt.Fprintln(os.Stderr, rerr.Format())
		os.Exit(1)
	}
	fmt.Println(result.String())
}
