package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
)

// errDenied makes `rbacctl check` exit non-zero on denial so it can gate scripts.
var errDenied = errors.New("denied")

type command struct {
	summary string
	run     func(ctx context.Context, args []string, out io.Writer) error
}

var commands = map[string]command{
	"validate": {"compile a policy and optional catalog, report problems", runValidate},
	"check":    {"answer one permission question", runCheck},
	"nav":      {"list the navigation a role sees", runNav},
	"scopes":   {"print a role's grants as scope strings", runScopes},
	"export":   {"convert a policy to JSON or YAML", runExport},
	"publish":  {"store a policy in Redis or Postgres", runPublish},
}

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "help" {
		usage(stderr)
		return 2
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "rbacctl: unknown command %q\n\n", args[0])
		usage(stderr)
		return 2
	}
	if err := cmd.run(ctx, args[1:], stdout); err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			return 0
		case errors.Is(err, errDenied):
			return 1
		}
		fmt.Fprintf(stderr, "rbacctl %s: %v\n", args[0], err)
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: rbacctl <command> [flags]")
	fmt.Fprintln(w)
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-9s %s\n", name, commands[name].summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, `-policy and -catalog accept a .json/.yaml file or "preset" (healthcare).`)
}
