// Command golox is a tree-walking interpreter for the Lox programming language.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"strings"

	"github.com/chzyer/readline"

	"github.com/dhawkins-dev/golox/ast"
	"github.com/dhawkins-dev/golox/interpreter"
	"github.com/dhawkins-dev/golox/parser"
	"github.com/dhawkins-dev/golox/resolver"
)

const (
	exitSuccess    = 0
	exitStaticErr  = 65
	exitRuntimeErr = 70
)

var (
	cmd      = flag.String("c", "", "Program passed in as a string")
	printAST = flag.Bool("p", false, "Print the parsed AST instead of running the program")
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: golox [options] [script]\n\nOptions:\n")
	flag.PrintDefaults()
}

func main() {
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	if *cmd != "" {
		os.Exit(run(*cmd, interpreter.New()))
	}

	switch len(flag.Args()) {
	case 0:
		os.Exit(runREPL())
	case 1:
		os.Exit(runFile(flag.Arg(0)))
	default:
		usage()
		os.Exit(2)
	}
}

// run parses, resolves and interprets source against interp, returning the process exit code that the caller should
// propagate.
func run(source string, interp *interpreter.Interpreter) int {
	program, err := parser.Parse(source)
	if *printAST {
		if program != nil {
			ast.Print(program)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitStaticErr
		}
		return exitSuccess
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitStaticErr
	}

	locals, err := resolver.Resolve(program)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitStaticErr
	}

	if err := interp.Interpret(locals, program); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitRuntimeErr
	}
	return exitSuccess
}

func runFile(name string) int {
	src, err := os.ReadFile(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitRuntimeErr
	}
	return run(string(src), interpreter.New())
}

func runREPL() int {
	cfg := &readline.Config{Prompt: "> "}
	if homeDir, err := os.UserHomeDir(); err == nil {
		cfg.HistoryFile = path.Join(homeDir, ".lox_history")
	} else {
		fmt.Fprintf(os.Stderr, "can't determine home directory (%s); command history won't be saved\n", err)
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "starting REPL: %s\n", err)
		return exitRuntimeErr
	}
	defer rl.Close()

	fmt.Fprintln(os.Stderr, "Welcome to golox!")

	interp := interpreter.New(interpreter.WithREPLEcho())
	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return exitSuccess
			}
			fmt.Fprintf(os.Stderr, "unexpected error reading input: %s\n", err)
			return exitRuntimeErr
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		run(line, interp)
	}
}
