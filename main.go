package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/coreos/pkg/capnslog"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/pontaoski/envyc/artifact"
	"github.com/pontaoski/envyc/codegen"
	"github.com/pontaoski/envyc/diagnostics"
	"github.com/pontaoski/envyc/driver"
	envyerrors "github.com/pontaoski/envyc/errors"
	"github.com/pontaoski/envyc/interner"
	"github.com/pontaoski/envyc/lexer"
	"github.com/pontaoski/envyc/project"
	"github.com/pontaoski/envyc/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/envyc", "main")

func setup(c *cli.Context) error {
	level, err := capnslog.ParseLevel(strings.ToUpper(c.String("log-level")))
	if err != nil {
		return err
	}
	capnslog.SetFormatter(capnslog.NewPrettyFormatter(os.Stderr, false))
	capnslog.SetGlobalLogLevel(level)

	switch c.String("color") {
	case "auto":
		color.NoColor = !term.IsTerminal(int(os.Stderr.Fd()))
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		return fmt.Errorf("--color must be auto, always or never, not %q", c.String("color"))
	}
	return nil
}

func newReporter(c *cli.Context) *diagnostics.Reporter {
	r := diagnostics.NewReporter(os.Stderr)
	r.SetTrace(c.Bool("trace"))
	return r
}

// compileFile runs the front end over path and reports every diagnostic.
// The returned count is the number of errors reported.
func compileFile(reporter *diagnostics.Reporter, path string) (*driver.Result, int, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}
	reporter.AddSource(path, src)

	result := driver.Compile(path, src)
	return result, reporter.ReportAll(result.Errors()), nil
}

func failed(n int) error {
	if n == 1 {
		return cli.Exit("1 error", 1)
	}
	return cli.Exit(fmt.Sprintf("%d errors", n), 1)
}

// sources returns the files named on the command line, or the project's
// sources when there are none.
func sources(c *cli.Context) ([]string, error) {
	if c.Args().Present() {
		return c.Args().Slice(), nil
	}
	m, err := project.Load(".")
	if err != nil {
		return nil, err
	}
	return m.Files(".")
}

func singleFile(c *cli.Context) (string, error) {
	file := c.Args().First()
	if file == "" {
		return "", cli.Exit("no file provided", 1)
	}
	return file, nil
}

func outputFile(c *cli.Context, input string) string {
	if out := c.String("output"); out != "" {
		return out
	}
	if m, err := project.Load("."); err == nil && m.Output != "" {
		return m.Output
	}
	return strings.TrimSuffix(input, ".envy") + ".ll"
}

func main() {
	app := &cli.App{
		Name:  "envyc",
		Usage: "envy compiler front end",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Value: "WARNING",
				Usage: "one of CRITICAL, ERROR, WARNING, NOTICE, INFO, DEBUG, TRACE",
			},
			&cli.StringFlag{
				Name:  "color",
				Value: "auto",
				Usage: "colour diagnostics: auto, always or never",
			},
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "print the stack trace behind parse errors",
			},
		},
		Before: setup,
		ExitErrHandler: func(context *cli.Context, err error) {
			if err == nil {
				return
			}
			fmt.Fprintf(os.Stderr, "envyc: %s\n", err)
			if coder, ok := err.(cli.ExitCoder); ok {
				os.Exit(coder.ExitCode())
			}
			os.Exit(1)
		},
		Commands: []*cli.Command{
			{
				Name:      "init",
				Usage:     "init a directory",
				ArgsUsage: "<package>",
				Action: func(c *cli.Context) error {
					name := c.Args().First()
					if name == "" {
						return cli.Exit("no package name provided", 1)
					}
					return project.Init(".", name)
				},
			},
			{
				Name:      "check",
				Usage:     "type check files, or the project's sources",
				ArgsUsage: "[files...]",
				Action: func(c *cli.Context) error {
					files, err := sources(c)
					if err != nil {
						return err
					}
					reporter := newReporter(c)

					total := 0
					for _, file := range files {
						_, n, err := compileFile(reporter, file)
						if err != nil {
							return err
						}
						total += n
					}
					if total > 0 {
						return failed(total)
					}
					return nil
				},
			},
			{
				Name:      "tokens",
				Usage:     "print the token stream of a file",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "whitespace",
						Usage: "include whitespace tokens",
					},
				},
				Action: func(c *cli.Context) error {
					file, err := singleFile(c)
					if err != nil {
						return err
					}
					src, err := os.ReadFile(file)
					if err != nil {
						return err
					}

					names := interner.New[string]()
					tokens, errs := lexer.NewLexer(src, file, names).Tokens()
					if !c.Bool("whitespace") {
						tokens = driver.FilterWhitespace(tokens)
					}
					for _, tok := range tokens {
						fmt.Printf("%s\t%s\t%s\n", tok.Location, tok.Kind, tokenText(tok, names))
					}

					reporter := newReporter(c)
					reporter.AddSource(file, src)
					if n := reporter.ReportAll(errs); n > 0 {
						return failed(n)
					}
					return nil
				},
			},
			{
				Name:      "dump",
				Usage:     "print the checked tree of a file",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Value: "repr",
						Usage: "repr or msgpack",
					},
					&cli.BoolFlag{
						Name:  "untyped",
						Usage: "print the tree before type checking",
					},
				},
				Action: func(c *cli.Context) error {
					file, err := singleFile(c)
					if err != nil {
						return err
					}
					format := c.String("format")
					if format != "repr" && format != "msgpack" {
						return fmt.Errorf("unknown format %q", format)
					}
					if format == "msgpack" && c.Bool("untyped") {
						return fmt.Errorf("only the checked tree can be written as msgpack")
					}

					result, n, err := compileFile(newReporter(c), file)
					if err != nil {
						return err
					}

					switch {
					case c.Bool("untyped"):
						repr.Println(result.Program)
					case format == "msgpack":
						if err := artifact.Write(os.Stdout, file, result.Partial, result.Names); err != nil {
							return err
						}
					default:
						repr.Println(result.Partial)
					}
					if n > 0 {
						return failed(n)
					}
					return nil
				},
			},
			{
				Name:      "emit",
				Usage:     "write LLVM IR for a file",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "output",
						Usage: "output path, - for stdout",
					},
				},
				Action: func(c *cli.Context) error {
					file, err := singleFile(c)
					if err != nil {
						return err
					}
					reporter := newReporter(c)
					result, n, err := compileFile(reporter, file)
					if err != nil {
						return err
					}
					if n > 0 {
						return failed(n)
					}

					module, err := codegen.Emit(*result.Typed, result.Names)
					if _, ok := err.(envyerrors.Located); ok {
						reporter.Report(err)
						return failed(1)
					} else if err != nil {
						return err
					}

					out := outputFile(c, file)
					if out == "-" {
						fmt.Print(module.String())
						return nil
					}
					plog.Infof("writing %s", out)
					return os.WriteFile(out, []byte(module.String()), 0o644)
				},
			},
			{
				Name:      "typeinfo",
				Usage:     "dump typeinfo from an emitted module",
				ArgsUsage: "<file.ll>",
				Action: func(c *cli.Context) error {
					file, err := singleFile(c)
					if err != nil {
						return err
					}
					data, err := codegen.ReadTypeInfo(file)
					if err != nil {
						return err
					}
					repr.Println(data)
					return nil
				},
			},
			{
				Name:  "repl",
				Usage: "check expressions and definitions interactively",
				Action: func(c *cli.Context) error {
					return runRepl(newReporter(c))
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

func tokenText(tok types.Token, names *interner.Interner[string]) string {
	if tok.Kind == types.Whitespace {
		return fmt.Sprintf("%q", tok.Text(names))
	}
	return tok.Text(names)
}
