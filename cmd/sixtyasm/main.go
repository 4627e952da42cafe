package main

import (
	"fmt"
	"os"
	"path/filepath"

	cli "github.com/urfave/cli/v2"

	"sixtyasm"
)

func main() {
	app := cli.NewApp()
	app.Name = "sixtyasm"
	app.Usage = "Assemble MOS 6502 source into a byte-exact machine code image"
	app.ArgsUsage = "<input>"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "target",
			Usage: "write the raw binary image to `PATH`",
		},
		&cli.BoolFlag{
			Name:  "binary-dump",
			Usage: "print a hex dump of the output image to stdout",
		},
		&cli.BoolFlag{
			Name:  "token-dump",
			Usage: "print the token stream of the top-level file to stdout",
		},
		&cli.BoolFlag{
			Name:  "silent",
			Usage: "suppress non-error diagnostic output",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		if ec, ok := err.(cli.ExitCoder); ok {
			os.Exit(ec.ExitCode())
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.Args().Len() < 1 {
		return cli.Exit("sixtyasm: missing input file", 1)
	}
	input := c.Args().First()
	silent := c.Bool("silent")

	src := sixtyasm.NewFileSource(filepath.Dir(input))
	entry := filepath.Base(input)

	if c.Bool("token-dump") {
		if err := dumpTokens(os.Stdout, entry, src); err != nil {
			return cli.Exit(err, 1)
		}
	}

	result, err := sixtyasm.Assemble(entry, src)
	printDiagnostics(os.Stderr, result.Diagnostics, silent)
	if err != nil {
		return cli.Exit(err, 1)
	}

	if target := c.String("target"); target != "" {
		if err := os.WriteFile(target, result.Image, 0644); err != nil {
			return cli.Exit(fmt.Sprintf("sixtyasm: could not write %s: %v", target, err), 1)
		}
	}

	if c.Bool("binary-dump") {
		dumpBinary(os.Stdout, result.Image)
	}

	return nil
}

func printDiagnostics(w *os.File, diags []sixtyasm.Diagnostic, silent bool) {
	for _, d := range diags {
		if silent && !d.Fatal() {
			continue
		}
		fmt.Fprintln(w, d.String())
	}
}
