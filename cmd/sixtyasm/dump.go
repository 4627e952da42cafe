package main

import (
	"fmt"
	"io"
	"text/template"

	"sixtyasm"
)

// dumpHeader mirrors the teacher's text/template disassembly banner,
// adapted to describe an assembled image instead of a decoded one.
const dumpHeader = `; {{.File}}: {{.Length}} bytes
`

func dumpBinary(w io.Writer, image []byte) {
	tmpl, _ := template.New("dump").Parse(dumpHeader)
	_ = tmpl.Execute(w, struct {
		File   string
		Length int
	}{"output", len(image)})

	const perLine = 16
	for off := 0; off < len(image); off += perLine {
		end := off + perLine
		if end > len(image) {
			end = len(image)
		}
		fmt.Fprintf(w, "%04X  ", off)
		for i := off; i < end; i++ {
			fmt.Fprintf(w, "%02X ", image[i])
		}
		fmt.Fprintln(w)
	}
}

// dumpTokens lexes the top-level file (without parsing it) and prints
// every token in source order, one per line.
func dumpTokens(w io.Writer, entry string, src sixtyasm.SourceProvider) error {
	data, err := src.Read(entry)
	if err != nil {
		return fmt.Errorf("sixtyasm: could not read %s: %w", entry, err)
	}
	sink := sixtyasm.NewSink()
	toks := sixtyasm.NewLexer(entry, data, sink).Lex()
	for _, t := range toks {
		fmt.Fprintln(w, t.String())
	}
	for _, d := range sink.All() {
		fmt.Fprintln(w, d.String())
	}
	return nil
}
