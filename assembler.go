package sixtyasm

import "github.com/pkg/errors"

// Result is the outcome of a full Assemble run: the finished byte image
// (nil if compilation failed) and every diagnostic collected along the
// way, fatal or not.
type Result struct {
	Image       []byte
	Diagnostics []Diagnostic
}

// Assemble drives the whole pipeline — Source → Lexer → Parser →
// Resolver → CodeGenerator — for the top-level file named entry, read
// through src. It returns a non-nil error, wrapping the first fatal
// diagnostic, exactly when compilation failed; Result.Diagnostics is
// always populated regardless of outcome so callers can print warnings
// even on success.
func Assemble(entry string, src SourceProvider) (Result, error) {
	sink := NewSink()
	items := parseUnit(entry, src, sink, nil)

	if first, ok := sink.FirstFatal(); ok {
		return Result{Diagnostics: sink.All()}, errors.Wrap(wrapDiagnostic(first), "assemble")
	}

	resolver := NewResolver(src, sink)
	state := resolver.Resolve(items)
	if first, ok := sink.FirstFatal(); ok {
		return Result{Diagnostics: sink.All()}, errors.Wrap(wrapDiagnostic(first), "assemble")
	}

	gen := NewCodeGenerator(resolver, sink, state.OutputOffset)
	image := gen.Generate(items)
	if first, ok := sink.FirstFatal(); ok {
		return Result{Diagnostics: sink.All()}, errors.Wrap(wrapDiagnostic(first), "assemble")
	}

	return Result{Image: image, Diagnostics: sink.All()}, nil
}

// parseUnit reads and lexes the named file and parses it into items,
// recursively expanding .include directives. active tracks the file
// names currently being parsed, to detect include cycles (spec §4.5).
func parseUnit(name string, src SourceProvider, sink *Sink, active []string) []Item {
	for _, a := range active {
		if a == name {
			sink.Errorf(KindIncludeCycle, Pos{File: name}, "include cycle: %q is already being parsed", name)
			return nil
		}
	}

	data, err := src.Read(name)
	if err != nil {
		sink.Errorf(KindFileNotFound, Pos{File: name}, "cannot read %q: %v", name, err)
		return nil
	}

	lx := NewLexer(name, data, sink)
	toks := lx.Lex()

	nextActive := append(append([]string{}, active...), name)
	includeFn := func(path string, pos Pos) []Item {
		return parseUnit(path, src, sink, nextActive)
	}

	p := NewParser(toks, sink, includeFn)
	return p.Parse()
}

// wrapDiagnostic turns a fatal Diagnostic into a Go error carrying its
// position and message, via github.com/pkg/errors so callers can still
// unwrap or annotate further up the stack.
func wrapDiagnostic(d Diagnostic) error {
	return errors.Errorf("%s", d.String())
}
