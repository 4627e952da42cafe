package sixtyasm

import "fmt"

// Severity distinguishes a fatal Diagnostic from one that is merely
// informational.
type Severity int

const (
	// SeverityWarning diagnostics are reported but do not stop assembly.
	SeverityWarning Severity = iota
	// SeverityError diagnostics are fatal: Assemble stops once the phase
	// (parsing, Pass 1 sizing or Pass 2 emission) that reported one ends.
	SeverityError
)

// ErrorKind enumerates the error kinds named in spec §7.
type ErrorKind int

const (
	KindLexError ErrorKind = iota
	KindParseError
	KindUnknownMnemonic
	KindInvalidAddressingMode
	KindUndefinedSymbol
	KindRedefinedSymbol
	KindBranchOutOfRange
	KindNegativePad
	KindIncludeCycle
	KindFileNotFound
	KindUserFail
	// KindWarning marks a diagnostic raised by .warning; it carries no
	// specific error kind of its own since it is never fatal.
	KindWarning
)

var kindLabels = map[ErrorKind]string{
	KindLexError:              "LexError",
	KindParseError:            "ParseError",
	KindUnknownMnemonic:       "UnknownMnemonic",
	KindInvalidAddressingMode: "InvalidAddressingMode",
	KindUndefinedSymbol:       "UndefinedSymbol",
	KindRedefinedSymbol:       "RedefinedSymbol",
	KindBranchOutOfRange:      "BranchOutOfRange",
	KindNegativePad:           "NegativePad",
	KindIncludeCycle:          "IncludeCycle",
	KindFileNotFound:          "FileNotFound",
	KindUserFail:              "UserFail",
	KindWarning:               "Warning",
}

func (k ErrorKind) String() string {
	if s, ok := kindLabels[k]; ok {
		return s
	}
	return "Unknown"
}

// Diagnostic is a single warning or error, always carrying the source
// position that produced it.
type Diagnostic struct {
	Kind     ErrorKind
	Pos      Pos
	Msg      string
	Severity Severity
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Pos, d.Kind, d.Msg)
}

// Fatal reports whether this diagnostic should halt compilation.
func (d Diagnostic) Fatal() bool { return d.Severity == SeverityError }

// Sink collects diagnostics in source order and knows when a fatal one
// has occurred. It deduplicates repeated diagnostics at the same
// position with the same message, per spec §2 (deduplicated by
// position).
type Sink struct {
	diags []Diagnostic
	seen  map[string]bool
}

// NewSink returns an empty Sink.
func NewSink() *Sink {
	return &Sink{seen: make(map[string]bool)}
}

func (s *Sink) key(d Diagnostic) string {
	return fmt.Sprintf("%s|%d|%s", d.Pos, d.Kind, d.Msg)
}

// Report adds a diagnostic to the sink unless an identical one at the
// same position was already recorded.
func (s *Sink) Report(d Diagnostic) {
	k := s.key(d)
	if s.seen[k] {
		return
	}
	s.seen[k] = true
	s.diags = append(s.diags, d)
}

// Errorf reports a fatal diagnostic of the given kind at pos.
func (s *Sink) Errorf(kind ErrorKind, pos Pos, format string, args ...interface{}) {
	s.Report(Diagnostic{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...), Severity: SeverityError})
}

// Warnf reports a non-fatal diagnostic at pos.
func (s *Sink) Warnf(pos Pos, format string, args ...interface{}) {
	s.Report(Diagnostic{Kind: KindWarning, Pos: pos, Msg: fmt.Sprintf(format, args...), Severity: SeverityWarning})
}

// HasFatal reports whether any reported diagnostic is fatal.
func (s *Sink) HasFatal() bool {
	for _, d := range s.diags {
		if d.Fatal() {
			return true
		}
	}
	return false
}

// FirstFatal returns the first fatal diagnostic reported, in source
// order, and true if one exists.
func (s *Sink) FirstFatal() (Diagnostic, bool) {
	for _, d := range s.diags {
		if d.Fatal() {
			return d, true
		}
	}
	return Diagnostic{}, false
}

// All returns every diagnostic reported so far, in source order.
func (s *Sink) All() []Diagnostic {
	return s.diags
}
