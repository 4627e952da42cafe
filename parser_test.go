package sixtyasm

import "testing"

func parseSrc(t *testing.T, src string) ([]Item, *Sink) {
	t.Helper()
	sink := NewSink()
	toks := NewLexer("test.s", []byte(src), sink).Lex()
	p := NewParser(toks, sink, nil)
	items := p.Parse()
	return items, sink
}

func TestParser_LabelsAndConst(t *testing.T) {
	items, sink := parseSrc(t, "FOO = 10\nstart:\n@loop:\nNOP")
	if sink.HasFatal() {
		t.Fatalf("unexpected error: %v", sink.All())
	}
	if len(items) != 4 {
		t.Fatalf("got %d items, want 4: %+v", len(items), items)
	}
	if items[0].Kind != ItemConstDef || items[0].ConstName != "FOO" {
		t.Errorf("item 0 = %+v", items[0])
	}
	if items[1].Kind != ItemLabelDef || items[1].LabelScope != Global || items[1].LabelName != "start" {
		t.Errorf("item 1 = %+v", items[1])
	}
	if items[2].Kind != ItemLabelDef || items[2].LabelScope != Local || items[2].LabelParent != "start" {
		t.Errorf("item 2 = %+v", items[2])
	}
}

func TestParser_DanglingLocalLabel(t *testing.T) {
	_, sink := parseSrc(t, "@loop:\nNOP")
	if !sink.HasFatal() {
		t.Fatalf("expected fatal error for dangling local label")
	}
}

func TestParser_UnknownMnemonic(t *testing.T) {
	_, sink := parseSrc(t, "FROB #1")
	if !sink.HasFatal() {
		t.Fatalf("expected fatal error for unknown mnemonic")
	}
}

func TestParser_OperandModes(t *testing.T) {
	cases := []struct {
		src  string
		mode AddressingMode
	}{
		{"RTS", Implicit},
		{"ASL A", Accumulator},
		{"LDA #$10", Immediate},
		{"LDA ($20,X)", IndirectX},
		{"LDA ($20),Y", IndirectY},
		{"JMP ($1234)", Indirect},
		{"BNE foo", Relative},
		{"LDA $10", ZeroPage},
		{"LDA $1234", Absolute},
		{"LDA $10,X", ZeroPageX},
		{"LDA $1234,X", AbsoluteX},
		{"LDX $10,Y", ZeroPageY},
		{"LDA $1234,Y", AbsoluteY},
	}
	for _, c := range cases {
		items, sink := parseSrc(t, c.src)
		if sink.HasFatal() {
			t.Fatalf("%q: unexpected error: %v", c.src, sink.All())
		}
		if len(items) != 1 || items[0].Kind != ItemInstruction {
			t.Fatalf("%q: items = %+v", c.src, items)
		}
		if items[0].Operand.Mode != c.mode {
			t.Errorf("%q: mode = %v, want %v", c.src, items[0].Operand.Mode, c.mode)
		}
	}
}

func TestParser_UnresolvedSymbolOperand(t *testing.T) {
	items, sink := parseSrc(t, "LDA foo")
	if sink.HasFatal() {
		t.Fatalf("unexpected error: %v", sink.All())
	}
	op := items[0].Operand
	if !op.Unresolved || op.Index != NoIndex || op.Value.Symbol != "foo" {
		t.Errorf("operand = %+v", op)
	}
}

func TestParser_DirectiveArgs(t *testing.T) {
	items, sink := parseSrc(t, `.byte $11,$22,"Hello"`)
	if sink.HasFatal() {
		t.Fatalf("unexpected error: %v", sink.All())
	}
	if items[0].Kind != ItemDirective || items[0].DirectiveKind != "byte" {
		t.Fatalf("item = %+v", items[0])
	}
	args := items[0].DirectiveArgs
	if len(args) != 3 {
		t.Fatalf("got %d args, want 3", len(args))
	}
	if args[2].Kind != ArgString || args[2].Str != "Hello" {
		t.Errorf("arg 2 = %+v", args[2])
	}
}

func TestParser_Include(t *testing.T) {
	sink := NewSink()
	toks := NewLexer("main.s", []byte(`.include "inc.s"`+"\n"), sink).Lex()
	includeFn := func(path string, pos Pos) []Item {
		if path != "inc.s" {
			t.Fatalf("unexpected include path %q", path)
		}
		return []Item{{Kind: ItemLabelDef, LabelName: "fromInclude", LabelScope: Global}}
	}
	p := NewParser(toks, sink, includeFn)
	items := p.Parse()
	if sink.HasFatal() {
		t.Fatalf("unexpected error: %v", sink.All())
	}
	if len(items) != 1 || items[0].LabelName != "fromInclude" {
		t.Fatalf("items = %+v", items)
	}
}
