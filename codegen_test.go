package sixtyasm

import (
	"bytes"
	"testing"
)

func genSrc(t *testing.T, src string) ([]byte, *Sink) {
	t.Helper()
	sink := NewSink()
	toks := NewLexer("test.s", []byte(src), sink).Lex()
	items := NewParser(toks, sink, nil).Parse()
	r := NewResolver(mapSource{}, sink)
	state := r.Resolve(items)
	gen := NewCodeGenerator(r, sink, state.OutputOffset)
	image := gen.Generate(items)
	return image, sink
}

func TestCodeGen_Dsb(t *testing.T) {
	got, sink := genSrc(t, ".dsb 4\n")
	if sink.HasFatal() {
		t.Fatalf("unexpected error: %v", sink.All())
	}
	want := []byte{0, 0, 0, 0}
	if !bytes.Equal(got, want) {
		t.Errorf("got % 02X, want % 02X", got, want)
	}
}

func TestCodeGen_DsbDsw_DefaultFillIgnoresFillvalue(t *testing.T) {
	// .pad uses the current fillvalue register, but spec §4.4 is explicit
	// that .dsb/.dsw default to $00 regardless of fillvalue — unlike .pad.
	got, sink := genSrc(t, ".fillvalue $FF\n.dsb 4\n.dsw 2\n")
	if sink.HasFatal() {
		t.Fatalf("unexpected error: %v", sink.All())
	}
	want := []byte{0, 0, 0, 0, 0, 0, 0, 0}
	if !bytes.Equal(got, want) {
		t.Errorf("got % 02X, want % 02X", got, want)
	}
}

func TestCodeGen_DsbWithFill(t *testing.T) {
	got, sink := genSrc(t, ".dsb 3,$AA\n")
	if sink.HasFatal() {
		t.Fatalf("unexpected error: %v", sink.All())
	}
	want := []byte{0xAA, 0xAA, 0xAA}
	if !bytes.Equal(got, want) {
		t.Errorf("got % 02X, want % 02X", got, want)
	}
}

func TestCodeGen_DswWithFill(t *testing.T) {
	got, sink := genSrc(t, ".dsw 2,$1234\n")
	if sink.HasFatal() {
		t.Fatalf("unexpected error: %v", sink.All())
	}
	want := []byte{0x34, 0x12, 0x34, 0x12}
	if !bytes.Equal(got, want) {
		t.Errorf("got % 02X, want % 02X", got, want)
	}
}

func TestCodeGen_InvalidAddressingMode(t *testing.T) {
	// STX has no Immediate encoding.
	sink := NewSink()
	items := []Item{{Kind: ItemInstruction, Mnemonic: "STX", Operand: Operand{Mode: Immediate, Value: OperandValue{Lit: Number{Value: 1, Width: Byte}}}}}
	r := NewResolver(mapSource{}, sink)
	state := r.Resolve(items)
	gen := NewCodeGenerator(r, sink, state.OutputOffset+2)
	gen.Generate(items)
	if !sink.HasFatal() {
		t.Fatalf("expected InvalidAddressingMode error")
	}
}

func TestCodeGen_RelativeBackpatchBackward(t *testing.T) {
	got, sink := genSrc(t, "loop:\nNOP\nBNE loop\n")
	if sink.HasFatal() {
		t.Fatalf("unexpected error: %v", sink.All())
	}
	// NOP at 0, BNE at 1..2; pc_of_next = 3; target = 0; disp = -3 = 0xFD.
	want := []byte{0xEA, 0xD0, 0xFD}
	if !bytes.Equal(got, want) {
		t.Errorf("got % 02X, want % 02X", got, want)
	}
}
