package sixtyasm

import "fmt"

// CodeGenerator runs Pass 2 of the layout scheme (spec §4.4): given items
// already sized and addressed by a Resolver, it emits the final byte
// image and backpatches branch displacements now that every symbol is
// known.
type CodeGenerator struct {
	resolver *Resolver
	sink     *Sink
	image    []byte
}

// NewCodeGenerator returns a CodeGenerator that writes into a buffer sized
// for bufLen total output bytes.
func NewCodeGenerator(resolver *Resolver, sink *Sink, bufLen int) *CodeGenerator {
	return &CodeGenerator{resolver: resolver, sink: sink, image: make([]byte, bufLen)}
}

// Generate walks items in order, emitting bytes at the offsets recorded by
// the Resolver's Pass 1 layout, and returns the finished image.
func (g *CodeGenerator) Generate(items []Item) []byte {
	layouts := g.resolver.Layouts()
	fill := byte(0)
	for i := range items {
		it := &items[i]
		lay := layouts[i]
		switch it.Kind {
		case ItemInstruction:
			g.emitInstruction(it, lay)
		case ItemDirective:
			fill = g.emitDirective(it, lay, fill)
		}
	}
	return g.image
}

func (g *CodeGenerator) put(offset int, b byte) {
	if offset >= 0 && offset < len(g.image) {
		g.image[offset] = b
	}
}

func (g *CodeGenerator) putWord(offset int, w uint16) {
	g.put(offset, byte(w))
	g.put(offset+1, byte(w>>8))
}

func (g *CodeGenerator) emitInstruction(it *Item, lay itemLayout) {
	opcode, ok := Lookup(it.Mnemonic, it.Operand.Mode)
	if !ok {
		g.sink.Errorf(KindInvalidAddressingMode, it.Pos, "%s does not support %s addressing", it.Mnemonic, it.Operand.Mode)
		return
	}
	g.put(lay.Offset, opcode)

	switch it.Operand.Mode {
	case Implicit, Accumulator:
		return
	case Relative:
		g.emitRelative(it, lay)
		return
	}

	v, ok := g.resolver.Symbols.Resolve(it.Operand.Value, it.Pos, g.sink)
	if !ok {
		return
	}
	switch it.Operand.Mode {
	case Immediate, ZeroPage, ZeroPageX, ZeroPageY, IndirectX, IndirectY:
		g.put(lay.Offset+1, byte(v.Value))
	case Absolute, AbsoluteX, AbsoluteY, Indirect:
		g.putWord(lay.Offset+1, v.Value)
	}
}

func (g *CodeGenerator) emitRelative(it *Item, lay itemLayout) {
	v, ok := g.resolver.Symbols.Resolve(it.Operand.Value, it.Pos, g.sink)
	if !ok {
		return
	}
	pcOfNext := lay.RefPC + 2
	disp := int(v.Value) - int(pcOfNext)
	if disp < -128 || disp > 127 {
		g.sink.Errorf(KindBranchOutOfRange, it.Pos, "branch target $%04X out of range from $%04X (displacement %d)", v.Value, pcOfNext, disp)
		return
	}
	g.put(lay.Offset+1, byte(int8(disp)))
}

func (g *CodeGenerator) emitDirective(it *Item, lay itemLayout, fill byte) byte {
	switch it.DirectiveKind {
	case "byte":
		off := lay.Offset
		for _, a := range it.DirectiveArgs {
			if a.Kind == ArgString {
				for i := 0; i < len(a.Str); i++ {
					g.put(off, a.Str[i])
					off++
				}
				continue
			}
			v, ok := g.resolver.Symbols.Resolve(a.Value, it.Pos, g.sink)
			if !ok {
				continue
			}
			g.put(off, byte(v.Value))
			off++
		}
		return fill

	case "word":
		off := lay.Offset
		for _, a := range it.DirectiveArgs {
			v, ok := g.resolver.Symbols.Resolve(a.Value, it.Pos, g.sink)
			if !ok {
				continue
			}
			g.putWord(off, v.Value)
			off += 2
		}
		return fill

	case "ascii":
		s := it.DirectiveArgs[0].Str
		for i := 0; i < len(s); i++ {
			g.put(lay.Offset+i, s[i])
		}
		return fill

	case "asciiz":
		s := it.DirectiveArgs[0].Str
		off := lay.Offset
		for i := 0; i < len(s); i++ {
			g.put(off, s[i])
			off++
		}
		if uint16(off-lay.Offset) < lay.Length {
			g.put(off, 0)
		}
		return fill

	case "incbin":
		path := it.DirectiveArgs[0].Str
		data, cached := g.resolver.incbinCache[path]
		if !cached {
			b, err := g.resolver.src.Read(path)
			if err != nil {
				g.sink.Errorf(KindFileNotFound, it.Pos, "cannot read %q: %v", path, err)
				return fill
			}
			data = b
		}
		for i := 0; i < len(data); i++ {
			g.put(lay.Offset+i, data[i])
		}
		return fill

	case "pad":
		padFill := fill
		if len(it.DirectiveArgs) >= 2 {
			v, ok := g.resolver.Symbols.Resolve(it.DirectiveArgs[1].Value, it.Pos, g.sink)
			if ok {
				padFill = byte(v.Value)
			}
		}
		for i := 0; i < int(lay.Length); i++ {
			g.put(lay.Offset+i, padFill)
		}
		return fill

	case "fillvalue":
		v, ok := g.resolver.Symbols.Resolve(it.DirectiveArgs[0].Value, it.Pos, g.sink)
		if !ok {
			return fill
		}
		return byte(v.Value)

	case "dsb":
		dsbFill := byte(0)
		if len(it.DirectiveArgs) >= 2 {
			v, ok := g.resolver.Symbols.Resolve(it.DirectiveArgs[1].Value, it.Pos, g.sink)
			if ok {
				dsbFill = byte(v.Value)
			}
		}
		for i := 0; i < int(lay.Length); i++ {
			g.put(lay.Offset+i, dsbFill)
		}
		return fill

	case "dsw":
		var wordFill uint16 = 0
		if len(it.DirectiveArgs) >= 2 {
			v, ok := g.resolver.Symbols.Resolve(it.DirectiveArgs[1].Value, it.Pos, g.sink)
			if ok {
				wordFill = v.Value
			}
		}
		for off := lay.Offset; off < lay.Offset+int(lay.Length); off += 2 {
			g.putWord(off, wordFill)
		}
		return fill

	case "warning", "fail":
		// Already reported during Pass 1 sizing (resolver.go's
		// sizeDirective), in source order relative to every other fatal
		// the Resolver can raise. Nothing left to do here.
		return fill
	}
	return fill
}

func directiveMessage(it *Item) string {
	if len(it.DirectiveArgs) == 1 && it.DirectiveArgs[0].Kind == ArgString {
		return it.DirectiveArgs[0].Str
	}
	return fmt.Sprintf("%s", it.DirectiveKind)
}
