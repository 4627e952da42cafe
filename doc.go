// Package sixtyasm assembles MOS 6502 source text into a byte-exact
// machine code image.
//
// The pipeline is linear: a SourceProvider resolves logical file names to
// bytes, the Lexer turns those bytes into a Token stream, the Parser turns
// tokens into an ordered list of AST Items, the Resolver walks the items
// once (Pass 1) to build a SymbolTable and assign every item a load address
// and size, and the CodeGenerator walks them a second time to emit the final
// byte image,
// backfilling branch and absolute operands now that every symbol is known.
//
// Assemble ties all of the above together:
//
//	result, err := sixtyasm.Assemble("main.s", sixtyasm.NewFileSource("."))
//
// Directives:
//
//	.org <word>                      set reference PC
//	.byte <byte-or-string>, ...       emit bytes
//	.word <word>, ...                emit little-endian words
//	.ascii "text"                    emit raw bytes
//	.asciiz "text"                   emit raw bytes plus a terminating 0
//	.incbin "path"                   splice file bytes verbatim
//	.warning "text"                  emit a warning diagnostic
//	.fail "text"                     abort compilation with message
//	.include "path"                  parse-time inline another source
//	.pad <word> [, byte]             zero/fill up to address
//	.fillvalue <byte>                set default filler
//	.dsb <size> [, byte]             emit size filler bytes
//	.dsw <size> [, word]             emit size filler words
//
// Labels, local labels (prefixed with @, scoped to the preceding global
// label) and named constants (IDENT = literal) round out the surface
// syntax. See the package's _test.go files for end-to-end examples.
package sixtyasm
