package sixtyasm

import "fmt"

// Kind identifies the lexical class of a Token.
type Kind int

// Token kinds.
const (
	Identifier Kind = iota
	LocalIdentifier
	DecimalNumber
	HexNumber
	BinaryNumber
	StringLit
	Directive
	HashImmediate
	Comma
	Colon
	Equals
	Newline
	OpenParen
	CloseParen
	RegX
	RegY
	EOF
)

var kindNames = map[Kind]string{
	Identifier:      "identifier",
	LocalIdentifier: "local identifier",
	DecimalNumber:   "decimal number",
	HexNumber:       "hex number",
	BinaryNumber:    "binary number",
	StringLit:       "string",
	Directive:       "directive",
	HashImmediate:   "#",
	Comma:           ",",
	Colon:           ":",
	Equals:          "=",
	Newline:         "newline",
	OpenParen:       "(",
	CloseParen:      ")",
	RegX:            "X",
	RegY:            "Y",
	EOF:             "end of file",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Pos is a source position: logical file name, 1-based line and column.
type Pos struct {
	File string
	Line int
	Col  int
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}

// Width tags a Number as fitting in one byte or requiring two.
type Width int

const (
	// Byte values fit 0..=255 and may use zero-page addressing.
	Byte Width = iota
	// Word values come from a 16-bit literal form (3-4 hex digits, 9-16
	// binary digits, or a decimal of 256 or more) and force absolute
	// addressing.
	Word
)

// Number is a numeric literal together with the byte/word width implied
// by its source form (see spec §3: width is derived from literal form,
// not from the numeric value alone for hex/binary literals).
type Number struct {
	Value uint16
	Width Width
}

// Token is a single lexical unit with its source position.
type Token struct {
	Kind   Kind
	Lexeme string
	Num    Number // valid when Kind is one of the *Number kinds
	Pos    Pos
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Lexeme, t.Pos)
}
