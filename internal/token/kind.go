package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token (contextual keywords included).
	Ident
	NumberLit
	StringLit

	KwLet      // let
	KwConst    // const
	KwVar      // var
	KwFunction // function
	KwReturn   // return
	KwIf       // if
	KwElse     // else
	KwWhile    // while
	KwImport   // import
	KwExport   // export
	KwTrue     // true
	KwFalse    // false
	KwNull     // null

	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	Comma     // ,
	Semicolon // ;
	Colon     // :
	Dot       // .
	DotDotDot // ...
	Question  // ?
	At        // @
	Arrow     // =>

	Assign   // =
	EqEq     // ==
	EqEqEq   // ===
	BangEq   // !=
	BangEqEq // !==
	Lt       // <
	LtEq     // <=
	Gt       // >
	GtEq     // >=
	Plus     // +
	Minus    // -
	Star     // *
	Slash    // /
	Percent  // %
	Bang     // !
	AndAnd   // &&
	OrOr     // ||
	Pipe     // |
)

var kindNames = [...]string{
	Invalid:    "invalid",
	EOF:        "end of file",
	Ident:      "identifier",
	NumberLit:  "number",
	StringLit:  "string",
	KwLet:      "let",
	KwConst:    "const",
	KwVar:      "var",
	KwFunction: "function",
	KwReturn:   "return",
	KwIf:       "if",
	KwElse:     "else",
	KwWhile:    "while",
	KwImport:   "import",
	KwExport:   "export",
	KwTrue:     "true",
	KwFalse:    "false",
	KwNull:     "null",
	LParen:     "(",
	RParen:     ")",
	LBrace:     "{",
	RBrace:     "}",
	LBracket:   "[",
	RBracket:   "]",
	Comma:      ",",
	Semicolon:  ";",
	Colon:      ":",
	Dot:        ".",
	DotDotDot:  "...",
	Question:   "?",
	At:         "@",
	Arrow:      "=>",
	Assign:     "=",
	EqEq:       "==",
	EqEqEq:     "===",
	BangEq:     "!=",
	BangEqEq:   "!==",
	Lt:         "<",
	LtEq:       "<=",
	Gt:         ">",
	GtEq:       ">=",
	Plus:       "+",
	Minus:      "-",
	Star:       "*",
	Slash:      "/",
	Percent:    "%",
	Bang:       "!",
	AndAnd:     "&&",
	OrOr:       "||",
	Pipe:       "|",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// IsEOF reports whether k marks the end of input.
func (k Kind) IsEOF() bool { return k == EOF }
