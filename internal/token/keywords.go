package token

var keywords = map[string]Kind{
	"let":      KwLet,
	"const":    KwConst,
	"var":      KwVar,
	"function": KwFunction,
	"return":   KwReturn,
	"if":       KwIf,
	"else":     KwElse,
	"while":    KwWhile,
	"import":   KwImport,
	"export":   KwExport,
	"true":     KwTrue,
	"false":    KwFalse,
	"null":     KwNull,
}

// LookupKeyword returns the keyword kind for ident, or Ident.
func LookupKeyword(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return Ident
}
