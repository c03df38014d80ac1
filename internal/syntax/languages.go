// internal/syntax/languages.go
package syntax

// Rule table construction for the supported languages.
//
// Each language is an ordered list of rules; order matters because the
// tokenizer takes the first rule matching at the scan position. The
// common shape is: comments, strings, numbers, keyword/type/builtin
// word lists, identifier heuristics, operators, punctuation.

const (
	numberPattern      = `(?:\d|\.\d)[0-9A-Za-z_.]*`
	constantPattern    = `[A-Z][A-Z0-9_]+\b`
	funcCallPattern    = `([A-Za-z_][A-Za-z0-9_]*)\(`
	typeNamePattern    = `[A-Z][A-Za-z0-9_]*\b`
	identifierPattern  = `[A-Za-z_][A-Za-z0-9_]*\b`
	operatorPattern    = `[-+*/%=<>!&|^~?:]+`
	punctuationPattern = `[()\[\]{}.,;@#]`
)

// identifierRules are the shared trailing heuristics: ALL_CAPS names
// are constants, a name followed by '(' is a function call,
// capitalized names are types, everything else is a variable.
func identifierRules() []Rule {
	return []Rule{
		NewRule(constantPattern, KindConstant),
		NewRule(funcCallPattern, KindFunction),
		NewRule(typeNamePattern, KindType),
		NewRule(identifierPattern, KindVariable),
	}
}

func tailRules() []Rule {
	return []Rule{
		NewRule(operatorPattern, KindOperator),
		NewRule(punctuationPattern, KindPunctuation),
	}
}

// stringRule matches a delimited string including escapes, or an
// unterminated one running to end of line.
func stringRule(delim string) Rule {
	return NewRule(delim+`(?:\\.|[^\\`+delim+`])*`+delim+`?`, KindString)
}

func concat(groups ...[]Rule) []Rule {
	var out []Rule
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func goLanguage() *Language {
	return &Language{
		Name:       "Go",
		Aliases:    []string{"go", "golang"},
		Extensions: []string{".go"},
		rules: concat(
			[]Rule{
				NewRule(`//.*`, KindComment),
				NewRule(`/\*.*?\*/`, KindComment),
				NewRule(`/\*.*`, KindComment),
				stringRule(`"`),
				NewRule("`[^`]*`?", KindString),
				stringRule(`'`),
				NewRule(numberPattern, KindNumber),
				NewRule(wordAlternation([]string{
					"break", "case", "chan", "const", "continue", "default", "defer", "else",
					"fallthrough", "for", "func", "go", "goto", "if", "import", "interface",
					"map", "package", "range", "return", "select", "struct", "switch", "type",
					"var", "nil", "true", "false", "iota",
				}), KindKeyword),
				NewRule(wordAlternation([]string{
					"bool", "byte", "complex64", "complex128", "error", "float32", "float64",
					"int", "int8", "int16", "int32", "int64", "rune", "string", "uint",
					"uint8", "uint16", "uint32", "uint64", "uintptr",
				}), KindType),
				NewRule(wordAlternation([]string{
					"append", "cap", "close", "complex", "copy", "delete", "imag", "len",
					"make", "new", "panic", "print", "println", "real", "recover",
				}), KindFunction),
			},
			identifierRules(),
			tailRules(),
		),
	}
}

func rustLanguage() *Language {
	return &Language{
		Name:       "Rust",
		Aliases:    []string{"rust", "rs"},
		Extensions: []string{".rs"},
		rules: concat(
			[]Rule{
				NewRule(`//.*`, KindComment),
				NewRule(`/\*.*?\*/`, KindComment),
				NewRule(`/\*.*`, KindComment),
				NewRule(`#!?\[.*?\]`, KindAttribute),
				stringRule(`"`),
				NewRule(numberPattern, KindNumber),
				NewRule(wordAlternation([]string{
					"as", "async", "await", "break", "const", "continue", "crate", "dyn", "else",
					"enum", "extern", "false", "fn", "for", "if", "impl", "in", "let", "loop",
					"match", "mod", "move", "mut", "pub", "ref", "return", "self", "Self", "static",
					"struct", "super", "trait", "true", "type", "unsafe", "use", "where", "while",
				}), KindKeyword),
				NewRule(wordAlternation([]string{
					"bool", "char", "f32", "f64", "i8", "i16", "i32", "i64", "i128", "isize",
					"str", "u8", "u16", "u32", "u64", "u128", "usize", "String", "Vec", "Option",
					"Result", "Box", "Rc", "Arc", "HashMap", "HashSet", "BTreeMap", "BTreeSet",
				}), KindType),
				NewRule(wordAlternation([]string{
					"println!", "print!", "format!", "vec!", "assert!", "assert_eq!", "debug!",
					"panic!", "todo!", "unimplemented!", "cfg!", "include!", "include_str!",
				}), KindFunction),
			},
			identifierRules(),
			tailRules(),
		),
	}
}

func pythonLanguage() *Language {
	return &Language{
		Name:       "Python",
		Aliases:    []string{"python", "py"},
		Extensions: []string{".py", ".pyw"},
		rules: concat(
			[]Rule{
				NewRule(`#.*`, KindComment),
				NewRule(`@[A-Za-z_][A-Za-z0-9_.]*`, KindAttribute),
				stringRule(`"`),
				stringRule(`'`),
				NewRule(numberPattern, KindNumber),
				NewRule(wordAlternation([]string{
					"False", "None", "True", "and", "as", "assert", "async", "await", "break",
					"class", "continue", "def", "del", "elif", "else", "except", "finally",
					"for", "from", "global", "if", "import", "in", "is", "lambda", "nonlocal",
					"not", "or", "pass", "raise", "return", "try", "while", "with", "yield",
				}), KindKeyword),
				NewRule(wordAlternation([]string{
					"int", "float", "str", "bool", "list", "dict", "set", "tuple", "bytes",
					"type", "object", "Exception", "BaseException",
				}), KindType),
				NewRule(wordAlternation([]string{
					"print", "len", "range", "enumerate", "zip", "map", "filter", "sorted",
					"sum", "min", "max", "abs", "round", "open", "input", "isinstance",
					"hasattr", "getattr", "setattr", "super", "property", "classmethod",
					"staticmethod", "iter", "next", "reversed", "slice", "format",
				}), KindFunction),
			},
			identifierRules(),
			tailRules(),
		),
	}
}

func javascriptLanguage() *Language {
	return &Language{
		Name:       "JavaScript",
		Aliases:    []string{"javascript", "js", "typescript", "ts", "jsx", "tsx"},
		Extensions: []string{".js", ".mjs", ".cjs", ".ts", ".jsx", ".tsx"},
		rules: concat(
			[]Rule{
				NewRule(`//.*`, KindComment),
				NewRule(`/\*.*?\*/`, KindComment),
				NewRule(`/\*.*`, KindComment),
				stringRule(`"`),
				stringRule(`'`),
				stringRule("`"),
				NewRule(numberPattern, KindNumber),
				NewRule(wordAlternation([]string{
					"async", "await", "break", "case", "catch", "class", "const", "continue",
					"debugger", "default", "delete", "do", "else", "export", "extends", "false",
					"finally", "for", "function", "if", "import", "in", "instanceof", "let",
					"new", "null", "return", "static", "super", "switch", "this", "throw",
					"true", "try", "typeof", "undefined", "var", "void", "while", "with", "yield",
				}), KindKeyword),
				NewRule(wordAlternation([]string{
					"Array", "Boolean", "Date", "Error", "Function", "Map", "Number", "Object",
					"Promise", "RegExp", "Set", "String", "Symbol", "WeakMap", "WeakSet",
					"any", "boolean", "number", "string", "never", "unknown", "interface",
					"type", "enum", "namespace", "module", "declare", "readonly", "private",
					"protected", "public", "abstract", "implements",
				}), KindType),
				NewRule(wordAlternation([]string{
					"console", "window", "document", "fetch", "setTimeout", "setInterval",
					"clearTimeout", "clearInterval", "JSON", "Math", "parseInt", "parseFloat",
					"isNaN", "isFinite", "encodeURI", "decodeURI", "require", "exports",
				}), KindFunction),
			},
			identifierRules(),
			tailRules(),
		),
	}
}

func jsonLanguage() *Language {
	return &Language{
		Name:       "JSON",
		Aliases:    []string{"json"},
		Extensions: []string{".json"},
		rules: concat(
			[]Rule{
				stringRule(`"`),
				NewRule(numberPattern, KindNumber),
				NewRule(wordAlternation([]string{"true", "false", "null"}), KindKeyword),
			},
			tailRules(),
		),
	}
}

func yamlLanguage() *Language {
	return &Language{
		Name:       "YAML",
		Aliases:    []string{"yaml", "yml"},
		Extensions: []string{".yaml", ".yml"},
		rules: concat(
			[]Rule{
				NewRule(`#.*`, KindComment),
				stringRule(`"`),
				stringRule(`'`),
				NewRule(numberPattern, KindNumber),
				NewRule(wordAlternation([]string{
					"true", "false", "null", "yes", "no", "on", "off",
				}), KindKeyword),
			},
			identifierRules(),
			tailRules(),
		),
	}
}

func tomlLanguage() *Language {
	return &Language{
		Name:       "TOML",
		Aliases:    []string{"toml"},
		Extensions: []string{".toml"},
		rules: concat(
			[]Rule{
				NewRule(`#.*`, KindComment),
				stringRule(`"`),
				stringRule(`'`),
				NewRule(numberPattern, KindNumber),
				NewRule(wordAlternation([]string{"true", "false"}), KindKeyword),
			},
			identifierRules(),
			tailRules(),
		),
	}
}

func bashLanguage() *Language {
	return &Language{
		Name:       "Bash",
		Aliases:    []string{"bash", "sh", "shell", "zsh"},
		Extensions: []string{".sh", ".bash", ".zsh"},
		rules: concat(
			[]Rule{
				NewRule(`#.*`, KindComment),
				stringRule(`"`),
				stringRule(`'`),
				NewRule(`\$\{?[A-Za-z_][A-Za-z0-9_]*\}?`, KindVariable),
				NewRule(numberPattern, KindNumber),
				NewRule(wordAlternation([]string{
					"if", "then", "else", "elif", "fi", "case", "esac", "for", "select",
					"while", "until", "do", "done", "in", "function", "time", "coproc",
					"return", "exit", "break", "continue", "true", "false",
				}), KindKeyword),
				NewRule(wordAlternation([]string{
					"echo", "printf", "read", "cd", "pwd", "export", "source", "alias",
					"unalias", "set", "unset", "shift", "test", "eval", "exec", "trap",
					"wait", "kill", "jobs", "bg", "fg", "disown", "suspend", "logout",
				}), KindFunction),
			},
			identifierRules(),
			tailRules(),
		),
	}
}
