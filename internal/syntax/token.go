// internal/syntax/token.go
package syntax

// Kind classifies a token for styling purposes.
type Kind int

const (
	// KindText is the fallback for spans no rule matched.
	KindText Kind = iota
	KindKeyword
	KindString
	KindNumber
	KindComment
	KindFunction
	KindType
	KindOperator
	KindPunctuation
	KindVariable
	KindAttribute
	KindConstant
)

// StyleName returns the theme style name for this kind.
// These match the keys used by the theme package.
func (k Kind) StyleName() string {
	switch k {
	case KindKeyword:
		return "keyword"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindComment:
		return "comment"
	case KindFunction:
		return "function"
	case KindType:
		return "type"
	case KindOperator:
		return "operator"
	case KindPunctuation:
		return "punctuation"
	case KindVariable:
		return "variable"
	case KindAttribute:
		return "attribute"
	case KindConstant:
		return "constant"
	default:
		return "text"
	}
}

// Token is a styled span within a single line.
// Start and End are byte offsets into the line; End is exclusive.
type Token struct {
	Start int
	End   int
	Kind  Kind
}
