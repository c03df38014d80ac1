// internal/artifact/contenttype.go
package artifact

import "strings"

// ContentType classifies what an artifact holds, driving how it is
// rendered and which language is assumed when none is given.
type ContentType int

const (
	TypeText ContentType = iota
	TypeCode
	TypeMarkdown
	TypeDiff
	TypeJSON
	TypeYAML
	TypeTOML
	TypeXML
	TypeBinary
)

// ContentTypeFromString parses a content type name or MIME type.
// Unknown values degrade to plain text.
func ContentTypeFromString(s string) ContentType {
	switch strings.ToLower(s) {
	case "text", "plain", "text/plain":
		return TypeText
	case "code", "source":
		return TypeCode
	case "markdown", "md", "text/markdown":
		return TypeMarkdown
	case "diff", "patch":
		return TypeDiff
	case "json", "application/json":
		return TypeJSON
	case "yaml", "yml", "application/yaml":
		return TypeYAML
	case "toml", "application/toml":
		return TypeTOML
	case "xml", "html", "text/xml", "text/html":
		return TypeXML
	case "binary", "application/octet-stream":
		return TypeBinary
	}
	return TypeText
}

// Label returns the display name shown in the status bar.
func (t ContentType) Label() string {
	switch t {
	case TypeCode:
		return "Code"
	case TypeMarkdown:
		return "Markdown"
	case TypeDiff:
		return "Diff"
	case TypeJSON:
		return "JSON"
	case TypeYAML:
		return "YAML"
	case TypeTOML:
		return "TOML"
	case TypeXML:
		return "XML"
	case TypeBinary:
		return "Binary"
	}
	return "Text"
}

// LanguageTag returns an implied language tag for data content types,
// so JSON artifacts highlight as JSON without an explicit hint.
func (t ContentType) LanguageTag() string {
	switch t {
	case TypeJSON:
		return "json"
	case TypeYAML:
		return "yaml"
	case TypeTOML:
		return "toml"
	}
	return ""
}
