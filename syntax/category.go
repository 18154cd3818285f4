package syntax

// Category classifies a span of source text for display. CategoryText is
// the neutral category: spans that would carry it are omitted from query
// results, and error nodes resolve to it rather than failing the query.
type Category uint8

const (
	CategoryText Category = iota
	CategoryKeyword
	CategoryString
	CategoryNumber
	CategoryConstant
	CategoryComment
	CategoryFunction
	CategoryMacro
	CategoryType
	CategoryProperty
	CategoryVariable
	CategoryOperator
	CategoryPunct
	CategoryTag
)

var categoryNames = [...]string{
	CategoryText:     "text",
	CategoryKeyword:  "keyword",
	CategoryString:   "string",
	CategoryNumber:   "number",
	CategoryConstant: "constant",
	CategoryComment:  "comment",
	CategoryFunction: "function",
	CategoryMacro:    "macro",
	CategoryType:     "type",
	CategoryProperty: "property",
	CategoryVariable: "variable",
	CategoryOperator: "operator",
	CategoryPunct:    "punctuation",
	CategoryTag:      "tag",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "text"
}
