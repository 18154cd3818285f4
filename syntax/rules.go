package syntax

import "strings"

// Rule maps a node kind, optionally constrained to a parent kind, to a
// category. Priority breaks ties between overlapping matches before
// nesting depth and declaration order do. Within one table the last
// matching rule wins, so tables list broad rules first and contextual
// refinements after them.
type Rule struct {
	Kind     string
	Parent   string
	Category Category
	Priority int
}

type ruleTable []Rule

// match returns the last table rule matching a node kind under parent,
// with its declaration index.
func (t ruleTable) match(kind, parent string) (Rule, int, bool) {
	for i := len(t) - 1; i >= 0; i-- {
		r := t[i]
		if r.Kind != kind {
			continue
		}
		if r.Parent != "" && r.Parent != parent {
			continue
		}
		return r, i, true
	}
	return Rule{}, 0, false
}

// genericCategory classifies node kinds shared across grammars: comments,
// strings, numbers, anonymous keyword tokens, operator and punctuation
// glyphs. It runs when the language table has no match.
func genericCategory(kind string, named bool) (Category, bool) {
	switch {
	case strings.Contains(kind, "comment"):
		return CategoryComment, true
	case strings.Contains(kind, "string"), strings.Contains(kind, "char"),
		strings.Contains(kind, "heredoc"), kind == "escape_sequence":
		return CategoryString, true
	case strings.Contains(kind, "number"), strings.Contains(kind, "integer"),
		strings.Contains(kind, "float"), kind == "int_literal":
		return CategoryNumber, true
	case kind == "true", kind == "false", kind == "null", kind == "nil",
		kind == "none", kind == "undefined":
		return CategoryConstant, true
	case kind == "type_identifier", kind == "primitive_type", kind == "predefined_type":
		return CategoryType, true
	case strings.HasSuffix(kind, "keyword"):
		return CategoryKeyword, true
	}

	if !named {
		switch {
		case isPunctToken(kind):
			return CategoryPunct, true
		case isOperatorToken(kind):
			return CategoryOperator, true
		case isWordToken(kind):
			// Grammars spell keywords as anonymous literal tokens.
			return CategoryKeyword, true
		case strings.HasPrefix(kind, "#") && isWordToken(kind[1:]):
			// Preprocessor directives: #include, #define, #if.
			return CategoryMacro, true
		}
		return CategoryText, false
	}

	switch kind {
	case "identifier":
		return CategoryVariable, true
	case "field_identifier", "property_identifier":
		return CategoryProperty, true
	}
	return CategoryText, false
}

func isPunctToken(kind string) bool {
	if kind == "" {
		return false
	}
	for _, r := range kind {
		if !strings.ContainsRune("()[]{};,.:", r) {
			return false
		}
	}
	return true
}

func isOperatorToken(kind string) bool {
	if kind == "" {
		return false
	}
	for _, r := range kind {
		if !strings.ContainsRune("()[]{};,.:+-*/%=!<>&|^~?@$", r) {
			return false
		}
	}
	return true
}

func isWordToken(kind string) bool {
	if kind == "" {
		return false
	}
	for _, r := range kind {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && r != '_' {
			return false
		}
	}
	return true
}

var goRules = ruleTable{
	{Kind: "identifier", Category: CategoryVariable},
	{Kind: "package_identifier", Category: CategoryType},
	{Kind: "field_identifier", Category: CategoryProperty},
	{Kind: "type_identifier", Category: CategoryType},
	{Kind: "rune_literal", Category: CategoryString},
	{Kind: "int_literal", Category: CategoryNumber},
	{Kind: "float_literal", Category: CategoryNumber},
	{Kind: "imaginary_literal", Category: CategoryNumber},
	{Kind: "iota", Category: CategoryConstant},
	{Kind: "identifier", Parent: "const_spec", Category: CategoryConstant, Priority: 1},
	{Kind: "identifier", Parent: "function_declaration", Category: CategoryFunction, Priority: 1},
	{Kind: "field_identifier", Parent: "method_declaration", Category: CategoryFunction, Priority: 1},
	{Kind: "identifier", Parent: "call_expression", Category: CategoryFunction, Priority: 1},
}

var rustRules = ruleTable{
	{Kind: "identifier", Category: CategoryVariable},
	{Kind: "field_identifier", Category: CategoryProperty},
	{Kind: "shorthand_field_identifier", Category: CategoryProperty},
	{Kind: "type_identifier", Category: CategoryType},
	{Kind: "primitive_type", Category: CategoryType},
	{Kind: "boolean_literal", Category: CategoryConstant},
	{Kind: "lifetime", Category: CategoryKeyword},
	{Kind: "self", Category: CategoryKeyword},
	{Kind: "crate", Category: CategoryKeyword},
	{Kind: "mutable_specifier", Category: CategoryKeyword},
	{Kind: "identifier", Parent: "function_item", Category: CategoryFunction, Priority: 1},
	{Kind: "identifier", Parent: "call_expression", Category: CategoryFunction, Priority: 1},
	{Kind: "identifier", Parent: "macro_invocation", Category: CategoryMacro, Priority: 2},
	{Kind: "!", Parent: "macro_invocation", Category: CategoryMacro, Priority: 2},
}

// scriptRules covers javascript, typescript, and tsx; the TS-only and
// JSX-only kinds simply never match elsewhere.
var scriptRules = ruleTable{
	{Kind: "identifier", Category: CategoryVariable},
	{Kind: "property_identifier", Category: CategoryProperty},
	{Kind: "shorthand_property_identifier", Category: CategoryProperty},
	{Kind: "shorthand_property_identifier_pattern", Category: CategoryProperty},
	{Kind: "type_identifier", Category: CategoryType},
	{Kind: "predefined_type", Category: CategoryType},
	{Kind: "regex", Category: CategoryString},
	{Kind: "this", Category: CategoryKeyword},
	{Kind: "super", Category: CategoryKeyword},
	{Kind: "identifier", Parent: "function_declaration", Category: CategoryFunction, Priority: 1},
	{Kind: "identifier", Parent: "call_expression", Category: CategoryFunction, Priority: 1},
	{Kind: "property_identifier", Parent: "method_definition", Category: CategoryFunction, Priority: 1},
	{Kind: "identifier", Parent: "jsx_opening_element", Category: CategoryTag, Priority: 1},
	{Kind: "identifier", Parent: "jsx_closing_element", Category: CategoryTag, Priority: 1},
	{Kind: "identifier", Parent: "jsx_self_closing_element", Category: CategoryTag, Priority: 1},
	{Kind: "property_identifier", Parent: "jsx_attribute", Category: CategoryTag, Priority: 1},
}

var pythonRules = ruleTable{
	{Kind: "identifier", Category: CategoryVariable},
	{Kind: "identifier", Parent: "decorator", Category: CategoryMacro, Priority: 1},
	{Kind: "identifier", Parent: "function_definition", Category: CategoryFunction, Priority: 1},
	{Kind: "identifier", Parent: "call", Category: CategoryFunction, Priority: 1},
	{Kind: "identifier", Parent: "class_definition", Category: CategoryType, Priority: 1},
}

// cRules covers c, cpp, and java.
var cRules = ruleTable{
	{Kind: "identifier", Category: CategoryVariable},
	{Kind: "field_identifier", Category: CategoryProperty},
	{Kind: "type_identifier", Category: CategoryType},
	{Kind: "primitive_type", Category: CategoryType},
	{Kind: "namespace_identifier", Category: CategoryType},
	{Kind: "system_lib_string", Category: CategoryString},
	{Kind: "identifier", Parent: "function_declarator", Category: CategoryFunction, Priority: 1},
	{Kind: "field_identifier", Parent: "function_declarator", Category: CategoryFunction, Priority: 1},
	{Kind: "identifier", Parent: "call_expression", Category: CategoryFunction, Priority: 1},
	{Kind: "identifier", Parent: "method_declaration", Category: CategoryFunction, Priority: 1},
	{Kind: "identifier", Parent: "method_invocation", Category: CategoryFunction, Priority: 1},
}

var cssRules = ruleTable{
	{Kind: "tag_name", Category: CategoryTag},
	{Kind: "class_name", Category: CategoryType},
	{Kind: "id_name", Category: CategoryType},
	{Kind: "property_name", Category: CategoryProperty},
	{Kind: "feature_name", Category: CategoryProperty},
	{Kind: "plain_value", Category: CategoryConstant},
	{Kind: "color_value", Category: CategoryNumber},
	{Kind: "unit", Category: CategoryNumber},
}

var htmlRules = ruleTable{
	{Kind: "tag_name", Category: CategoryTag},
	{Kind: "attribute_name", Category: CategoryTag},
	{Kind: "attribute_value", Category: CategoryString},
	{Kind: "quoted_attribute_value", Category: CategoryString},
	{Kind: "entity", Category: CategoryConstant},
}

// dataRules covers yaml and toml.
var dataRules = ruleTable{
	{Kind: "anchor_name", Category: CategoryConstant},
	{Kind: "alias_name", Category: CategoryConstant},
	{Kind: "tag", Category: CategoryType},
	{Kind: "boolean_scalar", Category: CategoryConstant},
	{Kind: "null_scalar", Category: CategoryConstant},
	{Kind: "double_quote_scalar", Category: CategoryString},
	{Kind: "single_quote_scalar", Category: CategoryString},
	{Kind: "block_scalar", Category: CategoryString},
	{Kind: "bare_key", Category: CategoryProperty},
	{Kind: "quoted_key", Category: CategoryProperty},
	{Kind: "boolean", Category: CategoryConstant},
	{Kind: "offset_date_time", Category: CategoryNumber},
	{Kind: "local_date", Category: CategoryNumber},
	{Kind: "local_time", Category: CategoryNumber},
}
