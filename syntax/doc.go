// Package syntax keeps a tree-sitter parse tree synchronized with buffer
// edits and classifies byte ranges of the document into highlight
// categories.
//
// The package is responsible for the language registry (grammar, file
// extensions, comment prefix, indent unit, rule table), incremental
// re-parsing with damage tracking, range-restricted highlighting with
// deterministic overlap resolution, and a generation-stamped viewport
// cache.
package syntax
