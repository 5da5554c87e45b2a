// Package checkers holds the registry of accessibility checkers.
//
// Each checker owns one fixed table of assertions and runs it in order against
// a loaded page, stopping at the first failure. Checkers are selected by name
// from the CLI (--labels, --buttons) or exposed as MCP tools.
package checkers
