// Package hcl implements the HCL-specific workspace loader. It parses
// workspace files with hclparse/gohcl into the internal/schema structs and
// translates them into the format-agnostic config model.
package hcl
