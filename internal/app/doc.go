// Package app wires a plugrid instance together: it builds the logger, the
// workspace catalog, the module index and the manager catalog, registers
// the built-in managers and service modules, and runs the requested
// discovery, search or probe.
package app
