// Package domain defines the MCP tool schemas and handlers that expose the
// study progress service to MCP clients.
package domain
