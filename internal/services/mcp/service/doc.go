// Package service wires MCP transports to the sheet tool handlers.
//
// It knows how to run MCP over stdio or streamable HTTP and delegates the
// meaning of each tool to the domain package.
package service
