// Package domain maps MCP tool calls onto the Daggerheart sheet helpers.
//
// Each tool pairs a schema constructor (XTool) with a typed handler
// (XHandler). Handlers are pure over their input apart from the catalog
// tools, which read from a card store.
package domain
