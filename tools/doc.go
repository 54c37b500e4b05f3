// Package tools defines the tool contract exposed to agents, the typed
// tool constructor and the registry that dispatches calls by tool name
// into a uniform result envelope.
package tools
