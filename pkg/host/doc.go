/*
Package host is the IDE side of the preview handshake.

A Listener accepts loopback connections from builds, decodes one preview request per
connection and records it in a ports.PreviewStore. It stands in for the IDE plugin
during development and lets other tools (the HTTP API, the MCP server, the status
command) see what the build last asked to preview.
*/
package host
