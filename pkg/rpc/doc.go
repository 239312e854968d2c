/*
Package rpc implements the small handshake a build sends to an IDE to configure
the desktop preview.

The wire is a sequence of length-prefixed frames over a loopback TCP connection:

	+----------------------+-----------------+
	| length (uint32, BE)  | payload (bytes) |
	+----------------------+-----------------+

A command frame carries "<TYPE> <arg>..." with query-escaped arguments. Commands that
carry a large value (a classpath) are followed by one data frame holding the raw bytes.
The build sends, in order:

	PREVIEW_CONFIG <java executable> <host classpath>
	PREVIEW_CLASSPATH   + data frame
	PREVIEW_FQ_NAME     + data frame

and closes the connection.
*/
package rpc
