/*
Package previewkit connects a desktop UI build to the IDE that previews it.

The build side (package preview) assembles the preview classpath and the JVM that should
host the preview, then hands both to the IDE over a small loopback handshake (package
rpc). The IDE side (package host) receives and records those requests; they can be
inspected over HTTP, MCP or the status command.

Alongside the preview plumbing, package css provides typed helpers for writing CSS
declarations into a style sink.

# Usage

From a build script:

	previewkit configure \
		-P compose.desktop.preview.target=app.MainKt.AppPreview \
		-P compose.desktop.preview.ide.port=51234 \
		--classpath build/classes:libs/skiko-awt-0.7.85.jar

Without an IDE, run a listener to see what a build sends:

	previewkit listen --port 51234 --http :8080
*/
package previewkit
