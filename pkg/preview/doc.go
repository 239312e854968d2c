/*
Package preview implements the build-side task that configures the IDE desktop preview.

A Task gathers the preview classpath (project output, ui-tooling and, when needed, the
skiko AWT runtime for the current platform), describes the JVM the IDE should use to
host the preview, and sends both to an IDE listening on a loopback port.

An unreachable IDE is not a build failure: the task logs "Could not connect to IDE" and
returns nil.
*/
package preview
