/*
Package classpath assembles JVM classpath strings for the desktop preview.

It joins file sets into a platform path-list, maps the running platform onto the
skiko target naming, and performs the best-effort lookup of the skiko AWT runtime jar
that the preview needs when the project only depends on the skiko API jar.
*/
package classpath
