/*
Package domain contains the core domain models shared by the build side and the IDE side
of the desktop preview handshake.

It is kept free of I/O: the wire lives in package rpc, persistence in the adapters.

# Key Entities

  - HostConfig: what the IDE needs to launch a preview host process (JVM + classpath).
  - PreviewRequest: a HostConfig plus the preview classpath and the composable to render.
*/
package domain
