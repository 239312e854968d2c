/*
Package ports defines the driven ports (interfaces) of the IDE-side preview listener.

# Key Interfaces

  - PreviewStore: keeps the last preview request received for each target.
*/
package ports
