package previewkit

// Version is the previewkit release, overridden at link time with
// -ldflags "-X github.com/aretw0/previewkit.Version=...".
var Version = "0.1.0-dev"
