package classpath

import (
	"fmt"
	"runtime"
)

// Target is a platform in skiko artifact naming, e.g. "linux-x64" or "macos-arm64".
type Target struct {
	OS   string
	Arch string
}

// ID returns the artifact suffix for the target.
func (t Target) ID() string {
	return t.OS + "-" + t.Arch
}

// CurrentTarget maps the running platform onto a skiko target.
func CurrentTarget() (Target, error) {
	return TargetFor(runtime.GOOS, runtime.GOARCH)
}

// TargetFor maps a GOOS/GOARCH pair onto a skiko target.
func TargetFor(goos, goarch string) (Target, error) {
	var t Target
	switch goos {
	case "linux":
		t.OS = "linux"
	case "darwin":
		t.OS = "macos"
	case "windows":
		t.OS = "windows"
	default:
		return Target{}, fmt.Errorf("unsupported os %q", goos)
	}

	switch goarch {
	case "amd64":
		t.Arch = "x64"
	case "arm64":
		t.Arch = "arm64"
	default:
		return Target{}, fmt.Errorf("unsupported arch %q", goarch)
	}
	return t, nil
}
