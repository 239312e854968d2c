package classpath

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// PathString joins files into a path-list of absolute paths, in order.
func PathString(files ...[]string) string {
	var parts []string
	for _, set := range files {
		for _, f := range set {
			if f == "" {
				continue
			}
			parts = append(parts, absolute(f))
		}
	}
	return strings.Join(parts, string(os.PathListSeparator))
}

// Split breaks a path-list into its entries, dropping empty ones.
func Split(pathList string) []string {
	var out []string
	for _, p := range filepath.SplitList(pathList) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JavaExecutable returns the java launcher inside a java home directory.
func JavaExecutable(javaHome string) string {
	name := "java"
	if runtime.GOOS == "windows" {
		name = "java.exe"
	}
	return filepath.Join(absolute(javaHome), "bin", name)
}

func absolute(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}
