// Package stacktrace trims runtime stack dumps down to this module's frames.
package stacktrace

import "strings"

const marker = "/internal/"

// InternalPaths returns "internal/<pkg>/<file>.go:<line>" for every frame of
// stack that belongs to the module's internal tree, innermost first.
func InternalPaths(stack []byte) []string {
	lines := strings.Split(string(stack), "\n")
	paths := make([]string, 0, len(lines)/2)

	for _, line := range lines {
		line = strings.TrimSpace(line)
		idx := strings.Index(line, ".go:")
		if idx == -1 || !strings.Contains(line, marker) {
			continue
		}

		// Drop the " +0x1f" program counter offset.
		if end := strings.IndexByte(line[idx:], ' '); end != -1 {
			line = line[:idx+end]
		}

		paths = append(paths, line[strings.Index(line, marker)+1:])
	}

	return paths
}
