package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExecutableName is the file name of the load test binary produced by
// the C++ build.
const ExecutableName = "concurrent_load_test"

// buildDirs are the candidate build output directories, probed in order.
var buildDirs = []string{"build", "build-release"}

// NotFoundError reports that no candidate build directory contains the
// load test executable.
type NotFoundError struct {
	Searched []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf(
		"could not find %s executable (searched: %s); build the project first:\n"+
			"mkdir build && cd build && cmake -DCMAKE_BUILD_TYPE=Release .. && make",
		ExecutableName, strings.Join(e.Searched, ", "),
	)
}

// Locate returns the path of the load test executable under root,
// probing the common build directories in order and taking the first
// hit. It has no side effects.
func Locate(root string) (string, error) {
	searched := make([]string, 0, len(buildDirs))

	for _, dir := range buildDirs {
		path := filepath.Join(root, dir, ExecutableName)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}

		searched = append(searched, filepath.Join(root, dir))
	}

	return "", &NotFoundError{Searched: searched}
}
