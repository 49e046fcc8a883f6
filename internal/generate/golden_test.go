//go:build cgo

package generate

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"classmap/internal/testutil"
)

// TestGoldenFixtures renders each fixture project in combined mode and
// compares the output against testdata/golden/<name>.mmd. Run with -update
// to refresh the golden files.
func TestGoldenFixtures(t *testing.T) {
	fixturesDir := filepath.Join("testdata", "fixtures")
	entries, err := os.ReadDir(fixturesDir)
	if err != nil {
		t.Fatalf("read fixtures dir: %v", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		t.Run(name, func(t *testing.T) {
			outDir := t.TempDir()
			g := New(Options{
				Path:         filepath.Join(fixturesDir, name),
				OutputDir:    outDir,
				OutputFormat: FormatMmd,
			}, testLogger(), nil)

			if _, err := g.Run(context.Background()); err != nil {
				t.Fatalf("Run: %v", err)
			}

			got, err := os.ReadFile(filepath.Join(outDir, name+".mmd"))
			if err != nil {
				t.Fatalf("read rendered diagram: %v", err)
			}
			testutil.CompareGolden(t, filepath.Join("testdata", "golden", name+".mmd"), got)
		})
	}
}
