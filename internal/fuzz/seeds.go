package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
)

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	addInlineSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata", "snapshots")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.json файлы
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ".json" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
	if err != nil {
		return
	}
}

// addInlineSeeds feeds shapes the loader must reject gracefully alongside a
// couple of small valid documents.
func addInlineSeeds(f *testing.F) {
	seeds := []string{
		``,
		`{}`,
		`null`,
		`[]`,
		`{"library": ""}`,
		`{"library": "app:a"}`,
		`{"library": "app:a", "declarations": [{"kind": "class", "name": "A"}]}`,
		`{"library": "app:a", "declarations": [{"kind": "class", "name": "A"},
		  {"kind": "field", "name": "_v", "owner": "A", "type": "int"}],
		  "applications": [{"macro": "observable", "target": "A._v"}]}`,
		`{"library": "app:a", "declarations": [{"kind": "field", "name": "x", "owner": "Missing"}]}`,
		`{"library": "app:a", "declarations": [{"kind": "gadget", "name": "A"}]}`,
		`{"library": "app:a", "applications": [{"macro": "", "target": "app:a"}]}`,
		`{"library": "app:a", "applications": [{"macro": "x", "target": "nowhere"}]}`,
		`{"library": "app:a", "declarations": [{"kind": "type_alias", "name": "T", "aliased": "List<"}]}`,
		`{"library": "app:a", "unknown_key": 1}`,
	}
	for _, s := range seeds {
		f.Add([]byte(s))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
