package service

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Core packages must not reach into the delivery layer.
func TestCorePackagesDoNotImportHTTP(t *testing.T) {
	for _, dir := range []string{".", "../repository", "../repository/postgres", "../model", "../textract"} {
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)

		fset := token.NewFileSet()
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".go") {
				continue
			}
			f, err := parser.ParseFile(fset, filepath.Join(dir, e.Name()), nil, parser.ImportsOnly)
			require.NoError(t, err)

			for _, imp := range f.Imports {
				path, _ := strconv.Unquote(imp.Path.Value)
				assert.False(t, strings.HasPrefix(path, "scriptum/internal/http"),
					"%s imports %s", filepath.Join(dir, e.Name()), path)
				assert.NotEqual(t, "github.com/gofiber/fiber/v2", path,
					"%s imports fiber", filepath.Join(dir, e.Name()))
			}
		}
	}
}
