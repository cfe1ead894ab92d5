package main_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// savedPage is a search feed saved from Maps with two listings.
const savedPage = `<!DOCTYPE html><html><head><title>bakeries - Google Maps</title></head><body>
<div class="m6QErb" role="feed">
  <div class="Nv2PK" role="article" aria-label="Acme Bakery">
    <a class="hfpxzc" aria-label="Acme Bakery" href="https://www.google.com/maps/place/Acme+Bakery"></a>
    <div class="qBF1Pd fontHeadlineSmall">Acme Bakery</div>
    <div class="W4Efsd"><div class="W4Efsd"><span>Bakery</span><span> · </span><span>12 Main St</span></div></div>
    <span class="UsdlK">555-0100</span>
  </div>
  <div class="Nv2PK" role="article" aria-label="Boulangerie Martin">
    <div class="qBF1Pd fontHeadlineSmall">Boulangerie Martin</div>
    <div class="W4Efsd"><div class="W4Efsd"><span>Boulangerie</span><span> · </span><span>5 Rue de la Paix</span></div></div>
  </div>
</div>
</body></html>`

// writeFile writes content to name inside a temporary directory.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
