package mapsync_test

import (
	"testing"

	"github.com/fwojciec/mapsync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProspect_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts prospect with only a name", func(t *testing.T) {
		t.Parallel()

		p := &mapsync.Prospect{Name: "Acme Bakery"}
		assert.NoError(t, p.Validate())
	})

	t.Run("rejects blank name", func(t *testing.T) {
		t.Parallel()

		p := &mapsync.Prospect{Name: "   ", Address: "12 Main St"}
		err := p.Validate()
		require.Error(t, err)
		assert.Equal(t, mapsync.EINVALID, mapsync.ErrorCode(err))
	})
}

func TestValidateDocument(t *testing.T) {
	t.Parallel()

	t.Run("accepts html text", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, mapsync.ValidateDocument("<html><body>Café</body></html>"))
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		err := mapsync.ValidateDocument(" \n\t ")
		assert.Equal(t, mapsync.EINVALID, mapsync.ErrorCode(err))
	})

	t.Run("accepts stray invalid utf-8 bytes", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, mapsync.ValidateDocument("<html>Caf\xe9</html>"))
	})

	t.Run("rejects binary data", func(t *testing.T) {
		t.Parallel()

		err := mapsync.ValidateDocument("PK\x03\x04\x00\x00")
		assert.Equal(t, mapsync.EINVALID, mapsync.ErrorCode(err))
	})
}

func TestSanitizeDocument(t *testing.T) {
	t.Parallel()

	t.Run("replaces invalid bytes", func(t *testing.T) {
		t.Parallel()

		got := mapsync.SanitizeDocument("<p>Caf\xe9 Latin1</p>")

		assert.Equal(t, "<p>Caf\uFFFD Latin1</p>", got)
		assert.NoError(t, mapsync.ValidateDocument(got))
	})

	t.Run("keeps valid text unchanged", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "<p>Café</p>", mapsync.SanitizeDocument("<p>Café</p>"))
	})
}
