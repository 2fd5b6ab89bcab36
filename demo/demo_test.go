package demo

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteLayout(t *testing.T) {
	t.Parallel()

	site := Site()
	for _, name := range []string{
		"index.html",
		"components/header.html",
		"components/nav.html",
		"components/footer.html",
		"pages/home.html",
		"pages/news.html",
		"pages/about.html",
	} {
		_, err := fs.Stat(site, name)
		require.NoError(t, err, name)
	}

	// contact is linked from the nav but has no page, which exercises the
	// inline error.
	_, err := fs.Stat(site, "pages/contact.html")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
