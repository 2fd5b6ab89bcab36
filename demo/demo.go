// Package demo embeds a small sample site used when no site is configured.
package demo

import (
	"embed"
	"io/fs"
)

//go:embed site
var files embed.FS

// Site returns the sample site rooted at its shell document.
func Site() fs.FS {
	sub, err := fs.Sub(files, "site")
	if err != nil {
		panic(err)
	}
	return sub
}
