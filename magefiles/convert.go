package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Convert builds the CLI and converts docs/ into build/docs/.
func Convert() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "batch", "--src", "docs", "--out", "build/docs")
}

// Preview builds the CLI and renders docs/ as HTML into build/html/.
func Preview() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "batch", "--backend", "html", "--src", "docs", "--out", "build/html")
}
