package devblog

import "embed"

// EmbeddedAssets contains static assets shipped with the server:
// toc.js (the browser table-of-contents controller) and favicon.svg.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
