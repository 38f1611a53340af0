// Package web embeds the single-page frontend served by the HTTP server.
package web

import "embed"

//go:embed static/*
var StaticFS embed.FS
