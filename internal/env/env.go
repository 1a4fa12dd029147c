package env

import (
	"github.com/ostafen/dwmwhat/internal/ident"
	"github.com/ostafen/dwmwhat/internal/pkginfo"
)

const (
	AppName     = "dwmwhat"
	Version     = "1.0.0"
	ReleaseDate = "Oct 18 2026"
	Copyright   = "Stefano Scafiti 2025"
	Homepage    = "github.com/ostafen/dwmwhat"
)

// Set at link time with -ldflags "-X github.com/ostafen/dwmwhat/internal/env.CommitHash=...".
var (
	CommitHash = "unknown"
	BuildTime  = "unknown"
)

// Ident is embedded verbatim in the executable. The trailing NUL lets the
// scanner find it when the binary is given as input.
const Ident = ident.Marker + " EXE REL " + AppName + " " + Version + " " +
	ident.CopyrightSymbol + " " + Copyright + " " + ReleaseDate + " " +
	ident.OtherSymbol + " " + Homepage + "\x00"

var _ = pkginfo.Register(Ident)
