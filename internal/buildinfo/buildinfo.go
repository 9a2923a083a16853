package buildinfo

import "strings"

// Set at build time via -ldflags "-X rtcore/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns a compact build identifier for window titles and logs.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}

const rule = "--------------------------------"

// Banner returns the start-up lines every demo prints over the debug UART.
func Banner(app string) []string {
	built := "App built on: " + Date
	if Commit != "" && Commit != "unknown" {
		built += " (" + Short() + ")"
	}
	return []string{rule, strings.TrimSpace(app), built}
}
