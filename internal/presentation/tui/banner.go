package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{` __      ___     _`, "#38bdf8"},
	{` \ \    / (_)   | |`, "#22d3ee"},
	{`  \ \  / / _ ___| |_ __ _`, "#2dd4bf"},
	{"   \\ \\/ / | / __| __/ _` |", "#34d399"},
	{`    \  /  | \__ \ || (_| |`, "#4ade80"},
	{`     \/   |_|___/\__\__,_|`, "#a3e635"},
}

// PrintBanner writes the Vista ASCII art banner to w, colored for the
// detected terminal profile.
func PrintBanner(w io.Writer) {
	p := termenv.EnvColorProfile()
	fmt.Fprintln(w)
	for _, line := range bannerLines {
		fmt.Fprintln(w, termenv.String(line.text).Foreground(p.Color(line.color)))
	}
	fmt.Fprintln(w)
}
