package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	` __  __ ____  __  __ ____  `,
	` \ \/ /|___ \|  \/  |  _ \ `,
	`  \  /   __) | |\/| | |_) |`,
	`  /  \  |__ <| |  | |  __/ `,
	` /_/\_\ ___) |_|  |_|_|    `,
	`       |____/              `,
}

// Steel blue to amber, like the X3 menus.
var bannerColors = []string{"#38bdf8", "#60a5fa", "#818cf8", "#c084fc", "#f59e0b", "#fbbf24"}

// PrintBanner writes the X3MP banner shown before interactive prompts.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, out.String(line).Foreground(out.Color(bannerColors[i])))
	}
	fmt.Fprintln(w)
}
