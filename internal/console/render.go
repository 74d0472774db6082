package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/gridgame/internal/board"
)

// Render writes the board with 1-based row and column labels.
func Render(w io.Writer, b *board.Board) {
	size := b.Size()
	width := len(strconv.Itoa(size))

	labels := make([]string, size)
	for col := range labels {
		labels[col] = strconv.Itoa(col + 1)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%*s %s\n", width, "", strings.Join(labels, " "))

	for row, marks := range b.Rows() {
		cells := make([]string, size)
		for col, mark := range marks {
			cells[col] = cellText(mark)
		}

		fmt.Fprintf(&sb, "%*d %s\n", width, row+1, strings.Join(cells, "|"))
		fmt.Fprintf(&sb, "%*s %s\n", width, "", strings.Repeat("-", size*2-1))
	}

	fmt.Fprint(w, sb.String())
}

func cellText(mark board.Mark) string {
	if mark == board.Empty {
		return " "
	}

	return string(mark)
}
