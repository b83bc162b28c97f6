package handlers

import "github.com/avolkova/minesweeper-agent/internal/kb"

func kbCell(row, col int) kb.Cell {
	return kb.Cell{Row: row, Col: col}
}
