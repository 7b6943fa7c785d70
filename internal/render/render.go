// Package render draws temperature frames on a terminal.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/garciaolais/mlx90621"
	"github.com/pterm/pterm"
)

// Display modes.
const (
	ModeHeatmap = "heatmap"
	ModeValues  = "values"
)

var levels = []*pterm.Style{
	pterm.NewStyle(pterm.BgBlue, pterm.FgWhite),
	pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	pterm.NewStyle(pterm.BgGreen, pterm.FgBlack),
	pterm.NewStyle(pterm.BgYellow, pterm.FgBlack),
	pterm.NewStyle(pterm.BgRed, pterm.FgWhite),
}

// Range returns the coldest and hottest pixel temperatures of f.
func Range(f *mlx90621.Frame) (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, row := range f.Celsius {
		for _, v := range row {
			min = math.Min(min, v)
			max = math.Max(max, v)
		}
	}
	return min, max
}

// level maps value into one of the heat map levels.
func level(value, min, max float64) int {
	if max == min {
		return len(levels) / 2
	}
	l := int((value - min) / (max - min) * float64(len(levels)))
	if l < 0 {
		return 0
	}
	if l >= len(levels) {
		return len(levels) - 1
	}
	return l
}

// RenderFrame prints f in a box titled with the ambient temperature.
func RenderFrame(f *mlx90621.Frame, ambient float64, mode string) {
	min, max := Range(f)
	title := fmt.Sprintf("MLX90621 | Ta %.2f°C | Range %.1f-%.1f°C", ambient, min, max)
	pterm.DefaultBox.WithTitle(title).WithTitleTopLeft().Println(BuildFrameString(f, mode, min, max))
}

// BuildFrameString lays out f with row 0 at the top.
func BuildFrameString(f *mlx90621.Frame, mode string, min, max float64) string {
	var result strings.Builder

	for row := 0; row < mlx90621.Rows; row++ {
		for col := 0; col < mlx90621.Columns; col++ {
			v := f.Celsius[row][col]
			style := levels[level(v, min, max)]
			if mode == ModeValues {
				result.WriteString(style.Sprintf("%6.1f", v))
			} else {
				result.WriteString(style.Sprint("▄▄"))
			}
		}
		result.WriteString("\n")
	}

	if mode != ModeValues {
		result.WriteString("\n" + legend(min, max))
	}
	return result.String()
}

func legend(min, max float64) string {
	var result strings.Builder
	step := (max - min) / float64(len(levels))
	for i, s := range levels {
		result.WriteString(s.Sprint("▄▄"))
		result.WriteString(fmt.Sprintf(" ≥%.1f  ", min+float64(i)*step))
	}
	return strings.TrimRight(result.String(), " ")
}

// Table prints the tenths-of-a-degree grid.
func Table(f *mlx90621.Frame) error {
	data := [][]string{{"row"}}
	for col := 0; col < mlx90621.Columns; col++ {
		data[0] = append(data[0], fmt.Sprint(col))
	}
	for row := 0; row < mlx90621.Rows; row++ {
		line := []string{fmt.Sprint(row)}
		for col := 0; col < mlx90621.Columns; col++ {
			line = append(line, fmt.Sprint(f.Tenths[row][col]))
		}
		data = append(data, line)
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
