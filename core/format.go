package core

import (
	"fmt"
	"sort"
	"strings"
)

var sizeUnits = [5]string{"B", "KB", "MB", "GB", "TB"}

// FormatSize renders a byte count with binary (1024) unit steps and one
// decimal place. Scaling stops at TB even if the value is still above 1024.
func FormatSize(n int64) string {
	v := float64(n)
	unit := 0
	for v >= 1024 && unit < len(sizeUnits)-1 {
		v /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f %s", v, sizeUnits[unit])
}

// SortEntries orders a listing in place: directories before files, ties
// broken by case-insensitive name. The sort is stable.
func SortEntries(entries []FileEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
}
