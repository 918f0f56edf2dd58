package main

import (
	"bufio"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// First run of colon or whitespace characters, separating an optional
// numeric ID prefix from the label text.
var labelSep = regexp.MustCompile(`[:\s]+`)

// loadLabels reads a label file with one label per line, with or without a
// leading "<int>: " or "<int> " index. Lines without a numeric prefix are
// keyed by their zero-based row number. Later duplicate IDs overwrite
// earlier ones.
func loadLabels(filename string) (map[int]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	labels := map[int]string{}
	row := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		pair := labelSep.Split(line, 2)
		if len(pair) == 2 && isDigits(pair[0]) {
			if id, err := strconv.Atoi(pair[0]); err == nil {
				labels[id] = strings.TrimSpace(pair[1])
				row++
				continue
			}
		}
		labels[row] = line
		row++
	}
	return labels, scanner.Err()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
