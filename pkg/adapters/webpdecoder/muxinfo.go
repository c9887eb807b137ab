package webpdecoder

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"
)

// parseFrameTable extracts the duration column from `webpmux -info` output.
//
// The column is located by the header row that contains "duration", so
// tools printing extra or reordered columns still parse. Rows after the
// header that are too short or not numeric are skipped.
func parseFrameTable(out []byte) []int {
	var durations []int
	column := -1

	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		if column < 0 {
			for i, f := range fields {
				if f == "duration" {
					column = i
					break
				}
			}
			continue
		}

		if !strings.HasSuffix(fields[0], ":") || column >= len(fields) {
			continue
		}
		if _, err := strconv.Atoi(strings.TrimSuffix(fields[0], ":")); err != nil {
			continue
		}
		d, err := strconv.Atoi(fields[column])
		if err != nil {
			continue
		}
		durations = append(durations, d)
	}
	return durations
}
