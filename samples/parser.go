package samples

import (
	"strconv"
	"strings"
)

/* 12.5,3,21.75 */

// ParseLine attempts to parse a single x,y,value record.
func ParseLine(line string) (res Sample, ok bool) {
	spl := strings.Split(strings.TrimSpace(line), ",")
	if len(spl) != fieldsPerRecord {
		return
	}

	var vs [fieldsPerRecord]float64
	for i, s := range spl {
		var err error
		if vs[i], err = strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil || !finite(vs[i]) {
			return
		}
	}
	ok = true
	res = Sample{X: vs[0], Y: vs[1], Value: vs[2]}
	return
}
