package store

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/anneal-lab/embedcache/internal/core/domain"
	"go.trai.ch/zerr"
)

const maxLineSize = 16 << 20

// Encode writes the table as one line per row of space separated integers.
func Encode(w io.Writer, table domain.EmbeddingTable) error {
	bw := bufio.NewWriter(w)
	for _, row := range table {
		for j, v := range row {
			if j > 0 {
				_ = bw.WriteByte(' ')
			}
			_, _ = bw.WriteString(strconv.Itoa(v))
		}
		_ = bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Decode parses an integer matrix. Values may be separated by any whitespace
// and blank lines are skipped. Every row must have the same width and at least
// one row must be present.
func Decode(r io.Reader) (domain.EmbeddingTable, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var table domain.EmbeddingTable
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		row := make([]int, len(fields))
		for j, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, "invalid integer"), "line", line)
			}
			row[j] = v
		}

		if len(table) > 0 && len(row) != len(table[0]) {
			return nil, zerr.With(zerr.With(zerr.New("inconsistent number of columns"), "line", line), "columns", len(row))
		}
		table = append(table, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.Wrap(err, "failed to scan embedding table")
	}
	if len(table) == 0 {
		return nil, zerr.New("empty embedding table")
	}

	return table, nil
}

func encode(table domain.EmbeddingTable) []byte {
	var buf bytes.Buffer
	_ = Encode(&buf, table)
	return buf.Bytes()
}
