package batch

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Input format errors. These fail the run before any task is dispatched.
var (
	ErrMissingRA   = errors.New("batch: table has no ra column")
	ErrMissingDec  = errors.New("batch: table has no dec column")
	ErrMissingSize = errors.New("batch: size column requested but not present")
	ErrEmptyTable  = errors.New("batch: table has no header row")
)

// identPrefixes are the header prefixes accepted for the identifier column.
// Matching is case-sensitive.
var identPrefixes = []string{"obj", "name", "source", "target"}

// Task is one unit of work: a single object to resolve and fetch. Immutable
// once constructed; each task is owned by exactly one worker.
type Task struct {
	// Object is the identifier used for resolution (name-list mode) and for
	// the output key.
	Object string

	// RA and Dec are explicit coordinates in decimal degrees, valid when
	// HasCoords is set (coordinate-table mode). Without them, the object
	// name is resolved first.
	RA, Dec   float64
	HasCoords bool

	// Size is a known angular size in arcsec, valid when HasSize is set.
	Size    float64
	HasSize bool

	// Key is the destination object key, "<Object>.jpg".
	Key string
}

// ParseNameList reads one object name per line. Names are trimmed and blank
// lines are skipped.
func ParseNameList(r io.Reader) ([]Task, error) {
	var tasks []Task

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		tasks = append(tasks, Task{
			Object: name,
			Key:    name + ".jpg",
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read name list: %w", err)
	}

	return tasks, nil
}

// ParseTable reads a delimited coordinate table. The first non-blank line is
// the header; columns are matched by case-sensitive name prefix: the first
// "ra*" and "dec*" columns are required, a "size*" column is required only
// when needSize is set, and the first "obj*"/"name*"/"source*"/"target*"
// column supplies identifiers. Rows without an identifier column get
// sequential integer identifiers starting at 1.
func ParseTable(r io.Reader, needSize bool) ([]Task, error) {
	scanner := bufio.NewScanner(r)

	var header []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		header = splitRow(line)
		break
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	if header == nil {
		return nil, ErrEmptyTable
	}

	raIdx := indexWithPrefix(header, "ra")
	decIdx := indexWithPrefix(header, "dec")
	if raIdx < 0 {
		return nil, ErrMissingRA
	}
	if decIdx < 0 {
		return nil, ErrMissingDec
	}

	sizeIdx := indexWithPrefix(header, "size")
	if needSize && sizeIdx < 0 {
		return nil, ErrMissingSize
	}

	identIdx := -1
	for _, prefix := range identPrefixes {
		if i := indexWithPrefix(header, prefix); i >= 0 {
			identIdx = i
			break
		}
	}

	var tasks []Task
	row := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		row++

		fields := splitRow(line)
		if len(fields) != len(header) {
			return nil, fmt.Errorf("batch: row %d has %d fields, header has %d", row, len(fields), len(header))
		}

		ra, err := strconv.ParseFloat(fields[raIdx], 64)
		if err != nil {
			return nil, fmt.Errorf("batch: row %d: parse ra %q: %w", row, fields[raIdx], err)
		}
		dec, err := strconv.ParseFloat(fields[decIdx], 64)
		if err != nil {
			return nil, fmt.Errorf("batch: row %d: parse dec %q: %w", row, fields[decIdx], err)
		}

		t := Task{
			RA:        ra,
			Dec:       dec,
			HasCoords: true,
		}

		if needSize {
			size, err := strconv.ParseFloat(fields[sizeIdx], 64)
			if err != nil {
				return nil, fmt.Errorf("batch: row %d: parse size %q: %w", row, fields[sizeIdx], err)
			}
			t.Size = size
			t.HasSize = true
		}

		if identIdx >= 0 {
			t.Object = fields[identIdx]
		} else {
			t.Object = strconv.Itoa(row)
		}
		t.Key = t.Object + ".jpg"

		tasks = append(tasks, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}

	return tasks, nil
}

// splitRow splits a table line on commas when present, otherwise on
// whitespace (blanks or tabs). Fields are trimmed.
func splitRow(line string) []string {
	if strings.Contains(line, ",") {
		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return strings.Fields(line)
}

// indexWithPrefix returns the index of the first header whose name starts
// with prefix, or -1.
func indexWithPrefix(header []string, prefix string) int {
	for i, h := range header {
		if strings.HasPrefix(h, prefix) {
			return i
		}
	}
	return -1
}
