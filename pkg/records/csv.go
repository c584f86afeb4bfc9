package records

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"strings"

	"corgraph/pkg/logger"
)

// Row is a single record keyed by column header. Cells missing from a row
// are simply absent from the map.
type Row map[string]string

// Get returns the trimmed cell value for the given column, or "" when the
// column is absent.
func (r Row) Get(column string) string {
	return strings.TrimSpace(r[column])
}

// DecodeRows parses CSV content into header-keyed rows. The reader is
// lenient: variable field counts and lazy quotes are accepted, blank rows
// and malformed lines are skipped rather than failing the whole set.
func DecodeRows(content []byte) []Row {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var header []string
	var rows []Row

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		isEmpty := true
		for _, field := range record {
			if strings.TrimSpace(field) != "" {
				isEmpty = false
				break
			}
		}
		if isEmpty {
			continue
		}

		if header == nil {
			header = make([]string, len(record))
			for i, field := range record {
				header[i] = strings.TrimSpace(field)
			}
			continue
		}

		row := make(Row, len(header))
		for i, field := range record {
			if i >= len(header) || header[i] == "" {
				continue
			}
			row[header[i]] = field
		}
		rows = append(rows, row)
	}

	return rows
}

// Sets holds the decoded rows of the four record sets for one group. A
// missing record set is represented by a nil slice.
type Sets struct {
	Roster       []Row
	Ownership    []Row
	Transactions []Row
	Attributes   []Row
}

// LoadSets reads and decodes the given record-set files. A file whose source
// reports fs.ErrNotExist is logged and treated as an empty set; any other
// read failure is collected and returned, but the remaining sets are still
// processed.
func LoadSets(ctx context.Context, files []GroupFile) (Sets, []error) {
	var sets Sets
	var errs []error

	for _, file := range files {
		content, err := file.Source.Read(ctx, file)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Warn("Record set not found", "group", file.Group, "kind", file.Kind, "path", file.Path)
				continue
			}
			logger.Error("Failed to read record set", "group", file.Group, "kind", file.Kind, "err", err)
			errs = append(errs, err)
			continue
		}

		rows := DecodeRows(content)
		logger.Debug("Loaded record set", "group", file.Group, "kind", file.Kind, "rows", len(rows))

		switch file.Kind {
		case KindRoster:
			sets.Roster = rows
		case KindOwnership:
			sets.Ownership = rows
		case KindTransactions:
			sets.Transactions = rows
		case KindAttributes:
			sets.Attributes = rows
		}
	}

	return sets, errs
}
