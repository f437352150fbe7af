package cleanup

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/jszwec/csvutil"
	"github.com/kurochkinivan/article_cleanup/internal/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var errNoColumns = errors.New("no columns to parse from file")

type Parser struct {
	log *slog.Logger
}

func NewParser(log *slog.Logger) *Parser {
	return &Parser{
		log: log,
	}
}

// Parse reads a comma separated table whose first record is the header.
// Every returned error wraps domain.ErrInvalidTable.
func (p *Parser) Parse(r io.Reader) (*domain.Table, error) {
	table, err := p.parseRecords(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidTable, err)
	}

	return table, nil
}

func (p *Parser) parseRecords(r io.Reader) (*domain.Table, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	dec, err := csvutil.NewDecoder(reader)
	if errors.Is(err, io.EOF) {
		return nil, errNoColumns
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := normalizeHeader(dec.Header())

	p.log.Debug("parsing records", slog.Int("columns_count", len(columns)))

	var rows []domain.Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record #%d: %w", len(rows)+1, err)
		}

		if len(record) > len(columns) {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("expected %d fields in line %d, saw %d", len(columns), line, len(record))
		}

		row := make(domain.Row, len(columns))
		copy(row, record)
		rows = append(rows, row)
	}

	p.log.Debug("successfully parsed records", slog.Int("rows_count", len(rows)))

	return domain.NewTable(columns, rows...), nil
}

// normalizeHeader names empty header cells "Unnamed: i" and suffixes
// repeated names with ".1", ".2", ... so that column names are unique.
func normalizeHeader(header []string) []string {
	columns := make([]string, len(header))
	counts := make(map[string]int, len(header))
	used := make(map[string]bool, len(header))

	for i, name := range header {
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}

		column := name
		for n := counts[name]; used[column]; n++ {
			column = name + "." + strconv.Itoa(n)
		}

		counts[name]++
		used[column] = true
		columns[i] = column
	}

	return columns
}
