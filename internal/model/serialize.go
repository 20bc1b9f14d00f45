package model

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FieldDelimiter separates the fields of a record line.
const FieldDelimiter = "|"

// fieldCount is the number of fields on a record line.
const fieldCount = 5

// Parse error kinds, usable with errors.Is.
var (
	ErrMalformedCount     = errors.New("malformed-count")
	ErrMalformedLine      = errors.New("malformed-line")
	ErrFieldCountMismatch = errors.New("field-count-mismatch")
	ErrNumericParse       = errors.New("numeric-parse-failure")
)

// ParseError describes why an employees file could not be decoded.
type ParseError struct {
	Kind error  // one of the Err* kinds above
	Line int    // 1-based line number, the header is line 1
	Msg  string // detail
}

func (e *ParseError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("line %d: %s: %s", e.Line, e.Kind, e.Msg)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Kind)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

// Serialize renders records in the employees.txt format.
func Serialize(records []Employee) []byte {
	var buf bytes.Buffer
	// bytes.Buffer writes never fail
	_ = Encode(&buf, records)
	return buf.Bytes()
}

// Encode writes a count line followed by one line per record.
// Money fields are written with two decimal places.
// Names are assumed not to contain the delimiter or a line break.
func Encode(w io.Writer, records []Employee) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", len(records))
	for _, e := range records {
		fmt.Fprintf(bw, "%d%s%s%s%s%s%s%s%s\n",
			e.ID, FieldDelimiter,
			e.Name, FieldDelimiter,
			e.BasicSalary.StringFixed(2), FieldDelimiter,
			e.Tax.StringFixed(2), FieldDelimiter,
			e.NetSalary.StringFixed(2))
	}
	return bw.Flush()
}

// Deserialize parses data in the employees.txt format.
func Deserialize(data []byte) ([]Employee, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads the declared record count and then exactly that many record
// lines. Anything after the last declared record is ignored.
func Decode(r io.Reader) ([]Employee, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read header: %w", err)
		}
		return nil, &ParseError{Kind: ErrMalformedCount, Line: 1, Msg: "missing record count"}
	}
	header := strings.TrimSpace(scanner.Text())
	count, err := strconv.Atoi(header)
	if err != nil {
		return nil, &ParseError{Kind: ErrMalformedCount, Line: 1, Msg: fmt.Sprintf("%q is not a number", header)}
	}
	if count < 0 {
		return nil, &ParseError{Kind: ErrMalformedCount, Line: 1, Msg: fmt.Sprintf("negative count %d", count)}
	}

	records := make([]Employee, 0, min(count, 1024))
	for i := 0; i < count; i++ {
		lineNo := i + 2
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return nil, fmt.Errorf("failed to read line %d: %w", lineNo, err)
			}
			return nil, &ParseError{
				Kind: ErrMalformedLine,
				Line: lineNo,
				Msg:  fmt.Sprintf("expected %d records, found %d", count, i),
			}
		}
		e, err := parseLine(strings.TrimRight(scanner.Text(), "\r"), lineNo)
		if err != nil {
			return nil, err
		}
		records = append(records, e)
	}

	return records, nil
}

// parseLine decodes a single id|name|basic|tax|net line.
func parseLine(line string, lineNo int) (Employee, error) {
	if strings.TrimSpace(line) == "" {
		return Employee{}, &ParseError{Kind: ErrMalformedLine, Line: lineNo, Msg: "empty line"}
	}

	fields := strings.Split(line, FieldDelimiter)
	if len(fields) != fieldCount {
		return Employee{}, &ParseError{
			Kind: ErrFieldCountMismatch,
			Line: lineNo,
			Msg:  fmt.Sprintf("expected %d fields, got %d", fieldCount, len(fields)),
		}
	}

	id, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return Employee{}, &ParseError{Kind: ErrNumericParse, Line: lineNo, Msg: fmt.Sprintf("id %q", fields[0])}
	}

	var money [3]decimal.Decimal
	names := [3]string{"basic salary", "tax", "net salary"}
	for i := range money {
		raw := strings.TrimSpace(fields[i+2])
		d, err := ParseAmount(raw)
		if err != nil {
			return Employee{}, &ParseError{Kind: ErrNumericParse, Line: lineNo, Msg: fmt.Sprintf("%s %q", names[i], raw)}
		}
		money[i] = d
	}

	return Employee{
		ID:          id,
		Name:        fields[1],
		BasicSalary: money[0],
		Tax:         money[1],
		NetSalary:   money[2],
	}, nil
}
