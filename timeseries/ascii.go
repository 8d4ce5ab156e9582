package timeseries

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ReadOptions holds options for loading column-oriented light-curve files.
type ReadOptions struct {
	Delimiter   rune // field delimiter (0 means whitespace-delimited)
	SkipRows    int  // number of rows to skip at the start (headers)
	TimeColumn  int  // column index of the sample time
	ValueColumn int  // column index of the flux
	ErrorColumn int  // column index of the flux error (-1 when absent)
}

// DefaultReadOptions returns options for the common three-column layout
// used by the SMA and ALMA exports: time, flux, flux error, comma-separated
// with one header line.
func DefaultReadOptions() *ReadOptions {
	return &ReadOptions{
		Delimiter:   ',',
		SkipRows:    1,
		TimeColumn:  0,
		ValueColumn: 1,
		ErrorColumn: 2,
	}
}

// LoadFile loads a light curve from a file.
func LoadFile(filename string, opts *ReadOptions) (*Series, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	s, err := LoadFromReader(file, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	s.Name = filename
	return s, nil
}

// LoadFromReader loads a light curve from an io.Reader.
func LoadFromReader(r io.Reader, opts *ReadOptions) (*Series, error) {
	if opts == nil {
		opts = DefaultReadOptions()
	}
	if opts.Delimiter == 0 {
		return loadWhitespace(r, opts)
	}
	return loadDelimited(r, opts)
}

func loadDelimited(r io.Reader, opts *ReadOptions) (*Series, error) {
	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, err
		}
	}

	var times, values, errs []float64
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := appendRow(record, opts, &times, &values, &errs); err != nil {
			return nil, err
		}
	}

	return assemble(times, values, errs, opts)
}

func loadWhitespace(r io.Reader, opts *ReadOptions) (*Series, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var times, values, errs []float64
	row := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		row++
		if row <= opts.SkipRows || line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := appendRow(strings.Fields(line), opts, &times, &values, &errs); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return assemble(times, values, errs, opts)
}

func appendRow(fields []string, opts *ReadOptions, times, values, errs *[]float64) error {
	need := opts.TimeColumn
	if opts.ValueColumn > need {
		need = opts.ValueColumn
	}
	if opts.ErrorColumn > need {
		need = opts.ErrorColumn
	}
	if len(fields) <= need {
		return fmt.Errorf("row has %d columns, need at least %d", len(fields), need+1)
	}

	t, err := strconv.ParseFloat(strings.TrimSpace(fields[opts.TimeColumn]), 64)
	if err != nil {
		return fmt.Errorf("bad time %q: %w", fields[opts.TimeColumn], err)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(fields[opts.ValueColumn]), 64)
	if err != nil {
		return fmt.Errorf("bad flux %q: %w", fields[opts.ValueColumn], err)
	}

	*times = append(*times, t)
	*values = append(*values, v)

	if opts.ErrorColumn >= 0 {
		e, err := strconv.ParseFloat(strings.TrimSpace(fields[opts.ErrorColumn]), 64)
		if err != nil {
			return fmt.Errorf("bad flux error %q: %w", fields[opts.ErrorColumn], err)
		}
		*errs = append(*errs, e)
	}
	return nil
}

func assemble(times, values, errs []float64, opts *ReadOptions) (*Series, error) {
	if len(values) == 0 {
		return nil, errors.New("no valid data found")
	}
	if opts.ErrorColumn >= 0 {
		return NewWithErrors(times, values, errs)
	}
	return New(times, values)
}

// LoadSMA reads an SMA light curve: comma-separated columns
// time (UT hours), flux (Jy), flux error, with one header line.
func LoadSMA(filename string) (*Series, error) {
	return LoadFile(filename, DefaultReadOptions())
}

// LoadALMA reads an ALMA light curve. The exported files share the SMA
// column layout.
func LoadALMA(filename string) (*Series, error) {
	return LoadFile(filename, DefaultReadOptions())
}

// LoadVarTable reads a simulation variability table (*_var.out):
// whitespace-delimited columns with code-unit time first and flux second,
// no error column. Times are left in code units; multiply by
// catalog.HoursPerStep to convert to hours.
func LoadVarTable(filename string) (*Series, error) {
	return LoadFile(filename, &ReadOptions{
		Delimiter:   0,
		TimeColumn:  0,
		ValueColumn: 1,
		ErrorColumn: -1,
	})
}

// SaveCSV writes a series to a CSV file with a time,flux[,flux_err] header.
func SaveCSV(s *Series, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	defer writer.Flush()

	if s.Errors != nil {
		writer.WriteString("time,flux,flux_err\n")
	} else {
		writer.WriteString("time,flux\n")
	}

	for i := range s.Values {
		writer.WriteString(strconv.FormatFloat(s.Times[i], 'f', -1, 64))
		writer.WriteString(",")
		writer.WriteString(strconv.FormatFloat(s.Values[i], 'f', -1, 64))
		if s.Errors != nil {
			writer.WriteString(",")
			writer.WriteString(strconv.FormatFloat(s.Errors[i], 'f', -1, 64))
		}
		writer.WriteString("\n")
	}

	return nil
}
