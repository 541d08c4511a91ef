package samples

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/segmentio/encoding/json"
)

var (
	// ErrUnreadable is returned when the sample source can't be opened or read.
	ErrUnreadable = errors.New("sample source is unreadable")

	// ErrMalformed is returned for records that are not x,y,value triples.
	ErrMalformed = errors.New("malformed sample record")
)

const fieldsPerRecord = 3

// Parse reads headerless x,y,value records, one per line. Blank lines
// and lines starting with '#' are skipped. Empty or non-finite fields
// are malformed.
func Parse(r io.Reader) (Set, error) {
	var points []Sample
	if err := gocsv.UnmarshalCSVWithoutHeaders(newReader(r), &points); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return Set{}, nil
		}
		if errors.Is(err, ErrMalformed) {
			return Set{}, err
		}
		return Set{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if err := checkFinite(points); err != nil {
		return Set{}, err
	}
	return NewSet(points), nil
}

// LoadFile loads a sample file. Files ending in .json hold an array of
// {"x", "y", "value"} objects, anything else is parsed as CSV.
func LoadFile(path string) (set Set, err error) {
	f, err := os.Open(path)
	if err != nil {
		return Set{}, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	defer f.Close()

	if !isJSON(path) {
		return Parse(f)
	}

	bytes, err := io.ReadAll(f)
	if err != nil {
		return Set{}, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	if len(strings.TrimSpace(string(bytes))) == 0 {
		return Set{}, nil
	}
	var records []jsonRecord
	if err = json.Unmarshal(bytes, &records); err != nil {
		return Set{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	points := make([]Sample, len(records))
	for i, rec := range records {
		if rec.X == nil || rec.Y == nil || rec.Value == nil {
			return Set{}, fmt.Errorf("%w: record %d is missing x, y or value", ErrMalformed, i)
		}
		points[i] = Sample{X: *rec.X, Y: *rec.Y, Value: *rec.Value}
	}
	if err = checkFinite(points); err != nil {
		return Set{}, err
	}
	return NewSet(points), nil
}

// jsonRecord tells absent fields apart from zeros.
type jsonRecord struct {
	X     *float64 `json:"x"`
	Y     *float64 `json:"y"`
	Value *float64 `json:"value"`
}

// SaveFile writes set to path using the format implied by its extension.
func SaveFile(path string, set Set) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	points := set.Slice()
	if isJSON(path) {
		var bytes []byte
		if bytes, err = json.Marshal(points); err != nil {
			return
		}
		_, err = f.Write(bytes)
		return
	}
	if len(points) == 0 {
		return
	}
	return gocsv.MarshalWithoutHeaders(points, f)
}

func newReader(r io.Reader) *recordReader {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = fieldsPerRecord
	reader.TrimLeadingSpace = true
	return &recordReader{reader}
}

// recordReader rejects records with empty fields, which gocsv would
// otherwise decode as 0.
type recordReader struct {
	*csv.Reader
}

func (r *recordReader) Read() ([]string, error) {
	record, err := r.Reader.Read()
	if err != nil {
		return record, err
	}
	for i, field := range record {
		if strings.TrimSpace(field) == "" {
			line, _ := r.FieldPos(i)
			return nil, fmt.Errorf("%w: line %d has an empty field", ErrMalformed, line)
		}
	}
	return record, nil
}

func (r *recordReader) ReadAll() (records [][]string, err error) {
	for {
		record, err := r.Read()
		if err == io.EOF {
			return records, nil
		} else if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
}

func checkFinite(points []Sample) error {
	for i, p := range points {
		if !finite(p.X) || !finite(p.Y) || !finite(p.Value) {
			return fmt.Errorf("%w: record %d is not finite", ErrMalformed, i)
		}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
