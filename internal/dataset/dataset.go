// Package dataset holds the GDP series model and its JSON document codec.
package dataset

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

var (
	// ErrFetch matches every failure to retrieve or decode a dataset.
	ErrFetch     = errors.New("dataset fetch failed")
	ErrMalformed = errors.New("malformed dataset")
	ErrUnordered = errors.New("data points are not in ascending date order")
	ErrNegative  = errors.New("data point has a negative value")
)

// FetchError describes a failed load. It matches ErrFetch and unwraps to the cause.
type FetchError struct {
	Source string
	Op     string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Source, e.Err)
}

func (e *FetchError) Unwrap() []error { return []error{ErrFetch, e.Err} }

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"}

// DataPoint is one observation. On the wire it is a [dateString, number] pair.
type DataPoint struct {
	Date  time.Time
	Value float64
}

func (p *DataPoint) UnmarshalJSON(b []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("%w: data point %s: %v", ErrMalformed, b, err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("%w: data point %s: want 2 elements, got %d", ErrMalformed, b, len(pair))
	}

	var raw string
	if err := json.Unmarshal(pair[0], &raw); err != nil {
		return fmt.Errorf("%w: data point date %s: %v", ErrMalformed, pair[0], err)
	}
	date, err := ParseDate(raw)
	if err != nil {
		return err
	}

	var value float64
	if err := json.Unmarshal(pair[1], &value); err != nil {
		return fmt.Errorf("%w: data point value %s: %v", ErrMalformed, pair[1], err)
	}

	p.Date = date
	p.Value = value
	return nil
}

func (p DataPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{p.Date.UTC().Format("2006-01-02"), p.Value})
}

// ParseDate accepts date-only strings (UTC midnight) and RFC 3339 timestamps.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unrecognised date %q", ErrMalformed, s)
}

// Series is the decoded document. Points keep the document order.
type Series struct {
	Name        string      `json:"name,omitempty"`
	Description string      `json:"description,omitempty"`
	Points      []DataPoint `json:"data"`
}

// Decode reads a {"data": [[date, value], ...]} document. A missing data field is malformed.
func Decode(r io.Reader) (Series, error) {
	var doc struct {
		Name        string           `json:"name"`
		Description string           `json:"description"`
		Data        *json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Series{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if doc.Data == nil || bytes.Equal(bytes.TrimSpace(*doc.Data), []byte("null")) {
		return Series{}, fmt.Errorf("%w: missing data field", ErrMalformed)
	}

	var points []DataPoint
	if err := json.Unmarshal(*doc.Data, &points); err != nil {
		if errors.Is(err, ErrMalformed) {
			return Series{}, err
		}
		return Series{}, fmt.Errorf("%w: data field: %v", ErrMalformed, err)
	}

	return Series{Name: doc.Name, Description: doc.Description, Points: points}, nil
}

func (s Series) Len() int { return len(s.Points) }

// Extent returns the earliest and latest dates. Zero times for an empty series.
func (s Series) Extent() (time.Time, time.Time) {
	if len(s.Points) == 0 {
		return time.Time{}, time.Time{}
	}
	lo, hi := s.Points[0].Date, s.Points[0].Date
	for _, p := range s.Points[1:] {
		if p.Date.Before(lo) {
			lo = p.Date
		}
		if p.Date.After(hi) {
			hi = p.Date
		}
	}
	return lo, hi
}

func (s Series) MaxValue() float64 {
	var max float64
	for i, p := range s.Points {
		if i == 0 || p.Value > max {
			max = p.Value
		}
	}
	return max
}

// Validate checks ascending date order and non-negative values.
func (s Series) Validate() error {
	for i, p := range s.Points {
		if p.Value < 0 {
			return fmt.Errorf("%w: %s = %g", ErrNegative, p.Date.Format("2006-01-02"), p.Value)
		}
		if i > 0 && p.Date.Before(s.Points[i-1].Date) {
			return fmt.Errorf("%w: %s follows %s", ErrUnordered,
				p.Date.Format("2006-01-02"), s.Points[i-1].Date.Format("2006-01-02"))
		}
	}
	return nil
}

// FileSource loads a series from a local copy of the document.
type FileSource struct {
	Path string
}

func (f FileSource) Load(ctx context.Context) (Series, error) {
	if err := ctx.Err(); err != nil {
		return Series{}, err
	}
	file, err := os.Open(f.Path)
	if err != nil {
		return Series{}, &FetchError{Source: f.String(), Op: "open", Err: err}
	}
	defer file.Close()

	series, err := Decode(file)
	if err != nil {
		return Series{}, &FetchError{Source: f.String(), Op: "decode", Err: err}
	}
	return series, nil
}

func (f FileSource) String() string { return "file://" + f.Path }
