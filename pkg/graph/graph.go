package graph

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/matzehuels/sankey/pkg/errors"
)

// =============================================================================
// Document Serialization API
// =============================================================================

// MarshalDocument converts a Document to pretty-printed JSON bytes.
func MarshalDocument(d Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteDocument(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDocument writes a Document as JSON to an io.Writer.
func WriteDocument(d Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadDocument decodes a diagram from r. Besides the full document form
// {"edges": [...], "config": {...}} a bare JSON array of edges is accepted.
func ReadDocument(r io.Reader) (Document, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "empty input")
	}

	var d Document
	dec := json.NewDecoder(br)
	if first == '[' {
		err = dec.Decode(&d.Edges)
	} else {
		err = dec.Decode(&d)
	}
	if err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode edges")
	}
	if err := d.Validate(); err != nil {
		return Document{}, err
	}
	return d, nil
}

// ReadCSV decodes edges from CSV with a header row. The from, to and weight
// columns are required; color, color_from, color_to and hover_color are
// optional. Weights that do not parse become zero and the edge is dropped
// by the layout like any other edge without flow.
func ReadCSV(r io.Reader) (Document, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read csv header")
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, req := range []string{"from", "to", "weight"} {
		if _, ok := col[req]; !ok {
			return Document{}, errors.New(errors.ErrCodeInvalidInput, "csv header missing %q column", req)
		}
	}

	field := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	d := Document{Edges: []Edge{}}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read csv")
		}
		w, _ := strconv.ParseFloat(field(rec, "weight"), 64)
		d.Edges = append(d.Edges, Edge{
			From:       field(rec, "from"),
			To:         field(rec, "to"),
			Weight:     w,
			Color:      field(rec, "color"),
			ColorFrom:  field(rec, "color_from"),
			ColorTo:    field(rec, "color_to"),
			HoverColor: field(rec, "hover_color"),
		})
	}
	if err := d.Validate(); err != nil {
		return Document{}, err
	}
	return d, nil
}

// ReadDocumentFile reads a diagram from a .json or .csv file.
func ReadDocumentFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "input %s", path)
		}
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return ReadCSV(f)
	}
	return ReadDocument(f)
}

// WriteDocumentFile writes a Document to a JSON file.
func WriteDocumentFile(d Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteDocument(d, f)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b, br.UnreadByte()
	}
}
