package feedback

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	colCandidateID   = "candidate_id"
	colCandidateName = "candidate_name"
	colInterviewer   = "interviewer"
	colFeedback      = "interview_feedback"

	unknownCandidate = "Unknown"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseCSV reads feedback rows keyed by header name. Header matching ignores case
// and surrounding whitespace. Only the interview_feedback column is required.
func ParseCSV(data []byte) ([]Row, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty file", ErrMalformedCSV)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrMalformedCSV, err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}
	if _, ok := index[colFeedback]; !ok {
		return nil, fmt.Errorf("%w: missing %s column", ErrMalformedCSV, colFeedback)
	}

	field := func(rec []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var rows []Row
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
		}
		line, _ := r.FieldPos(0)

		name := field(rec, colCandidateName)
		if name == "" {
			name = unknownCandidate
		}
		rows = append(rows, Row{
			Line:          line,
			CandidateID:   field(rec, colCandidateID),
			CandidateName: name,
			Interviewer:   field(rec, colInterviewer),
			Feedback:      field(rec, colFeedback),
		})
	}
	return rows, nil
}
