package feedback

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSVHeadersAreCaseInsensitive(t *testing.T) {
	data := []byte("\xEF\xBB\xBF Candidate_Name ,Interviewer,INTERVIEW_FEEDBACK,candidate_id\n" +
		"Ada,Grace,\"Strong, clear answers\",c-1\n" +
		",Linus,Solid systems knowledge\n")

	rows, err := ParseCSV(data)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Ada", rows[0].CandidateName)
	assert.Equal(t, "Grace", rows[0].Interviewer)
	assert.Equal(t, "Strong, clear answers", rows[0].Feedback)
	assert.Equal(t, "c-1", rows[0].CandidateID)

	assert.Equal(t, "Unknown", rows[1].CandidateName)
	assert.Equal(t, "", rows[1].CandidateID)
	assert.Equal(t, 3, rows[1].Line)
}

func TestParseCSVKeepsBlankFeedbackRows(t *testing.T) {
	data := []byte("candidate_name,interview_feedback\nA,good\nB,   \nC,great\n")

	rows, err := ParseCSV(data)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "", rows[1].Feedback)
}

func TestParseCSVMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "empty", data: ""},
		{name: "missing feedback column", data: "candidate_name,notes\nA,hello\n"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCSV([]byte(tt.data))
			if !errors.Is(err, ErrMalformedCSV) {
				t.Fatalf("expected ErrMalformedCSV, got %v", err)
			}
		})
	}
}
