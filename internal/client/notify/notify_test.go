package notify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterFormatsOnePerLine(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	Success(w, "Uploaded", "2 file(s) uploaded")
	Error(w, "Delete failed", "not yours")

	assert.Equal(t,
		"[success] Uploaded: 2 file(s) uploaded\n[error] Delete failed: not yours\n",
		buf.String())
}

func TestRecorderCapturesAndFilters(t *testing.T) {
	r := &Recorder{}
	Success(r, "A", "a")
	Warning(r, "B", "b")
	Error(r, "C", "c")

	require.Len(t, r.All(), 3)

	errs := r.ByKind(KindError)
	require.Len(t, errs, 1)
	assert.Equal(t, "C", errs[0].Title)

	// All returns a copy.
	r.All()[0].Title = "mutated"
	assert.Equal(t, "A", r.All()[0].Title)
}
