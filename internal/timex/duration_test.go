package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"string form", `"300ms"`, 300 * time.Millisecond, false},
		{"integer nanoseconds", `3000000000`, 3 * time.Second, false},
		{"bad string", `"whenever"`, 0, true},
		{"bad type", `true`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.in), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration)
		})
	}
}

func TestDurationMarshalRoundTrip(t *testing.T) {
	d := Duration{Duration: 300 * time.Millisecond}
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"300ms"`, string(b))
}
