package moderation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{input: "30s", want: 30 * time.Second},
		{input: "30m", want: 30 * time.Minute},
		{input: "2h", want: 2 * time.Hour},
		{input: "1d", want: 24 * time.Hour},
		{input: "7d", want: 7 * 24 * time.Hour},
		{input: "10M", want: 10 * time.Minute},
		{input: "2x", wantErr: true},
		{input: "h", wantErr: true},
		{input: "", wantErr: true},
		{input: "m30", wantErr: true},
		{input: "0m", wantErr: true},
		{input: "-5m", wantErr: true},
		{input: "1.5h", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDuration(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidDuration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
