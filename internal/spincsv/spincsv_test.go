package spincsv

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/the-wheel-must-spin/internal/common"
	"github.com/Veraticus/the-wheel-must-spin/internal/model"
)

func TestWrite(t *testing.T) {
	at := time.Date(2026, 2, 1, 20, 30, 0, 0, time.UTC)
	outcomes := []model.Outcome{
		{ID: 1, Number: 17, DealerID: "Anna", RecordedAt: at},
		{ID: 2, Number: 0, DealerID: "Default", RecordedAt: at.Add(time.Minute)},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, outcomes))

	assert.Equal(t,
		"Timestamp,DealerID,Number\n"+
			"2026-02-01T20:30:00Z,Anna,17\n"+
			"2026-02-01T20:31:00Z,Default,0\n",
		buf.String())
}

func TestWriteThenRead(t *testing.T) {
	at := time.Date(2026, 2, 1, 20, 30, 0, 0, time.UTC)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []model.Outcome{
		{Number: 32, DealerID: "Anna", RecordedAt: at},
		{Number: 15, DealerID: "Ben", RecordedAt: at.Add(time.Second)},
	}))

	got, err := Read(&buf, model.DefaultDealerID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []int{32, 15}, model.Numbers(got))
	assert.Equal(t, "Ben", got[1].DealerID)
	assert.True(t, got[0].RecordedAt.Equal(at))
}

func TestRead(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      []int
		wantErr   string
		wantValid bool
	}{
		{
			name:  "without header",
			input: "2026-02-01T20:30:00Z,Anna,7\n2026-02-01 20:31:00,Anna,8\n",
			want:  []int{7, 8},
		},
		{
			name:  "empty dealer and timestamp",
			input: "Timestamp,DealerID,Number\n,,36\n",
			want:  []int{36},
		},
		{
			name:  "empty file",
			input: "",
		},
		{
			name:      "number out of range",
			input:     "Timestamp,DealerID,Number\n,Anna,37\n",
			wantErr:   "line 2",
			wantValid: true,
		},
		{
			name:      "bad timestamp",
			input:     "yesterday,Anna,5\n",
			wantErr:   "line 1",
			wantValid: true,
		},
		{
			name:    "wrong column count",
			input:   "Anna,5\n",
			wantErr: "failed to read csv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(strings.NewReader(tt.input), "Default")
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				if tt.wantValid {
					assert.True(t, errors.Is(err, common.ErrValidation))
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, numbersOrNil(got))
			for _, o := range got {
				assert.NotEmpty(t, o.DealerID)
			}
		})
	}
}

func numbersOrNil(outcomes []model.Outcome) []int {
	if len(outcomes) == 0 {
		return nil
	}
	return model.Numbers(outcomes)
}
