package groupfile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/the-wheel-must-spin/internal/common"
	"github.com/Veraticus/the-wheel-must-spin/internal/model"
)

func TestEncode(t *testing.T) {
	groups := []model.Group{
		model.MustGroup("Lucky", model.CategoryCustom, []int{7, 17, 27}),
		model.MustGroup("Zero", model.CategoryCustom, []int{0}),
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, groups))

	out := buf.String()
	assert.Contains(t, out, "version: 1")
	assert.Contains(t, out, "name: Lucky")
	assert.Contains(t, out, "numbers: [7, 17, 27]")

	decoded, err := Decode(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, groups, decoded)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []model.Group
		wantErr error
	}{
		{
			name:  "normalizes numbers",
			input: "version: 1\ngroups:\n  - name: \" Picks \"\n    numbers: [17, 5, 5]\n",
			want:  []model.Group{model.MustGroup("Picks", model.CategoryCustom, []int{5, 17})},
		},
		{
			name:  "empty document",
			input: "",
			want:  nil,
		},
		{
			name:    "duplicate names",
			input:   "groups:\n  - name: A\n    numbers: [1]\n  - name: a\n    numbers: [2]\n",
			wantErr: common.ErrValidation,
		},
		{
			name:    "number out of range",
			input:   "groups:\n  - name: A\n    numbers: [37]\n",
			wantErr: common.ErrValidation,
		},
		{
			name:    "missing numbers",
			input:   "groups:\n  - name: A\n",
			wantErr: common.ErrValidation,
		},
		{
			name:    "newer version",
			input:   "version: 2\ngroups: []\n",
			wantErr: ErrUnsupportedVersion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(strings.NewReader(tt.input))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode_RejectsUnknownFields(t *testing.T) {
	_, err := Decode(strings.NewReader("groups:\n  - name: A\n    nums: [1]\n"))
	assert.Error(t, err)
}
