package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/Veraticus/the-wheel-must-spin/internal/common"
	"github.com/Veraticus/the-wheel-must-spin/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestValidateContext(t *testing.T) {
	tests := []struct {
		ctx     context.Context
		name    string
		wantErr bool
	}{
		{
			name:    "valid context",
			ctx:     context.Background(),
			wantErr: false,
		},
		{
			name:    "nil context",
			ctx:     nil,
			wantErr: true,
		},
		{
			name: "canceled context still valid",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			}(),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateContext(tt.ctx)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNilContext)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateString(t *testing.T) {
	tests := []struct {
		name    string
		str     string
		wantErr bool
	}{
		{name: "valid string", str: "test"},
		{name: "empty string", str: "", wantErr: true},
		{name: "whitespace only", str: "   ", wantErr: true},
		{name: "string with spaces", str: "  test  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateString(tt.str, "param")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrEmptyString)
				assert.True(t, strings.Contains(err.Error(), "param"))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateOutcomes(t *testing.T) {
	tests := []struct {
		name     string
		outcomes []model.Outcome
		target   error
	}{
		{name: "nil", outcomes: nil, target: ErrNilParameter},
		{name: "empty", outcomes: []model.Outcome{}, target: ErrEmptySlice},
		{name: "out of range", outcomes: []model.Outcome{{Number: 37, DealerID: "A"}}, target: common.ErrValidation},
		{name: "missing dealer", outcomes: []model.Outcome{{Number: 3}}, target: common.ErrValidation},
		{name: "valid", outcomes: []model.Outcome{{Number: 0, DealerID: "A"}, {Number: 36, DealerID: "B"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateOutcomes(tt.outcomes)
			if tt.target == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestValidateSettingKey(t *testing.T) {
	assert.NoError(t, validateSettingKey("dealer.current"))
	assert.NoError(t, validateSettingKey("analysis.hot_limit"))
	assert.ErrorIs(t, validateSettingKey(""), ErrEmptyString)
	assert.ErrorIs(t, validateSettingKey("Dealer"), ErrInvalidSetting)
	assert.ErrorIs(t, validateSettingKey("a b"), ErrInvalidSetting)
}
