package tui

import (
	"github.com/Veraticus/the-wheel-must-spin/internal/analysis"
	"github.com/Veraticus/the-wheel-must-spin/internal/engine"
	"github.com/Veraticus/the-wheel-must-spin/internal/model"
)

type spinsRecordedMsg struct {
	err      error
	outcomes []model.Outcome
}

type undoneMsg struct {
	err     error
	outcome *model.Outcome
}

type reportLoadedMsg struct {
	err    error
	report *analysis.Report
}

type statusLoadedMsg struct {
	err    error
	status *engine.Status
}
