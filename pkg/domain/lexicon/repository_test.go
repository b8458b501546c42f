package lexicon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/postguard/postguard/pkg/domain/lexicon"
	"github.com/postguard/postguard/pkg/types"
)

func TestValidate(t *testing.T) {
	valid := &lexicon.Entry{
		Term:     "badword",
		Severity: types.SeverityHigh,
		Action:   types.ActionBlock,
	}
	assert.NoError(t, lexicon.Validate(valid))

	empty := &lexicon.Entry{Severity: types.SeverityHigh, Action: types.ActionBlock}
	assert.ErrorIs(t, lexicon.Validate(empty), lexicon.ErrEmptyTerm)

	badSeverity := &lexicon.Entry{Term: "x", Severity: "extreme", Action: types.ActionBlock}
	assert.ErrorIs(t, lexicon.Validate(badSeverity), lexicon.ErrInvalidSeverity)

	badAction := &lexicon.Entry{Term: "x", Severity: types.SeverityLow, Action: types.ActionApprove}
	assert.ErrorIs(t, lexicon.Validate(badAction), lexicon.ErrInvalidAction)
}

func TestIsEnforceable(t *testing.T) {
	enforceable := lexicon.Entry{Term: "x", Action: types.ActionCensor, Active: true}
	assert.True(t, enforceable.IsEnforceable())

	inactive := lexicon.Entry{Term: "x", Action: types.ActionCensor, Active: false}
	assert.False(t, inactive.IsEnforceable())

	approve := lexicon.Entry{Term: "x", Action: types.ActionApprove, Active: true}
	assert.False(t, approve.IsEnforceable())

	empty := lexicon.Entry{Action: types.ActionCensor, Active: true}
	assert.False(t, empty.IsEnforceable())
}
