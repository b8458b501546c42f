package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/postguard/postguard/pkg/types"
)

func TestMaxSeverity(t *testing.T) {
	assert.Equal(t, types.SeverityCritical, types.MaxSeverity(types.SeverityLow, types.SeverityCritical))
	assert.Equal(t, types.SeverityHigh, types.MaxSeverity(types.SeverityHigh, types.SeverityMedium))
	assert.Equal(t, types.SeverityLow, types.MaxSeverity(types.SeverityLow, types.SeverityLow))
}

func TestMaxAction(t *testing.T) {
	assert.Equal(t, types.ActionBlock, types.MaxAction(types.ActionCensor, types.ActionBlock))
	assert.Equal(t, types.ActionFlag, types.MaxAction(types.ActionFlag, types.ActionCensor))
	assert.Equal(t, types.ActionCensor, types.MaxAction(types.ActionApprove, types.ActionCensor))
}

func TestSeverityIsValid(t *testing.T) {
	assert.True(t, types.SeverityLow.IsValid())
	assert.True(t, types.SeverityCritical.IsValid())
	assert.False(t, types.Severity("extreme").IsValid())
}

func TestActionIsValid(t *testing.T) {
	assert.True(t, types.ActionBlock.IsValid())
	assert.False(t, types.Action("delete").IsValid())
}

func TestContentTypeIsValid(t *testing.T) {
	assert.True(t, types.ContentTypeTopic.IsValid())
	assert.True(t, types.ContentTypeReply.IsValid())
	assert.True(t, types.ContentTypeMessage.IsValid())
	assert.False(t, types.ContentType("banner").IsValid())
}
