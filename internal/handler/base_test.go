package handler

import (
	"testing"

	"github.com/deppfellow/items-api/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestNewRequestAllocatesPerCall(t *testing.T) {
	template := &model.UpdateItemPayload{ID: "stale", Name: "stale"}

	first := newRequest(template)
	second := newRequest(template)

	assert.NotSame(t, template, first)
	assert.NotSame(t, first, second)
	assert.Empty(t, first.ID)
	assert.Empty(t, first.Name)
}
