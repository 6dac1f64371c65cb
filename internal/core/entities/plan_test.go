package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanOptions_HasSeedOverride(t *testing.T) {
	var opts *PlanOptions
	assert.False(t, opts.HasSeedOverride())

	opts = &PlanOptions{}
	assert.False(t, opts.HasSeedOverride())

	opts.Seeds = []int64{1000, 1001}
	assert.True(t, opts.HasSeedOverride())
}
