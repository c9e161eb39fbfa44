package fuzzy

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestOptions_Validate(t *testing.T) {
	assert.NoError(t, DefaultOptions().Validate())

	mutations := map[string]func(*Options){
		"threshold low":      func(o *Options) { o.Threshold = -0.1 },
		"threshold high":     func(o *Options) { o.Threshold = 1.1 },
		"negative location":  func(o *Options) { o.Location = -1 },
		"negative distance":  func(o *Options) { o.Distance = -1 },
		"zero pattern len":   func(o *Options) { o.MaxPatternLength = 0 },
		"huge pattern len":   func(o *Options) { o.MaxPatternLength = 65 },
		"zero min match len": func(o *Options) { o.MinMatchCharLength = 0 },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			o := DefaultOptions()
			mutate(&o)
			assert.True(t, errors.Is(o.Validate(), ErrInvalidOptions))
		})
	}
}

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	assert.Equal(t, 0.2, o.Threshold)
	assert.Equal(t, 0, o.Location)
	assert.Equal(t, 100, o.Distance)
	assert.Equal(t, 32, o.MaxPatternLength)
	assert.Equal(t, 1, o.MinMatchCharLength)
	assert.False(t, o.CaseSensitive)
}
