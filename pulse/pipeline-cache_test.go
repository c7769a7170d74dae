package pulse

import (
	"errors"
	"testing"

	"github.com/oliverbestmann/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errShader = errors.New("shader does not compile")

type countingConfig struct {
	Name string
	Fail bool
}

var specializeCalls = map[string]int{}

func (conf countingConfig) Specialize(dev *wgpu.Device) (*wgpu.RenderPipeline, error) {
	specializeCalls[conf.Name]++

	if conf.Fail {
		return nil, errShader
	}

	return &wgpu.RenderPipeline{}, nil
}

func TestPipelineCacheReusesPipelines(t *testing.T) {
	cache := NewPipelineCache[countingConfig](&Context{})

	first, err := cache.Get(countingConfig{Name: "reuse"})
	require.NoError(t, err)

	second, err := cache.Get(countingConfig{Name: "reuse"})
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, specializeCalls["reuse"])
}

func TestPipelineCacheReturnsSpecializeErrors(t *testing.T) {
	cache := NewPipelineCache[countingConfig](&Context{})

	conf := countingConfig{Name: "broken", Fail: true}

	pipeline, err := cache.Get(conf)
	assert.Nil(t, pipeline)
	assert.ErrorIs(t, err, errShader)
	assert.ErrorContains(t, err, "build pipeline")

	// failures are not cached, the next call tries again
	_, err = cache.Get(conf)
	assert.ErrorIs(t, err, errShader)
	assert.Equal(t, 2, specializeCalls["broken"])
}
