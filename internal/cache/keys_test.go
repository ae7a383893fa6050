package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCacheKey(t *testing.T) {
	assert.Equal(t, "campusquiz:quiz:list:STEM", GenerateCacheKey("quiz", "list", "STEM"))
	assert.Equal(t, "campusquiz:quiz:list:all:page1_size20", GenerateCacheKey("quiz", "list", "all", "page1", "size20"))
}
