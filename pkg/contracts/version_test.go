package contracts

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullVersion(t *testing.T) {
	v := FullVersion()
	assert.True(t, strings.HasPrefix(v, Version+" "))
	assert.Contains(t, v, "data "+DataFormatVersion)
	assert.Contains(t, v, runtime.Version())
}
