package taglib

import (
	"github.com/lwoggardner/taglib-simple/internal/types"
)

// AudioProperties is an alias to types.AudioProperties.
// Re-exported from internal/types to keep the public API in one package.
type AudioProperties = types.AudioProperties

// ReadStyle is an alias to types.ReadStyle.
// Re-exported from internal/types to keep the public API in one package.
type ReadStyle = types.ReadStyle

// Audio properties read styles, re-exported from internal/types.
const (
	ReadNone     = types.ReadNone
	ReadFast     = types.ReadFast
	ReadAverage  = types.ReadAverage
	ReadAccurate = types.ReadAccurate
)

// ParseReadStyle parses "none", "fast", "average" or "accurate" into a
// ReadStyle.
func ParseReadStyle(s string) (ReadStyle, error) { return types.ParseReadStyle(s) }
