//go:build gojson

package jsonframe_test

import (
	"github.com/reoring/jsonframe"
	drv "github.com/reoring/jsonframe/source/gojson"
)

func init() {
	jsonframe.SetJSONDriver(drv.Driver())
}
