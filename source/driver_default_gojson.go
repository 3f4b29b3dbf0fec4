// Package source installs the go-json token driver as the default JSON
// driver when imported.
package source

import (
	"github.com/reoring/jsonframe"
	drvgojson "github.com/reoring/jsonframe/source/gojson"
)

// init in a separate package to avoid import cycle in root. This sets go-json as default driver.
func init() { jsonframe.SetJSONDriver(drvgojson.Driver()) }
