// Package catalogdata embeds the portal's reference data document.
package catalogdata

import _ "embed"

//go:embed catalog.toml
var TOML []byte
