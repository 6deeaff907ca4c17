// Package openapi embeds the product service simulator's OpenAPI document.
package openapi

import _ "embed"

// YAML is the OpenAPI 3 document served at /openapi.yaml.
//
//go:embed openapi.yaml
var YAML []byte
