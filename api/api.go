// Package api embeds the published API description and its viewer page.
package api

import _ "embed"

// OpenAPI is the OpenAPI 3 description of the public HTTP API.
//
//go:embed openapi.yaml
var OpenAPI []byte

// SwaggerUI loads Swagger UI from a CDN and points it at /openapi.yaml.
//
//go:embed swagger.html
var SwaggerUI []byte
