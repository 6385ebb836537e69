// Package api embeds the OpenAPI document of the HTTP interface. The document drives
// request validation and is served by the Swagger UI.
package api

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed openapi.json
var OpenAPI []byte

// SwaggerInfo registers the embedded document with swag under the default instance
// name, where echo-swagger looks for it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Title:            "Logistics allocation API",
	Description:      "Warehouses, delivery agents and orders, and the daily nearest-agent allocation run.",
	InfoInstanceName: swag.Name,
	SwaggerTemplate:  string(OpenAPI),
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
