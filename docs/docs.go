// Package docs registers the swagger document served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/routes": {
            "get": {
                "description": "Returns the page route table in dispatch order.",
                "produces": ["application/json"],
                "tags": ["pages"],
                "summary": "List page routes",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/route.Page"}
                        }
                    }
                }
            }
        },
        "/session": {
            "get": {
                "description": "Reports the identity attached to the request, if any.",
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current auth context",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Bearer token",
                        "name": "Authorization",
                        "in": "header"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/api.SessionResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "api.SessionResponse": {
            "type": "object",
            "properties": {
                "authenticated": {"type": "boolean"},
                "user": {"$ref": "#/definitions/auth.Identity"}
            }
        },
        "auth.Identity": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "role": {"type": "string"},
                "uid": {"type": "string"}
            }
        },
        "route.Page": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "path": {"type": "string"},
                "title": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Barber Booking Web API",
	Description:      "Page route table and auth context of the barber booking site.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
