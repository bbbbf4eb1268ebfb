// Package docs holds the OpenAPI document for the entitylens API
// regenerate with: swag init --v3.1 -g api.go -d internal/services/api,internal/services/annotate,internal/services/api/meta -o internal/services/api/docs
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.1.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{.Description}}",
        "version": "{{.Version}}"
    },
    "paths": {
        "/annotate": {
            "post": {
                "tags": ["Annotate"],
                "summary": "Classify text and render one line per entity",
                "operationId": "annotateText",
                "requestBody": {
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {"$ref": "#/components/schemas/domain.AnnotateInput"}
                        }
                    }
                },
                "responses": {
                    "200": {
                        "description": "ok",
                        "content": {
                            "application/json": {
                                "schema": {"$ref": "#/components/schemas/domain.AnnotateOutput"}
                            }
                        }
                    }
                }
            }
        },
        "/annotate/kinds": {
            "get": {
                "tags": ["Annotate"],
                "summary": "Entity kinds and their line templates",
                "operationId": "annotateKinds",
                "parameters": [
                    {"name": "locale", "in": "query", "required": false, "schema": {"type": "string"}, "description": "Template language"}
                ],
                "responses": {
                    "200": {
                        "description": "ok",
                        "content": {
                            "application/json": {
                                "schema": {"$ref": "#/components/schemas/domain.KindsOutput"}
                            }
                        }
                    }
                }
            }
        },
        "/meta/health": {
            "get": {
                "tags": ["Meta"],
                "summary": "Health check",
                "operationId": "metaHealth",
                "responses": {
                    "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/http.HealthResponse"}}}}
                }
            }
        },
        "/meta/ready": {
            "get": {
                "tags": ["Meta"],
                "summary": "Readiness probe; loads the model on first call",
                "operationId": "metaReady",
                "responses": {
                    "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/http.ReadyResponse"}}}}
                }
            }
        },
        "/meta/version": {
            "get": {
                "tags": ["Meta"],
                "summary": "Build and version info",
                "operationId": "metaVersion",
                "responses": {
                    "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/version.BuildInfo"}}}}
                }
            }
        },
        "/meta/service": {
            "get": {
                "tags": ["Meta"],
                "summary": "Service info, uptime and supported locales",
                "operationId": "metaService",
                "responses": {
                    "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/http.ServiceResponse"}}}}
                }
            }
        }
    },
    "components": {
        "schemas": {
            "domain.AnnotateInput": {
                "type": "object",
                "properties": {
                    "text": {"type": "string", "description": "capped at CORE_ANNOTATE_MAX_TEXT runes (default 65536)", "example": "Call me at 5551234567 tomorrow"},
                    "locale": {"type": "string", "maxLength": 16, "example": "en_GB"},
                    "region": {"type": "string", "example": "US"}
                }
            },
            "domain.AnnotateOutput": {
                "type": "object",
                "properties": {
                    "run_id": {"type": "string"},
                    "locale": {"type": "string", "example": "en"},
                    "lines": {"type": "array", "items": {"type": "string"}},
                    "text": {"type": "string"},
                    "spans": {"type": "array", "items": {"type": "object"}},
                    "entities": {"type": "integer", "example": 2},
                    "diagnostics": {"type": "array", "items": {"$ref": "#/components/schemas/pipeline.Diagnostic"}}
                }
            },
            "domain.KindInfo": {
                "type": "object",
                "properties": {
                    "kind": {"type": "string", "example": "phone"},
                    "template": {"type": "string", "example": "Phone: {0} (formatted: {1})"},
                    "payload": {"type": "boolean"}
                }
            },
            "domain.KindsOutput": {
                "type": "object",
                "properties": {
                    "locale": {"type": "string"},
                    "kinds": {"type": "array", "items": {"$ref": "#/components/schemas/domain.KindInfo"}}
                }
            },
            "pipeline.Diagnostic": {
                "type": "object",
                "properties": {
                    "stage": {"type": "string", "example": "classify"},
                    "code": {"type": "integer", "example": 7},
                    "message": {"type": "string"}
                }
            },
            "http.HealthResponse": {
                "type": "object",
                "properties": {
                    "ok": {"type": "boolean"},
                    "service": {"type": "string"},
                    "started": {"type": "string"},
                    "now": {"type": "string"}
                }
            },
            "http.ReadyCheck": {
                "type": "object",
                "properties": {
                    "name": {"type": "string"},
                    "status": {"type": "string"},
                    "error": {"type": "string"}
                }
            },
            "http.ReadyResponse": {
                "type": "object",
                "properties": {
                    "status": {"type": "string"},
                    "checks": {"type": "array", "items": {"$ref": "#/components/schemas/http.ReadyCheck"}},
                    "now": {"type": "string"}
                }
            },
            "http.ServiceResponse": {
                "type": "object",
                "properties": {
                    "name": {"type": "string"},
                    "started": {"type": "string"},
                    "uptime": {"type": "integer"},
                    "locales": {"type": "array", "items": {"type": "string"}}
                }
            },
            "version.BuildInfo": {
                "type": "object",
                "properties": {
                    "service": {"type": "string"},
                    "version": {"type": "string"},
                    "commit": {"type": "string"},
                    "date": {"type": "string"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Title:            "entitylens API",
	Description:      "Classifies free text into typed entities and renders one line per entity.",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
