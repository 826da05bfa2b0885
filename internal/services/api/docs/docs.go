// Package docs holds the OpenAPI document for the JSON API, registered with swag
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.1.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "paths": {
        "/assets/search": {
            "get": {
                "tags": ["Assets"],
                "summary": "Search avatars by name or author",
                "description": "Case insensitive substring search over both avatar libraries. A term shorter than two characters returns 200 with an advisory and no records",
                "operationId": "assetsSearch",
                "parameters": [
                    {"name": "q", "in": "query", "schema": {"type": "string", "maxLength": 200}, "description": "Search term"},
                    {"name": "page", "in": "query", "schema": {"type": "integer", "default": 1}, "description": "Page number, values below 1 mean 1"}
                ],
                "responses": {
                    "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/SearchEnvelope"}}}},
                    "429": {"description": "rate limited", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}},
                    "503": {"description": "search unavailable", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
                }
            }
        },
        "/searchlog/top": {
            "get": {
                "tags": ["SearchLog"],
                "summary": "Most searched terms",
                "description": "Aggregates the search event log in ClickHouse. 503 when the event log is disabled",
                "operationId": "searchlogTop",
                "parameters": [
                    {"name": "hours", "in": "query", "schema": {"type": "integer", "minimum": 1, "maximum": 720, "default": 24}},
                    {"name": "limit", "in": "query", "schema": {"type": "integer", "minimum": 1, "maximum": 100, "default": 10}}
                ],
                "responses": {
                    "200": {"description": "ok", "content": {"application/json": {"schema": {"type": "array", "items": {"$ref": "#/components/schemas/TopTerm"}}}}},
                    "503": {"description": "event log disabled or unavailable", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
                }
            }
        },
        "/meta/health": {
            "get": {"tags": ["Meta"], "summary": "Health check", "operationId": "metaHealth",
                "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/HealthResponse"}}}}}}
        },
        "/meta/ready": {
            "get": {"tags": ["Meta"], "summary": "Readiness probe with dependency checks", "operationId": "metaReady",
                "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ReadyResponse"}}}}}}
        },
        "/meta/version": {
            "get": {"tags": ["Meta"], "summary": "Build and version info", "operationId": "metaVersion",
                "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/BuildInfo"}}}}}}
        },
        "/meta/service": {
            "get": {"tags": ["Meta"], "summary": "Service info and uptime", "operationId": "metaService",
                "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ServiceResponse"}}}}}}
        }
    },
    "components": {
        "schemas": {
            "AssetRecord": {
                "type": "object",
                "properties": {
                    "name": {"type": "string", "example": "Neko Maid"},
                    "description": {"type": "string", "example": "quest compatible"},
                    "author": {"type": "string", "example": "yingxue"},
                    "guid": {"type": "string", "example": "avtr_3c1f0a52-9d7e-4c1b-8f10-5b2d7c9e0a11"},
                    "source": {"type": "string", "example": "Avatar库1"}
                }
            },
            "Pagination": {
                "type": "object",
                "properties": {
                    "total": {"type": "integer", "example": 45},
                    "page": {"type": "integer", "example": 2},
                    "page_size": {"type": "integer", "example": 20},
                    "total_pages": {"type": "integer", "example": 3},
                    "window": {"type": "array", "items": {"type": "integer"}, "example": [1, 2, 3]},
                    "has_prev": {"type": "boolean"},
                    "has_next": {"type": "boolean"}
                }
            },
            "SearchResponse": {
                "type": "object",
                "properties": {
                    "term": {"type": "string", "example": "neko"},
                    "outcome": {"type": "string", "enum": ["empty", "advisory", "no_matches", "results"]},
                    "advisory": {"type": "string"},
                    "records": {"type": "array", "items": {"$ref": "#/components/schemas/AssetRecord"}},
                    "pagination": {"$ref": "#/components/schemas/Pagination"}
                }
            },
            "SearchEnvelope": {
                "type": "object",
                "properties": {
                    "status_code": {"type": "integer", "example": 200},
                    "status": {"type": "string", "example": "OK"},
                    "request_id": {"type": "string"},
                    "data": {"$ref": "#/components/schemas/SearchResponse"}
                }
            },
            "TopTerm": {
                "type": "object",
                "properties": {
                    "term": {"type": "string", "example": "neko"},
                    "searches": {"type": "integer", "example": 42},
                    "last_seen": {"type": "string", "format": "date-time"}
                }
            },
            "HealthResponse": {
                "type": "object",
                "properties": {
                    "ok": {"type": "boolean"},
                    "service": {"type": "string", "example": "assetsearch-api"},
                    "started": {"type": "string", "format": "date-time"},
                    "now": {"type": "string", "format": "date-time"}
                }
            },
            "ReadyCheck": {
                "type": "object",
                "properties": {
                    "name": {"type": "string", "example": "db"},
                    "status": {"type": "string", "enum": ["ok", "fail", "skipped", "unknown"]},
                    "error": {"type": "string"}
                }
            },
            "ReadyResponse": {
                "type": "object",
                "properties": {
                    "status": {"type": "string", "enum": ["ok", "degraded", "fail"]},
                    "checks": {"type": "array", "items": {"$ref": "#/components/schemas/ReadyCheck"}},
                    "now": {"type": "string", "format": "date-time"}
                }
            },
            "ServiceResponse": {
                "type": "object",
                "properties": {
                    "name": {"type": "string", "example": "assetsearch-api"},
                    "started": {"type": "string", "format": "date-time"},
                    "uptime": {"type": "integer", "example": 300}
                }
            },
            "BuildInfo": {
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
	BasePath:         "/api/v1",
	Title:            "assetsearch API",
	Description:      "VRChat asset search over the avatar libraries",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
