package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "schemes": {{ marshal .Schemes }},
    "paths": {
        "/data": {
            "get": {
                "tags": ["planner"],
                "summary": "Get the planner document",
                "produces": ["application/json"],
                "responses": {
                    "200": {
                        "description": "Full planner document",
                        "schema": {"$ref": "#/definitions/PlannerDocument"}
                    }
                }
            }
        },
        "/goals/{index}": {
            "patch": {
                "tags": ["planner"],
                "summary": "Set the text of a six-month goal",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "index", "type": "integer", "minimum": 0, "maximum": 4, "required": true},
                    {"in": "body", "name": "request", "required": false, "schema": {"$ref": "#/definitions/GoalTextRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated planner document", "schema": {"$ref": "#/definitions/PlannerDocument"}},
                    "400": {"description": "Invalid index or body", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/goals/{index}/check": {
            "patch": {
                "tags": ["planner"],
                "summary": "Toggle or set a six-month goal checkbox",
                "description": "Omitting checked toggles the current value.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "index", "type": "integer", "minimum": 0, "maximum": 4, "required": true},
                    {"in": "body", "name": "request", "required": false, "schema": {"$ref": "#/definitions/CheckRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated planner document", "schema": {"$ref": "#/definitions/PlannerDocument"}},
                    "400": {"description": "Invalid index or body", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/monthly/{monthId}/{itemIndex}": {
            "patch": {
                "tags": ["planner"],
                "summary": "Toggle or set a monthly checklist item",
                "description": "Omitting checked toggles the current value.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "monthId", "type": "string", "enum": ["feb", "mar", "apr", "may", "jun", "jul"], "required": true},
                    {"in": "path", "name": "itemIndex", "type": "integer", "minimum": 0, "maximum": 5, "required": true},
                    {"in": "body", "name": "request", "required": false, "schema": {"$ref": "#/definitions/CheckRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated planner document", "schema": {"$ref": "#/definitions/PlannerDocument"}},
                    "400": {"description": "Invalid month, index or body", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/daily/{monthId}/{day}": {
            "patch": {
                "tags": ["planner"],
                "summary": "Toggle or set a day checkbox",
                "description": "Omitting checked toggles the current value.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "monthId", "type": "string", "enum": ["feb", "mar", "apr", "may", "jun", "jul"], "required": true},
                    {"in": "path", "name": "day", "type": "integer", "minimum": 1, "maximum": 31, "required": true},
                    {"in": "body", "name": "request", "required": false, "schema": {"$ref": "#/definitions/CheckRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated planner document", "schema": {"$ref": "#/definitions/PlannerDocument"}},
                    "400": {"description": "Invalid month, day or body", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "CheckMap": {
            "type": "object",
            "additionalProperties": {"type": "boolean"}
        },
        "MonthChecks": {
            "type": "object",
            "additionalProperties": {"$ref": "#/definitions/CheckMap"}
        },
        "PlannerDocument": {
            "type": "object",
            "properties": {
                "sixMonthGoals": {"type": "array", "minItems": 5, "maxItems": 5, "items": {"type": "string"}},
                "sixMonthChecks": {"$ref": "#/definitions/CheckMap"},
                "monthlyChecks": {"$ref": "#/definitions/MonthChecks"},
                "dateChecks": {"$ref": "#/definitions/MonthChecks"}
            }
        },
        "GoalTextRequest": {
            "type": "object",
            "properties": {
                "text": {"type": "string"}
            }
        },
        "CheckRequest": {
            "type": "object",
            "properties": {
                "checked": {"type": "boolean"}
            }
        },
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3000",
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "Personal Planner API",
	Description:      "Six-month goals, monthly checklists and daily checkboxes backed by a single JSON document",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
