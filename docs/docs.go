// Package docs holds the OpenAPI description served on /swagger.
// Regenerate with: swag init -g cmd/api/main.go
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
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [
                    {"description": "User registration details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ports.RegisterInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.authResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.envelope"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {"description": "Login credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ports.LoginInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.authResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.envelope"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.envelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.envelope"}}
                }
            }
        },
        "/customers": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["customers"],
                "summary": "List customers",
                "parameters": [
                    {"type": "integer", "description": "Page number (default 1)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size (default 10)", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Case-insensitive match on name or email", "name": "search", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.listEnvelope"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["customers"],
                "summary": "Create customer",
                "parameters": [
                    {"description": "Customer", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ports.CustomerInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.envelope"}}
                }
            }
        },
        "/customers/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["customers"],
                "summary": "Get customer",
                "parameters": [{"type": "string", "description": "Customer ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.envelope"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["customers"],
                "summary": "Update customer",
                "parameters": [
                    {"type": "string", "description": "Customer ID", "name": "id", "in": "path", "required": true},
                    {"description": "Customer", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ports.CustomerInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.envelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.envelope"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["customers"],
                "summary": "Delete customer",
                "parameters": [{"type": "string", "description": "Customer ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.envelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.envelope"}}
                }
            }
        },
        "/customers/{customerId}/leads": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["leads"],
                "summary": "List customer leads",
                "parameters": [{"type": "string", "description": "Customer ID", "name": "customerId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.listEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.envelope"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["leads"],
                "summary": "Create lead",
                "parameters": [
                    {"type": "string", "description": "Customer ID", "name": "customerId", "in": "path", "required": true},
                    {"description": "Lead", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ports.LeadInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.envelope"}}
                }
            }
        },
        "/leads/status/{status}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["leads"],
                "summary": "List leads by status",
                "parameters": [{"type": "string", "description": "New, Contacted, Converted or Lost", "name": "status", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.listEnvelope"}}
                }
            }
        },
        "/leads/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["leads"],
                "summary": "Get lead",
                "parameters": [{"type": "string", "description": "Lead ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.envelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.envelope"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["leads"],
                "summary": "Update lead",
                "parameters": [
                    {"type": "string", "description": "Lead ID", "name": "id", "in": "path", "required": true},
                    {"description": "Lead", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ports.LeadInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.envelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.envelope"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["leads"],
                "summary": "Delete lead",
                "parameters": [{"type": "string", "description": "Lead ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.envelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.envelope"}}
                }
            }
        }
    },
    "definitions": {
        "handler.envelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {},
                "message": {"type": "string"}
            }
        },
        "handler.listEnvelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "count": {"type": "integer"},
                "pagination": {"$ref": "#/definitions/handler.pagination"},
                "data": {}
            }
        },
        "handler.pageRef": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "limit": {"type": "integer"}
            }
        },
        "handler.pagination": {
            "type": "object",
            "properties": {
                "next": {"$ref": "#/definitions/handler.pageRef"},
                "prev": {"$ref": "#/definitions/handler.pageRef"}
            }
        },
        "handler.authResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/handler.userResponse"}
            }
        },
        "handler.userResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "ports.RegisterInput": {
            "type": "object",
            "required": ["name", "email", "password"],
            "properties": {
                "name": {"type": "string", "maxLength": 50},
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 6},
                "role": {"type": "string", "enum": ["user", "admin"]}
            }
        },
        "ports.LoginInput": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "ports.CustomerInput": {
            "type": "object",
            "required": ["name", "email"],
            "properties": {
                "name": {"type": "string", "maxLength": 50},
                "email": {"type": "string"},
                "phone": {"type": "string", "maxLength": 20},
                "company": {"type": "string", "maxLength": 50}
            }
        },
        "ports.LeadInput": {
            "type": "object",
            "required": ["title"],
            "properties": {
                "title": {"type": "string", "maxLength": 100},
                "description": {"type": "string", "maxLength": 500},
                "status": {"type": "string", "enum": ["New", "Contacted", "Converted", "Lost"]},
                "value": {"type": "number", "minimum": 0},
                "customerId": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "CRM API",
	Description:      "Multi-tenant customers and leads with ownership-based access.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
