// Package docs registers the OpenAPI document served at /swagger. It follows
// the layout `swag init` emits and must be updated with the handler annotations.
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
        "/feedback": {
            "get": {
                "description": "Returns every feedback record, newest first.",
                "produces": ["application/json"],
                "tags": ["feedback"],
                "summary": "List feedback",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/types.Feedback"}}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/types.ErrorResponse"}
                    }
                }
            },
            "post": {
                "description": "Stores a new feedback record. Rating must be between 1 and 5.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["feedback"],
                "summary": "Submit feedback",
                "parameters": [
                    {
                        "description": "Feedback payload",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/types.FeedbackCreate"}
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {"$ref": "#/definitions/types.Feedback"}
                    },
                    "422": {
                        "description": "Missing field or rating out of range",
                        "schema": {"$ref": "#/definitions/types.ErrorResponse"}
                    },
                    "429": {
                        "description": "Too many submissions",
                        "schema": {"$ref": "#/definitions/types.ErrorResponse"}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/types.ErrorResponse"}
                    }
                }
            }
        },
        "/feedback/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["feedback"],
                "summary": "Get feedback",
                "parameters": [
                    {"type": "integer", "description": "Feedback ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/types.Feedback"}
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {"$ref": "#/definitions/types.ErrorResponse"}
                    },
                    "422": {
                        "description": "ID is not an integer",
                        "schema": {"$ref": "#/definitions/types.ErrorResponse"}
                    }
                }
            },
            "delete": {
                "description": "Permanently removes a feedback record.",
                "tags": ["feedback"],
                "summary": "Delete feedback",
                "parameters": [
                    {"type": "integer", "description": "Feedback ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {"$ref": "#/definitions/types.ErrorResponse"}
                    },
                    "422": {
                        "description": "ID is not an integer",
                        "schema": {"$ref": "#/definitions/types.ErrorResponse"}
                    }
                }
            }
        },
        "/feedback/{id}/respond": {
            "post": {
                "description": "Sets the admin response and stamps responded_at. Responding again overwrites both.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["feedback"],
                "summary": "Respond to feedback",
                "parameters": [
                    {"type": "integer", "description": "Feedback ID", "name": "id", "in": "path", "required": true},
                    {
                        "description": "Response payload",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/types.FeedbackRespond"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/types.Feedback"}
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {"$ref": "#/definitions/types.ErrorResponse"}
                    },
                    "422": {
                        "description": "Empty response text",
                        "schema": {"$ref": "#/definitions/types.ErrorResponse"}
                    }
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/types.Liveness"}
                    }
                }
            }
        },
        "/health/readiness": {
            "get": {
                "description": "Pings the database and, when enabled, Redis.",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/types.HealthCheck"}
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {"$ref": "#/definitions/types.HealthCheck"}
                    }
                }
            }
        }
    },
    "definitions": {
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "422"},
                "details": {"type": "string"},
                "message": {"type": "string", "example": "Rating must be between 1 and 5."},
                "type": {"type": "string", "example": "VALIDATION_ERROR"}
            }
        },
        "types.Feedback": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "email": {"type": "string"},
                "id": {"type": "integer"},
                "message": {"type": "string"},
                "name": {"type": "string"},
                "rating": {"type": "integer"},
                "responded_at": {"type": "string", "x-nullable": true},
                "response": {"type": "string", "x-nullable": true}
            }
        },
        "types.FeedbackCreate": {
            "type": "object",
            "properties": {
                "email": {"type": "string", "example": "alice@example.com"},
                "message": {"type": "string", "example": "Great service"},
                "name": {"type": "string", "example": "Alice"},
                "rating": {"type": "integer", "example": 5}
            }
        },
        "types.FeedbackRespond": {
            "type": "object",
            "properties": {
                "response": {"type": "string", "example": "Thank you!"}
            }
        },
        "types.HealthCheck": {
            "type": "object",
            "properties": {
                "components": {
                    "type": "object",
                    "additionalProperties": {"$ref": "#/definitions/types.HealthComponent"}
                },
                "status": {"type": "string"},
                "timestamp": {"type": "string"},
                "uptime": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "types.HealthComponent": {
            "type": "object",
            "properties": {
                "details": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "types.Liveness": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "ok"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Customer Feedback API",
	Description:      "Stores customer feedback and admin responses.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
