package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Device Access API",
        "description": "User registration, token-based authentication and device assignment",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Login, logout, refresh and registration"},
        {"name": "Users", "description": "User creation"},
        {"name": "Devices", "description": "Device lookups and assignment"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Login successful"},
                    "400": {"description": "Validation failed"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/logout": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Revoke the login token used on this request",
                "security": [{"Bearer": []}],
                "responses": {
                    "200": {"description": "Logged out"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/refresh-token": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Exchange a refresh token for a new login token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RefreshRequest"}}
                ],
                "responses": {
                    "200": {"description": "Token refreshed"},
                    "400": {"description": "Validation failed"},
                    "401": {"description": "Invalid token"}
                }
            }
        },
        "/refresh-token-login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Legacy alias of /refresh-token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RefreshRequest"}}
                ],
                "responses": {
                    "200": {"description": "Token refreshed"},
                    "400": {"description": "Validation failed"},
                    "401": {"description": "Invalid token"}
                }
            }
        },
        "/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register a new user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "User registered"},
                    "422": {"description": "Validation failed"},
                    "500": {"description": "Server error"}
                }
            }
        },
        "/register-hashed": {
            "post": {
                "tags": ["Users"],
                "summary": "Create a user with a hashed password",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "User created"},
                    "409": {"description": "Email already registered"},
                    "422": {"description": "Validation failed"}
                }
            }
        },
        "/user-info": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Get the authenticated user's public record",
                "security": [{"Bearer": []}],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/devices-info/{id}": {
            "get": {
                "tags": ["Devices"],
                "summary": "Get device by id",
                "security": [{"Bearer": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Device not found"}
                }
            }
        },
        "/devices-accesed": {
            "get": {
                "tags": ["Devices"],
                "summary": "List accessed devices (summary projection)",
                "security": [{"Bearer": []}],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/devices-accesed-detailed": {
            "get": {
                "tags": ["Devices"],
                "summary": "List accessed devices (full records)",
                "security": [{"Bearer": []}],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/devices-accessible": {
            "get": {
                "tags": ["Devices"],
                "summary": "List accessible devices (legacy alias)",
                "security": [{"Bearer": []}],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/devices/assign": {
            "post": {
                "tags": ["Devices"],
                "summary": "Assign a device to a user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AssignDeviceRequest"}}
                ],
                "responses": {
                    "201": {"description": "Device assigned"},
                    "400": {"description": "Already assigned"},
                    "422": {"description": "Validation failed"}
                }
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["name", "email", "password"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "RefreshRequest": {
            "type": "object",
            "required": ["refresh_token"],
            "properties": {
                "refresh_token": {"type": "string"}
            }
        },
        "RegisterRequest": {
            "type": "object",
            "required": ["name", "email", "password", "password_confirmation"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "password_confirmation": {"type": "string"}
            }
        },
        "CreateUserRequest": {
            "type": "object",
            "required": ["name", "email", "password"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "AssignDeviceRequest": {
            "type": "object",
            "required": ["device_id", "user_id"],
            "properties": {
                "device_id": {"type": "integer"},
                "user_id": {"type": "integer"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
