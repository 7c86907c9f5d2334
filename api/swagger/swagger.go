package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "RescueHub API",
        "description": "Pet adoption marketplace backend",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Registration, login and token lifecycle"},
        {"name": "Users", "description": "User profiles"},
        {"name": "Pets", "description": "Adoption catalog"},
        {"name": "Adoptions", "description": "Adoption request workflow"},
        {"name": "Shelters", "description": "Shelter directory"},
        {"name": "LostFound", "description": "Lost and found reports"},
        {"name": "Donations", "description": "Donations and exports"}
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
        "/api/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register a new account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/auth/refresh": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Refresh access token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RefreshTokenRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/auth/logout": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Logout current session",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/api/auth/change-password": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Change password",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ChangePasswordRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current user profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/users": {
            "get": {
                "tags": ["Users"],
                "summary": "List users (admin)",
                "parameters": [
                    {"name": "role", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/users/{id}": {
            "get": {
                "tags": ["Users"],
                "summary": "Get user",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Users"],
                "summary": "Update user (self or admin)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/pets": {
            "get": {
                "tags": ["Pets"],
                "summary": "List pets",
                "parameters": [
                    {"name": "type", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "gender", "in": "query", "type": "string"},
                    {"name": "size", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Pets"],
                "summary": "Create pet (staff/admin)",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PetRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/pets/{id}": {
            "get": {
                "tags": ["Pets"],
                "summary": "Get pet",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Pets"],
                "summary": "Update pet (staff/admin)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PetRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Pets"],
                "summary": "Delete pet (staff/admin)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/api/adoption-requests": {
            "post": {
                "tags": ["Adoptions"],
                "summary": "Submit adoption request",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitAdoptionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Pet not available", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/adoption-requests/{id}": {
            "put": {
                "tags": ["Adoptions"],
                "summary": "Decide adoption request (staff/admin)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DecideAdoptionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Already decided", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/adoption-requests/user": {
            "get": {
                "tags": ["Adoptions"],
                "summary": "List my adoption requests",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/adoption-requests/pet/{petId}": {
            "get": {
                "tags": ["Adoptions"],
                "summary": "List requests for a pet (staff/admin)",
                "parameters": [
                    {"name": "petId", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/shelters": {
            "get": {
                "tags": ["Shelters"],
                "summary": "List shelters",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Shelters"],
                "summary": "Create shelter (admin)",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ShelterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/shelters/{id}": {
            "get": {
                "tags": ["Shelters"],
                "summary": "Get shelter",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Shelters"],
                "summary": "Update shelter (admin)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ShelterRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/lost-found-pets": {
            "get": {
                "tags": ["LostFound"],
                "summary": "List lost and found reports",
                "parameters": [
                    {"name": "type", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["LostFound"],
                "summary": "File a report (optionally anonymous)",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LostFoundRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/lost-found-pets/{id}": {
            "get": {
                "tags": ["LostFound"],
                "summary": "Get report",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["LostFound"],
                "summary": "Update report (reporter or admin)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LostFoundRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/donations": {
            "get": {
                "tags": ["Donations"],
                "summary": "List donations (admin)",
                "parameters": [
                    {"name": "shelter_id", "in": "query", "type": "integer"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Donations"],
                "summary": "Record a donation (optionally anonymous)",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DonationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/donations/export": {
            "get": {
                "tags": ["Donations"],
                "summary": "Export donations as CSV or PDF (admin)",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        }
    },
    "definitions": {
        "RegisterRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "name": {"type": "string"},
                "role": {"type": "string", "enum": ["adopter", "rescuer", "veterinarian"]},
                "phone": {"type": "string"},
                "bio": {"type": "string"}
            },
            "required": ["username", "email", "password", "name"]
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["username", "password"]
        },
        "RefreshTokenRequest": {
            "type": "object",
            "properties": {
                "refresh_token": {"type": "string"}
            },
            "required": ["refresh_token"]
        },
        "ChangePasswordRequest": {
            "type": "object",
            "properties": {
                "old_password": {"type": "string"},
                "new_password": {"type": "string", "minLength": 6}
            },
            "required": ["old_password", "new_password"]
        },
        "UpdateUserRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"},
                "phone": {"type": "string"},
                "bio": {"type": "string"},
                "profile_picture": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "PetRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "type": {"type": "string"},
                "breed": {"type": "string"},
                "age": {"type": "integer"},
                "gender": {"type": "string", "enum": ["male", "female", "unknown"]},
                "size": {"type": "string", "enum": ["small", "medium", "large"]},
                "description": {"type": "string"},
                "status": {"type": "string", "enum": ["available", "pending", "adopted"]},
                "shelter_id": {"type": "integer"},
                "images": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["name", "type"]
        },
        "SubmitAdoptionRequest": {
            "type": "object",
            "properties": {
                "pet_id": {"type": "integer"},
                "message": {"type": "string"}
            },
            "required": ["pet_id"]
        },
        "DecideAdoptionRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["approved", "rejected"]}
            },
            "required": ["status"]
        },
        "ShelterRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "address": {"type": "string"},
                "phone": {"type": "string"},
                "email": {"type": "string"},
                "website": {"type": "string"}
            },
            "required": ["name", "address", "email"]
        },
        "LostFoundRequest": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "enum": ["lost", "found"]},
                "pet_type": {"type": "string"},
                "breed": {"type": "string"},
                "name": {"type": "string"},
                "gender": {"type": "string"},
                "description": {"type": "string"},
                "location": {"type": "string"},
                "date": {"type": "string"},
                "status": {"type": "string", "enum": ["open", "closed"]},
                "contact_name": {"type": "string"},
                "contact_email": {"type": "string"},
                "contact_phone": {"type": "string"},
                "images": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["type", "pet_type", "description", "location", "date", "contact_name", "contact_email", "contact_phone"]
        },
        "DonationRequest": {
            "type": "object",
            "properties": {
                "amount": {"type": "integer", "description": "Amount in minor currency units"},
                "shelter_id": {"type": "integer"},
                "message": {"type": "string"}
            },
            "required": ["amount"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "errors": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/APIFieldError"}
                }
            }
        },
        "APIFieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "rule": {"type": "string"},
                "param": {"type": "string"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"}
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
