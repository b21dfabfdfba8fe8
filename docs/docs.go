// Package docs registers the OpenAPI document served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Login student", "responses": {"200": {"description": "OK"}}}},
        "/auth/register": {"post": {"tags": ["auth"], "summary": "Register new student", "responses": {"201": {"description": "Created"}}}},
        "/users/me": {"get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Get current student profile", "responses": {"200": {"description": "OK"}}}},
        "/users/me/progress": {"get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Get academic progress", "responses": {"200": {"description": "OK"}}}},
        "/terms/active": {"get": {"tags": ["courses"], "summary": "Get the active term", "responses": {"200": {"description": "OK"}}}},
        "/sections": {"get": {"tags": ["courses"], "summary": "List open sections of the active term", "responses": {"200": {"description": "OK"}}}},
        "/courses/{code}": {"get": {"tags": ["courses"], "summary": "Get course by code", "responses": {"200": {"description": "OK"}}}},
        "/plans/recommend": {"post": {"security": [{"BearerAuth": []}], "tags": ["plans"], "summary": "Recommend candidate schedules", "responses": {"200": {"description": "OK"}}}},
        "/plans/commit": {"post": {"security": [{"BearerAuth": []}], "tags": ["plans"], "summary": "Register a chosen plan", "responses": {"201": {"description": "Created"}}}},
        "/plans/refresh": {"post": {"security": [{"BearerAuth": []}], "tags": ["plans"], "summary": "Reload academic data for planning", "responses": {"204": {"description": "No Content"}}}},
        "/enrollments": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["enrollments"], "summary": "List enrollments of the current student", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["enrollments"], "summary": "Register a single section", "responses": {"201": {"description": "Created"}}}
        },
        "/enrollments/{sectionId}": {"delete": {"security": [{"BearerAuth": []}], "tags": ["enrollments"], "summary": "Drop a registered section", "responses": {"200": {"description": "OK"}}}},
        "/exceptions": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["exceptions"], "summary": "List exception requests of the current student", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["exceptions"], "summary": "File an exception request", "responses": {"201": {"description": "Created"}}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
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
	BasePath:         "/api",
	Schemes:          []string{"https", "http"},
	Title:            "Student Portal API",
	Description:      "Course registration, schedule recommendation and exception requests",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
