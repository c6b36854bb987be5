package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the site API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>brandsite API - Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// OpenAPI document for the public endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "brandsite-api", "version": "v1.0.0" },
  "components": {
    "schemas": {
      "ContactMessage": {
        "type": "object",
        "required": ["name", "email", "message"],
        "properties": {
          "name": {"type": "string"},
          "email": {"type": "string", "format": "email"},
          "subject": {"type": "string", "nullable": true},
          "message": {"type": "string", "minLength": 1, "maxLength": 5000}
        }
      },
      "Project": {
        "type": "object",
        "required": ["title", "description"],
        "properties": {
          "title": {"type": "string"},
          "description": {"type": "string"},
          "tags": {"type": "array", "items": {"type": "string"}, "default": []},
          "url": {"type": "string", "nullable": true},
          "repo": {"type": "string", "nullable": true},
          "image": {"type": "string", "nullable": true}
        }
      },
      "Created": {"type": "object", "properties": {"status": {"type": "string"}, "id": {"type": "string"}}},
      "ValidationFailed": {"type": "object", "properties": {"detail": {"type": "string"}, "errors": {"type": "array", "items": {"type": "object", "properties": {"field": {"type": "string"}, "error": {"type": "string"}}}}}}
    }
  },
  "paths": {
    "/": { "get": { "summary": "Liveness message", "responses": { "200": { "description": "message" } } } },
    "/api/hello": { "get": { "summary": "Liveness message", "responses": { "200": { "description": "message" } } } },
    "/schema": { "get": { "summary": "Schema definition source", "responses": { "200": { "description": "content" }, "500": { "description": "source unreadable" } } } },
    "/api/contact": {
      "post": {
        "summary": "Submit a contact message",
        "requestBody": { "content": { "application/json": { "schema": {"$ref": "#/components/schemas/ContactMessage"} } } },
        "responses": {
          "200": { "description": "stored", "content": { "application/json": { "schema": {"$ref": "#/components/schemas/Created"} } } },
          "400": { "description": "malformed JSON" },
          "422": { "description": "validation failed", "content": { "application/json": { "schema": {"$ref": "#/components/schemas/ValidationFailed"} } } },
          "429": { "description": "rate limited" },
          "500": { "description": "store failure" }
        }
      }
    },
    "/api/projects": {
      "get": {
        "summary": "List projects",
        "parameters": [
          {"name": "tag", "in": "query", "schema": {"type": "string"}},
          {"name": "limit", "in": "query", "schema": {"type": "integer", "minimum": 1, "default": 20}}
        ],
        "responses": {
          "200": { "description": "projects; empty with X-Store-Status: unavailable when the store failed", "content": { "application/json": { "schema": {"type": "array", "items": {"$ref": "#/components/schemas/Project"}} } } },
          "422": { "description": "invalid limit" }
        }
      },
      "post": {
        "summary": "Create a project (bearer token required when auth is configured)",
        "requestBody": { "content": { "application/json": { "schema": {"$ref": "#/components/schemas/Project"} } } },
        "responses": {
          "200": { "description": "stored", "content": { "application/json": { "schema": {"$ref": "#/components/schemas/Created"} } } },
          "401": { "description": "missing or invalid token" },
          "422": { "description": "validation failed" },
          "500": { "description": "store failure" }
        }
      }
    },
    "/test": { "get": { "summary": "Database diagnostics", "responses": { "200": { "description": "backend, database, database_url, database_name, connection_status, collections" } } } },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "metrics" } } } }
  }
}`
