// Package docs holds the OpenAPI description served at /swagger.
// Regenerate with: swag init -g cmd/server/main.go -o docs
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
        "/upload": {
            "post": {
                "description": "Stores the PDF, extracts its text, classifies it and runs the gap analysis",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "Upload and analyze a PDF",
                "parameters": [
                    {"type": "file", "description": "PDF document", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Document stored and analyzed", "schema": {"$ref": "#/definitions/domain.AnalysisPayload"}},
                    "400": {"description": "Missing file, empty filename or unsupported type", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "413": {"description": "File too large", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Extraction or storage failure", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/documents": {
            "get": {
                "description": "All documents, newest first, with their stored classification",
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "List documents",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.DocumentSummary"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/documents/export": {
            "get": {
                "description": "Downloads the document list as an XLSX workbook or a CSV file",
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "text/csv"],
                "tags": ["documents"],
                "summary": "Export document list",
                "parameters": [
                    {"type": "string", "description": "xlsx (default) or csv", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Unknown format", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/analysis/{id}": {
            "get": {
                "description": "Returns the stored classification and gap analysis for a document",
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "Get document analysis",
                "parameters": [
                    {"type": "integer", "description": "Document ID", "name": "id", "in": "path", "required": true},
                    {"type": "boolean", "description": "Re-run the gap analysis on the stored text", "name": "refresh", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.AnalysisPayload"}},
                    "400": {"description": "Invalid ID", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Document not found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/readyz": {
            "get": {
                "description": "Reports whether the document store is reachable",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "domain.AnalysisPayload": {
            "type": "object",
            "properties": {
                "analysis": {"$ref": "#/definitions/domain.AnalysisReport"},
                "classification": {"$ref": "#/definitions/domain.Classification"},
                "document_id": {"type": "integer"},
                "filename": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "domain.AnalysisReport": {
            "type": "object",
            "properties": {
                "completeness_score": {"type": "integer"},
                "compliance_notes": {"type": "array", "items": {"type": "string"}},
                "critical_issues": {"type": "array", "items": {"type": "string"}},
                "incomplete_fields": {"type": "array", "items": {"type": "string"}},
                "missing_fields": {"type": "array", "items": {"type": "string"}},
                "recommendations": {"type": "array", "items": {"type": "string"}},
                "risk_factors": {"type": "array", "items": {"type": "string"}}
            }
        },
        "domain.Classification": {
            "type": "object",
            "properties": {
                "confidence_score": {"type": "number"},
                "document_type": {"type": "string"}
            }
        },
        "domain.DocumentSummary": {
            "type": "object",
            "properties": {
                "classification": {"$ref": "#/definitions/domain.Classification"},
                "document_id": {"type": "integer"},
                "filename": {"type": "string"}
            }
        },
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "NO_FILE"},
                "error": {"type": "string", "example": "No file part in the request"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Document Analyzer API",
	Description:      "Uploads PDF documents, classifies them and reports missing or incomplete information.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
