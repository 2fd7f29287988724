// Package docs holds the OpenAPI description served at /swagger/doc.json.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a company or creator account",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Validation failure or duplicate email/username"}
                }
            }
        },
        "/api/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in and receive a session cookie",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/api/auth/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Destroy the current session",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/auth/me": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current user profile",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthenticated"},
                    "404": {"description": "Session user missing"}
                }
            }
        },
        "/api/auth/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Session status",
                "responses": {
                    "200": {"description": "Authenticated"},
                    "401": {"description": "Not authenticated"}
                }
            }
        },
        "/api/campaigns": {
            "get": {
                "produces": ["application/json"],
                "tags": ["campaigns"],
                "summary": "List the caller's campaigns with engagement",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthenticated"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["campaigns"],
                "summary": "Create a campaign",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Invalid input"}}
            }
        },
        "/api/campaigns/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["campaigns"],
                "summary": "Fetch one campaign",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Owned by another user"},
                    "404": {"description": "Not found"}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["campaigns"],
                "summary": "Update provided campaign fields",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["campaigns"],
                "summary": "Delete a campaign",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/ads": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ads"],
                "summary": "List the caller's ads",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/ads/upload": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["ads"],
                "summary": "Upload an ad creative (max 100MB, video containers only)",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad form, oversize file or rejected MIME type"}
                }
            }
        },
        "/api/ads/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ads"],
                "summary": "Fetch one ad",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ads"],
                "summary": "Update provided ad fields",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["ads"],
                "summary": "Delete an ad and unlink its file",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/videos": {
            "get": {
                "produces": ["application/json"],
                "tags": ["videos"],
                "summary": "List the caller's videos",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/videos/upload": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["videos"],
                "summary": "Upload a video (max 2GB); it enters the processing pipeline",
                "responses": {
                    "201": {"description": "Created with status processing"},
                    "400": {"description": "Bad form, oversize file or rejected MIME type"}
                }
            }
        },
        "/api/videos/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["videos"],
                "summary": "Fetch one video",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["videos"],
                "summary": "Update provided video fields",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["videos"],
                "summary": "Delete a video, its placements and stored files",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/videos/{id}/download": {
            "get": {
                "produces": ["application/octet-stream"],
                "tags": ["videos"],
                "summary": "Download the processed (or raw) file; counts a view",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "File stream"},
                    "404": {"description": "Video or file missing"}
                }
            }
        },
        "/api/videos/{id}/placements": {
            "get": {
                "produces": ["application/json"],
                "tags": ["placements"],
                "summary": "List ad placements in a video timeline",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["placements"],
                "summary": "Place an ad into a video timeline",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/api/placements/{id}/track": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["placements"],
                "summary": "Record placement views/clicks; projected onto the ad",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/analytics/summary": {
            "get": {
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Company dashboard aggregates (company accounts only)",
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Not a company account"}
                }
            }
        },
        "/api/analytics/creator/summary": {
            "get": {
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Creator dashboard aggregates (creator accounts only)",
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Not a creator account"}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "AdVidly API",
	Description:      "Two-sided marketplace connecting advertisers with video creators.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
