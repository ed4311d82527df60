// Package docs holds the OpenAPI document served at /swagger. It follows the
// layout swag init produces from the handler annotations.
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
        "/artworks": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Artworks"],
                "summary": "Cache an artwork item",
                "operationId": "createArtwork",
                "parameters": [
                    {"description": "Artwork", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateArtworkRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.ArtworkResponse"}},
                    "400": {"description": "Bad request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Item already exists", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/artworks/{qid}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Artworks"],
                "summary": "Read an artwork item",
                "operationId": "getArtwork",
                "parameters": [
                    {"type": "string", "example": "Q12418", "description": "Item id", "name": "qid", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ArtworkResponse"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["Artworks"],
                "summary": "Delete an artwork item",
                "operationId": "deleteArtwork",
                "parameters": [
                    {"type": "string", "example": "Q12418", "description": "Item id", "name": "qid", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Referenced by edits", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/artworks/{qid}/edits": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Edits"],
                "summary": "List edits on an artwork",
                "operationId": "listArtworkEdits",
                "parameters": [
                    {"type": "string", "example": "Q12418", "description": "Artwork id", "name": "qid", "in": "path", "required": true},
                    {"minimum": 1, "type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"maximum": 100, "minimum": 1, "type": "integer", "default": 20, "description": "Items per page", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ListEditsResponse"}},
                    "304": {"description": "Not Modified"}
                }
            }
        },
        "/depicts": {
            "get": {
                "description": "Case-insensitive substring match over labels and alt labels, ranked by token overlap then usage count.",
                "produces": ["application/json"],
                "tags": ["Depicts"],
                "summary": "Find depicts items by label",
                "operationId": "lookupDepicts",
                "parameters": [
                    {"type": "string", "example": "dog", "description": "Search term", "name": "q", "in": "query", "required": true},
                    {"minimum": 1, "type": "integer", "description": "Maximum results", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.LookupDepictsResponse"}},
                    "400": {"description": "Missing term", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Depicts"],
                "summary": "Cache a depicts item",
                "operationId": "createDepicts",
                "parameters": [
                    {"description": "Depicts item", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateDepictsRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.DepictsResponse"}},
                    "400": {"description": "Bad request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Item already exists", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/depicts/{qid}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Depicts"],
                "summary": "Read a depicts item",
                "operationId": "getDepicts",
                "parameters": [
                    {"type": "string", "example": "Q144", "description": "Item id", "name": "qid", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.DepictsResponse"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Depicts"],
                "summary": "Update a depicts item",
                "operationId": "updateDepicts",
                "parameters": [
                    {"type": "string", "example": "Q144", "description": "Item id", "name": "qid", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateDepictsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.DepictsResponse"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["Depicts"],
                "summary": "Delete a depicts item",
                "operationId": "deleteDepicts",
                "parameters": [
                    {"type": "string", "example": "Q144", "description": "Item id", "name": "qid", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Referenced by edits", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/depicts/{qid}/alt_labels": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Depicts"],
                "summary": "Replace alternative labels",
                "operationId": "replaceAltLabels",
                "parameters": [
                    {"type": "string", "example": "Q144", "description": "Item id", "name": "qid", "in": "path", "required": true},
                    {"description": "New alt labels", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.AltLabelsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.DepictsResponse"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/edits": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Edits"],
                "summary": "List edits",
                "operationId": "listEdits",
                "parameters": [
                    {"type": "string", "description": "Return 304 if ETag matches", "name": "If-None-Match", "in": "header"},
                    {"type": "string", "description": "Only edits by this user", "name": "username", "in": "query"},
                    {"type": "string", "example": "Q12418", "description": "Only edits on this artwork", "name": "artwork", "in": "query"},
                    {"type": "string", "example": "Q144", "description": "Only edits adding this item", "name": "depicts", "in": "query"},
                    {"minimum": 1, "type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"maximum": 100, "minimum": 1, "type": "integer", "default": 20, "description": "Items per page", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ListEditsResponse"}},
                    "304": {"description": "Not Modified"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Edits"],
                "summary": "Record a depicts statement added to an artwork",
                "operationId": "recordEdit",
                "parameters": [
                    {"type": "string", "example": "Jane Doe", "description": "Acting Wikidata username", "name": "X-Wiki-User", "in": "header", "required": true},
                    {"description": "Edit", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.RecordEditRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.EditResponse"}},
                    "401": {"description": "Missing user", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Unknown item", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Already recorded", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/humans": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Humans"],
                "summary": "Cache a human item",
                "operationId": "createHuman",
                "parameters": [
                    {"description": "Human", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateHumanRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.HumanResponse"}},
                    "409": {"description": "Item already exists", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/humans/{qid}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Humans"],
                "summary": "Read a human item",
                "operationId": "getHuman",
                "parameters": [
                    {"type": "string", "example": "Q762", "description": "Item id", "name": "qid", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.HumanResponse"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/languages": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Languages"],
                "summary": "List languages",
                "operationId": "listLanguages",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handlers.LanguageResponse"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Languages"],
                "summary": "Register a language",
                "operationId": "createLanguage",
                "parameters": [
                    {"description": "Language", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateLanguageRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.LanguageResponse"}},
                    "409": {"description": "Code or item already registered", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/languages/{code}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Languages"],
                "summary": "Read a language by Wikimedia code",
                "operationId": "getLanguage",
                "parameters": [
                    {"type": "string", "example": "de", "description": "Wikimedia language code", "name": "code", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.LanguageResponse"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Ambiguous", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/queries": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Queries"],
                "summary": "List logged SPARQL queries",
                "operationId": "listQueries",
                "parameters": [
                    {"minimum": 1, "type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"maximum": 100, "minimum": 1, "type": "integer", "default": 20, "description": "Items per page", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ListQueriesResponse"}}
                }
            }
        },
        "/queries/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Queries"],
                "summary": "Read a logged SPARQL query",
                "operationId": "getQuery",
                "parameters": [
                    {"minimum": 1, "type": "integer", "description": "Query log id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.QueryResponse"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/users": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Ensure a user exists",
                "operationId": "ensureUser",
                "parameters": [
                    {"description": "User", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.EnsureUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.UserResponse"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.UserResponse"}},
                    "409": {"description": "Username taken", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/users/{username}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Read a user",
                "operationId": "getUser",
                "parameters": [
                    {"type": "string", "example": "Jane Doe", "description": "Username", "name": "username", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.UserResponse"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/users/{username}/edits": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Edits"],
                "summary": "List edits by a user",
                "operationId": "listUserEdits",
                "parameters": [
                    {"type": "string", "example": "Jane Doe", "description": "Username", "name": "username", "in": "path", "required": true},
                    {"minimum": 1, "type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"maximum": 100, "minimum": 1, "type": "integer", "default": 20, "description": "Items per page", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ListEditsResponse"}},
                    "304": {"description": "Not Modified"}
                }
            }
        }
    },
    "definitions": {
        "handlers.AltLabelsRequest": {
            "type": "object",
            "required": ["alt_labels"],
            "properties": {"alt_labels": {"type": "array", "items": {"type": "string"}}}
        },
        "handlers.ArtworkResponse": {
            "type": "object",
            "properties": {
                "entity": {"type": "object"},
                "item_id": {"type": "integer", "example": 12418},
                "label": {"type": "string"},
                "qid": {"type": "string", "example": "Q12418"}
            }
        },
        "handlers.CreateArtworkRequest": {
            "type": "object",
            "required": ["qid"],
            "properties": {
                "entity": {"type": "object"},
                "label": {"type": "string", "example": "Mona Lisa"},
                "qid": {"type": "string", "example": "Q12418"}
            }
        },
        "handlers.CreateDepictsRequest": {
            "type": "object",
            "required": ["qid"],
            "properties": {
                "alt_labels": {"type": "array", "items": {"type": "string"}, "example": ["hound", "doggy"]},
                "commons": {"type": "string", "example": "Dogs"},
                "description": {"type": "string", "example": "domestic animal"},
                "entity": {"type": "object"},
                "label": {"type": "string", "example": "dog"},
                "qid": {"type": "string", "example": "Q144"}
            }
        },
        "handlers.CreateHumanRequest": {
            "type": "object",
            "required": ["qid", "year_of_birth", "year_of_death"],
            "properties": {
                "qid": {"type": "string", "example": "Q762"},
                "year_of_birth": {"type": "integer", "example": 1452},
                "year_of_death": {"type": "integer", "example": 1519}
            }
        },
        "handlers.CreateLanguageRequest": {
            "type": "object",
            "required": ["en_label", "qid", "wikimedia_language_code"],
            "properties": {
                "en_label": {"type": "string", "example": "German"},
                "qid": {"type": "string", "example": "Q188"},
                "wikimedia_language_code": {"type": "string", "maxLength": 32, "example": "de"}
            }
        },
        "handlers.DepictsMatchResponse": {
            "type": "object",
            "properties": {
                "alt_labels": {"type": "array", "items": {"type": "string"}},
                "commons": {"type": "string"},
                "count": {"type": "integer"},
                "description": {"type": "string"},
                "item_id": {"type": "integer", "example": 144},
                "label": {"type": "string"},
                "match": {"type": "string", "example": "dog"},
                "qid": {"type": "string", "example": "Q144"},
                "score": {"type": "number", "example": 1}
            }
        },
        "handlers.DepictsResponse": {
            "type": "object",
            "properties": {
                "alt_labels": {"type": "array", "items": {"type": "string"}},
                "commons": {"type": "string"},
                "count": {"type": "integer"},
                "description": {"type": "string"},
                "entity": {"type": "object"},
                "item_id": {"type": "integer", "example": 144},
                "label": {"type": "string"},
                "qid": {"type": "string", "example": "Q144"}
            }
        },
        "handlers.EditResponse": {
            "type": "object",
            "properties": {
                "artwork": {"$ref": "#/definitions/handlers.ArtworkResponse"},
                "artwork_qid": {"type": "string", "example": "Q12418"},
                "depicts": {"$ref": "#/definitions/handlers.DepictsResponse"},
                "depicts_qid": {"type": "string", "example": "Q144"},
                "lastrevid": {"type": "integer"},
                "timestamp": {"type": "string"},
                "user_wikidata_url": {"type": "string"},
                "username": {"type": "string", "example": "Jane Doe"}
            }
        },
        "handlers.EnsureUserRequest": {
            "type": "object",
            "required": ["id", "username"],
            "properties": {
                "id": {"type": "integer", "example": 12345},
                "username": {"type": "string", "maxLength": 255, "example": "Jane Doe"}
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "not_found"},
                "message": {"type": "string", "example": "depicts item not found"},
                "request_id": {"type": "string"}
            }
        },
        "handlers.HumanResponse": {
            "type": "object",
            "properties": {
                "age_at_death": {"type": "integer", "example": 67},
                "item_id": {"type": "integer", "example": 762},
                "qid": {"type": "string", "example": "Q762"},
                "year_of_birth": {"type": "integer", "example": 1452},
                "year_of_death": {"type": "integer", "example": 1519}
            }
        },
        "handlers.LanguageResponse": {
            "type": "object",
            "properties": {
                "en_label": {"type": "string", "example": "German"},
                "item_id": {"type": "integer", "example": 188},
                "qid": {"type": "string", "example": "Q188"},
                "wikimedia_language_code": {"type": "string", "example": "de"}
            }
        },
        "handlers.ListEditsResponse": {
            "type": "object",
            "properties": {
                "edits": {"type": "array", "items": {"$ref": "#/definitions/handlers.EditResponse"}},
                "pagination": {"$ref": "#/definitions/handlers.Pagination"}
            }
        },
        "handlers.ListQueriesResponse": {
            "type": "object",
            "properties": {
                "pagination": {"$ref": "#/definitions/handlers.Pagination"},
                "queries": {"type": "array", "items": {"$ref": "#/definitions/handlers.QueryResponse"}}
            }
        },
        "handlers.LookupDepictsResponse": {
            "type": "object",
            "properties": {
                "query": {"type": "string"},
                "results": {"type": "array", "items": {"$ref": "#/definitions/handlers.DepictsMatchResponse"}}
            }
        },
        "handlers.Pagination": {
            "type": "object",
            "properties": {
                "has_next": {"type": "boolean"},
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "handlers.QueryResponse": {
            "type": "object",
            "properties": {
                "bad": {"type": "boolean"},
                "display_seconds": {"type": "string", "example": "1.1"},
                "duration_ms": {"type": "integer", "example": 1050},
                "end_time": {"type": "string"},
                "endpoint": {"type": "string"},
                "error_text": {"type": "string"},
                "id": {"type": "integer", "example": 1},
                "page_title": {"type": "string"},
                "path": {"type": "string"},
                "query_template": {"type": "string", "example": "query/artworks.sparql"},
                "row_count": {"type": "integer"},
                "sparql_query": {"type": "string"},
                "start_time": {"type": "string"},
                "template": {"type": "string", "example": "artworks"}
            }
        },
        "handlers.RecordEditRequest": {
            "type": "object",
            "required": ["artwork", "depicts"],
            "properties": {
                "artwork": {"type": "string", "example": "Q12418"},
                "depicts": {"type": "string", "example": "Q144"},
                "lastrevid": {"type": "integer", "example": 1234567890}
            }
        },
        "handlers.UpdateDepictsRequest": {
            "type": "object",
            "properties": {
                "commons": {"type": "string"},
                "count": {"type": "integer", "minimum": 0},
                "description": {"type": "string"},
                "entity": {"type": "object"},
                "label": {"type": "string"}
            }
        },
        "handlers.UserResponse": {
            "type": "object",
            "properties": {
                "first_seen": {"type": "string"},
                "id": {"type": "integer", "example": 12345},
                "is_admin": {"type": "boolean"},
                "options": {"type": "object"},
                "user_wikidata_url": {"type": "string", "example": "https://www.wikidata.org/wiki/User:Jane_Doe"},
                "username": {"type": "string", "example": "Jane Doe"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Depicts API",
	Description:      "Cache of Wikidata depicts, artwork, human and language items plus the log of depicts edits and SPARQL queries.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
