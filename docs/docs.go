// Package docs registers the API's OpenAPI document with swag.
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
        "/dynasty/{leagueID}": {
            "get": {
                "description": "Team summaries, the resolved pick table and undrafted players. Views whose inputs failed carry an entry in errors.",
                "produces": ["application/json"],
                "tags": ["Dynasty"],
                "summary": "Dynasty League Report",
                "parameters": [
                    {"type": "string", "description": "Sleeper league ID", "name": "leagueID", "in": "path", "required": true},
                    {"type": "string", "description": "Market sheet ID or URL", "name": "sheet", "in": "query"},
                    {"type": "string", "description": "Market sheet tab", "name": "tab", "in": "query"},
                    {"type": "string", "default": "SF", "description": "Market format (1QB or SF)", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DynastyReport"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorBody"}}
                }
            }
        },
        "/sessions": {
            "post": {
                "description": "Creates a session holding projection tables, ADP and a drafted set",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Create Session",
                "parameters": [
                    {"description": "League overrides", "name": "body", "in": "body", "schema": {"$ref": "#/definitions/models.CreateSessionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.CreateSessionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorBody"}},
                    "502": {"description": "Default tables unavailable", "schema": {"$ref": "#/definitions/errorBody"}}
                }
            }
        },
        "/sessions/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Get Session",
                "parameters": [{"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.SessionSummary"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorBody"}}
                }
            },
            "delete": {
                "tags": ["Sessions"],
                "summary": "Delete Session",
                "parameters": [{"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorBody"}}
                }
            }
        },
        "/sessions/{id}/board": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Draft"],
                "summary": "Draft Board",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "default": 5, "description": "List length", "name": "k", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DraftBoardView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorBody"}}
                }
            }
        },
        "/sessions/{id}/drafted": {
            "put": {
                "description": "The list fully overrides the previous drafted set",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Draft"],
                "summary": "Replace Drafted Set",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"description": "Drafted player names", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.DraftedRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DraftedResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorBody"}}
                }
            }
        },
        "/sessions/{id}/free-agents": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Draft"],
                "summary": "Free-Agent Board",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"description": "Free-agent names as listed by the league", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.FreeAgentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.FreeAgent"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorBody"}}
                }
            }
        },
        "/sessions/{id}/free-agents/weekly": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Draft"],
                "summary": "Weekly Free-Agent Improvements",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"description": "Weekly projections for free agents and the roster", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.WeeklyFreeAgentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.PositionImprovement"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorBody"}}
                }
            }
        },
        "/sessions/{id}/positions/{pos}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Valuation"],
                "summary": "Position Ranking",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Position (QB, RB, WR, TE, K, DST)", "name": "pos", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.ValuedPlayer"}}},
                    "400": {"description": "Unknown position", "schema": {"$ref": "#/definitions/errorBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorBody"}}
                }
            }
        },
        "/sessions/{id}/tables/{table}": {
            "put": {
                "description": "Table is one of qb, flx, rb, wr, te, k, dst or adp",
                "consumes": ["text/csv"],
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Upload Table",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Table name", "name": "table", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.TableUploadResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorBody"}}
                }
            }
        },
        "/sessions/{id}/valuations": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Valuation"],
                "summary": "Valued Player Table",
                "parameters": [{"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Valuation"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorBody"}},
                    "422": {"description": "Roster policy incomplete", "schema": {"$ref": "#/definitions/errorBody"}}
                }
            }
        }
    },
    "definitions": {
        "errorBody": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "models.CreateSessionRequest": {
            "type": "object",
            "properties": {
                "include_zero_point_players": {"type": "boolean"},
                "league_size": {"type": "integer", "maximum": 32, "minimum": 2}
            }
        },
        "models.CreateSessionResponse": {
            "type": "object",
            "properties": {
                "players": {"type": "integer"},
                "session_id": {"type": "string"}
            }
        },
        "models.SessionSummary": {
            "type": "object",
            "properties": {
                "adp_rows": {"type": "integer"},
                "created_at": {"type": "string"},
                "drafted": {"type": "integer"},
                "include_zero_point_players": {"type": "boolean"},
                "league_size": {"type": "integer"},
                "session_id": {"type": "string"},
                "tables": {"type": "object", "additionalProperties": {"type": "integer"}},
                "updated_at": {"type": "string"}
            }
        },
        "models.DraftedRequest": {
            "type": "object",
            "properties": {"players": {"type": "array", "items": {"type": "string"}}}
        },
        "models.DraftedResponse": {
            "type": "object",
            "properties": {
                "drafted": {"type": "integer"},
                "unknown": {"type": "array", "items": {"type": "string"}}
            }
        },
        "models.FreeAgentRequest": {
            "type": "object",
            "required": ["players"],
            "properties": {"players": {"type": "array", "minItems": 1, "items": {"type": "string"}}}
        },
        "models.WeeklyPlayer": {
            "type": "object",
            "required": ["name", "position"],
            "properties": {
                "name": {"type": "string"},
                "position": {"type": "string"},
                "projected_points": {"type": "number"}
            }
        },
        "models.WeeklyFreeAgentRequest": {
            "type": "object",
            "required": ["free_agents"],
            "properties": {
                "free_agents": {"type": "array", "minItems": 1, "items": {"$ref": "#/definitions/models.WeeklyPlayer"}},
                "roster": {"type": "array", "items": {"$ref": "#/definitions/models.WeeklyPlayer"}}
            }
        },
        "models.PositionImprovement": {
            "type": "object",
            "properties": {
                "best_name": {"type": "string"},
                "best_points": {"type": "number"},
                "free_agents": {"type": "integer"},
                "improvements": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "improvement": {"type": "number"},
                            "name": {"type": "string"},
                            "options": {"type": "integer"}
                        }
                    }
                },
                "position": {"type": "string"}
            }
        },
        "models.TableUploadResponse": {
            "type": "object",
            "properties": {
                "rows": {"type": "integer"},
                "table": {"type": "string"}
            }
        },
        "models.ValuedPlayer": {
            "type": "object",
            "properties": {
                "adp": {"type": "number", "x-nullable": true},
                "drafted": {"type": "boolean"},
                "fantasy_points": {"type": "number"},
                "name": {"type": "string"},
                "position": {"type": "string"},
                "position_rank": {"type": "integer"},
                "stats": {"type": "object", "additionalProperties": {"type": "number"}},
                "team": {"type": "string"},
                "vobp": {"type": "number"},
                "vobp_rank": {"type": "integer"},
                "vobp_value_vs_adp": {"type": "number", "x-nullable": true},
                "vorp": {"type": "number"},
                "vorp_rank": {"type": "integer"},
                "vorp_value_vs_adp": {"type": "number", "x-nullable": true}
            }
        },
        "models.FreeAgent": {
            "allOf": [
                {"$ref": "#/definitions/models.ValuedPlayer"},
                {"type": "object", "properties": {"listed_name": {"type": "string"}}}
            ]
        },
        "models.Valuation": {
            "type": "object",
            "properties": {
                "baselines": {"type": "array", "items": {"type": "object"}},
                "league_size": {"type": "integer"},
                "players": {"type": "array", "items": {"$ref": "#/definitions/models.ValuedPlayer"}},
                "unmatched_adp": {"type": "array", "items": {"type": "string"}}
            }
        },
        "models.DraftBoardView": {
            "type": "object",
            "properties": {
                "combined": {"type": "array", "items": {"type": "object"}},
                "drafted": {"type": "integer"},
                "k": {"type": "integer"},
                "top_adp": {"type": "array", "items": {"type": "object"}},
                "top_vobp": {"type": "array", "items": {"type": "object"}},
                "top_vorp": {"type": "array", "items": {"type": "object"}}
            }
        },
        "models.DynastyReport": {
            "type": "object",
            "properties": {
                "errors": {"type": "object", "additionalProperties": {"type": "string"}},
                "format": {"type": "string"},
                "league_id": {"type": "string"},
                "picks": {"type": "array", "items": {"type": "object"}},
                "teams": {"type": "array", "items": {"type": "object"}},
                "undrafted": {"type": "array", "items": {"type": "object"}}
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
	Title:            "Draft Valuation API",
	Description:      "Fantasy football draft valuation and dynasty league asset reports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
