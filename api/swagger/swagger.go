package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Pepe Booking API",
        "description": "Artist agency backend: availability, bookings, gage",
        "version": "0.1.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Token issuing"},
        {"name": "Artists", "description": "Artist identity, gallery and profile"},
        {"name": "Availability", "description": "Bookable calendar days"},
        {"name": "Gage", "description": "Fee criteria and calculation"},
        {"name": "Requests", "description": "Booking inquiries and estimates"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Exchange credentials for a bearer token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/artists": {
            "get": {
                "tags": ["Artists"],
                "summary": "List approved artists (public gallery)",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "discipline", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/artists/{id}": {
            "get": {
                "tags": ["Artists"],
                "summary": "Get one artist",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/artists/me": {
            "get": {
                "tags": ["Artists"],
                "summary": "Resolve the authenticated user's artist record",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Current user not linked to an artist"}
                }
            },
            "put": {
                "tags": ["Artists"],
                "summary": "Update the authenticated artist's profile",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ArtistProfileUpdate"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/artists/me/ensure": {
            "post": {
                "tags": ["Artists"],
                "summary": "Idempotently create or link the artist record",
                "responses": {
                    "200": {"description": "Linked", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/artists/{id}/approval": {
            "put": {
                "tags": ["Artists"],
                "summary": "Set an artist's approval status (admin)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/availability": {
            "get": {
                "tags": ["Availability"],
                "summary": "List the authenticated artist's slots",
                "parameters": [
                    {"name": "future_only", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Current user not linked to an artist"}
                }
            },
            "post": {
                "tags": ["Availability"],
                "summary": "Add one bookable day",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddSlotRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Slot already exists"}
                }
            }
        },
        "/availability/{id}": {
            "delete": {
                "tags": ["Availability"],
                "summary": "Remove one slot",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/availability/range": {
            "post": {
                "tags": ["Availability"],
                "summary": "Add every day of an inclusive date range",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddRangeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/availability/rule": {
            "post": {
                "tags": ["Availability"],
                "summary": "Add days generated by a recurrence rule",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddRuleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/availability/export.csv": {
            "get": {
                "tags": ["Availability"],
                "summary": "Download the slot list as CSV",
                "produces": ["text/csv"],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/availability/calendar.ics": {
            "get": {
                "tags": ["Availability"],
                "summary": "Subscribe to the slot list as an iCalendar feed",
                "produces": ["text/calendar"],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/artists/me/gage-criteria": {
            "get": {
                "tags": ["Gage"],
                "summary": "Get criteria and server-computed fee figures",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Gage"],
                "summary": "Update criteria and recompute the fee",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GageCriteria"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/artists/me/gage-calculation": {
            "get": {
                "tags": ["Gage"],
                "summary": "Component-by-component calculation breakdown",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/artists/me/gage-calculation.pdf": {
            "get": {
                "tags": ["Gage"],
                "summary": "Download the calculation breakdown as PDF",
                "produces": ["application/pdf"],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/artists/{id}/gage-override": {
            "put": {
                "tags": ["Gage"],
                "summary": "Set or clear an admin fee override",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/artists/gage-recalculate": {
            "post": {
                "tags": ["Gage"],
                "summary": "Recalculate every artist's fee (admin)",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/requests": {
            "get": {
                "tags": ["Requests"],
                "summary": "List the authenticated artist's booking requests",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Requests"],
                "summary": "Create a booking inquiry with price estimate",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BookingCreateRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/requests/estimate": {
            "post": {
                "tags": ["Requests"],
                "summary": "Estimate a price range without persisting",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BookingCreateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/requests/all": {
            "get": {
                "tags": ["Requests"],
                "summary": "List all booking requests (admin)",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/requests/{id}": {
            "get": {
                "tags": ["Requests"],
                "summary": "Get one booking request (admin)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "ArtistProfileUpdate": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "phone": {"type": "string"},
                "address": {"type": "string"},
                "disciplines": {"type": "array", "items": {"type": "string"}}
            }
        },
        "AddSlotRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "example": "2025-06-04"}
            },
            "required": ["date"]
        },
        "AddRangeRequest": {
            "type": "object",
            "properties": {
                "start_date": {"type": "string"},
                "end_date": {"type": "string"}
            },
            "required": ["start_date", "end_date"]
        },
        "AddRuleRequest": {
            "type": "object",
            "properties": {
                "start_date": {"type": "string"},
                "rule": {"type": "string", "example": "FREQ=WEEKLY;BYDAY=SA,SU;COUNT=10"},
                "limit": {"type": "integer"}
            },
            "required": ["start_date", "rule"]
        },
        "GageCriteria": {
            "type": "object",
            "properties": {
                "circus_education": {"type": "boolean"},
                "stage_experience": {"type": "string", "enum": ["0-2", "3-5", "6-10", "10+"]},
                "employment_type": {"type": "string", "enum": ["vollzeit", "teilzeit", "hobby"]},
                "awards_level": {"type": "string", "enum": ["international", "national", "regional", "lokal", "keine"]},
                "pepe_years": {"type": "integer"},
                "pepe_exclusivity": {"type": "boolean"}
            }
        },
        "BookingCreateRequest": {
            "type": "object",
            "properties": {
                "client_name": {"type": "string"},
                "client_email": {"type": "string"},
                "event_type": {"type": "string"},
                "event_date": {"type": "string"},
                "event_address": {"type": "string"},
                "duration_minutes": {"type": "integer"},
                "num_guests": {"type": "integer"},
                "distance_km": {"type": "number"},
                "is_indoor": {"type": "boolean"},
                "needs_light": {"type": "boolean"},
                "needs_sound": {"type": "boolean"},
                "team_size": {"type": "string"},
                "artist_id": {"type": "string"}
            },
            "required": ["client_name", "client_email", "event_type", "event_date"]
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
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
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
