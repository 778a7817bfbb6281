package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Aura System API",
        "description": "Scheduling and plan entitlement API for aesthetics clinics",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Appointments", "description": "Booking and slot validation"},
        {"name": "Settings", "description": "Business hours and unavailability rules"},
        {"name": "Roster", "description": "Patients and professionals"},
        {"name": "Plans", "description": "Plan catalog administration"}
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
                    "200": {"description": "Ready"},
                    "503": {"description": "Degraded"}
                }
            }
        },
        "/api/v1/appointments": {
            "get": {
                "tags": ["Appointments"],
                "summary": "List appointments",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Appointments"],
                "summary": "Book an appointment",
                "responses": {
                    "201": {"description": "Created"},
                    "403": {"description": "Blocked by plan entitlement"},
                    "409": {"description": "Time blocked by an unavailability rule"},
                    "422": {"description": "Outside business hours"}
                }
            }
        },
        "/api/v1/appointments/availability": {
            "get": {
                "tags": ["Appointments"],
                "summary": "Preview whether a slot is bookable",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/appointments/{id}": {
            "delete": {
                "tags": ["Appointments"],
                "summary": "Cancel an appointment",
                "responses": {"204": {"description": "Canceled"}}
            }
        },
        "/api/v1/settings/business-hours": {
            "get": {
                "tags": ["Settings"],
                "summary": "Get the weekly opening table",
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "tags": ["Settings"],
                "summary": "Replace the weekly opening table",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/settings/unavailability": {
            "get": {
                "tags": ["Settings"],
                "summary": "List unavailability rules",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Settings"],
                "summary": "Create an unavailability rule",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/api/v1/settings/unavailability/{id}": {
            "delete": {
                "tags": ["Settings"],
                "summary": "Delete an unavailability rule",
                "responses": {"204": {"description": "Deleted"}}
            }
        },
        "/api/v1/patients": {
            "get": {
                "tags": ["Roster"],
                "summary": "List patients",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Roster"],
                "summary": "Create a patient",
                "responses": {
                    "201": {"description": "Created"},
                    "403": {"description": "Plan resource limit reached"}
                }
            }
        },
        "/api/v1/professionals": {
            "get": {
                "tags": ["Roster"],
                "summary": "List professionals",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Roster"],
                "summary": "Create a professional",
                "responses": {
                    "201": {"description": "Created"},
                    "403": {"description": "Plan resource limit reached"}
                }
            }
        },
        "/api/v1/plans": {
            "get": {
                "tags": ["Plans"],
                "summary": "List active plans",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/plans/cache": {
            "delete": {
                "tags": ["Plans"],
                "summary": "Force every instance to reload the plan catalog",
                "responses": {"204": {"description": "Invalidated"}}
            }
        }
    },
    "definitions": {
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
                "pagination": {"type": "object"},
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
