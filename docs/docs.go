// Package docs registers the OpenAPI document served at /swagger.
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
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new player account",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Exchange credentials for a bearer token",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/matches": {
            "get": {
                "tags": ["matches"],
                "summary": "List matches, filterable by status, phase and group",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/matches/{matchID}/result": {
            "put": {
                "tags": ["matches"],
                "summary": "Enter a final result and propagate points and standings",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/predictions": {
            "post": {
                "tags": ["predictions"],
                "summary": "Create or replace the caller's prediction for a match",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/predictions/potential": {
            "get": {
                "tags": ["predictions"],
                "summary": "Best case points for a prediction shape",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/standings/{group}": {
            "get": {
                "tags": ["standings"],
                "summary": "Ranked table of one group",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/leaderboard": {
            "get": {
                "tags": ["leaderboard"],
                "summary": "Users ranked by total prediction points",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/leaderboard/worst-value": {
            "get": {
                "tags": ["leaderboard"],
                "summary": "Users ranked by points per bet, ascending",
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
	Title:            "Prediction League API",
	Description:      "Match prediction game: guesses, scoring, standings and leaderboards.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
