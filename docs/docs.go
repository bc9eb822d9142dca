// Package docs registers the Swagger document served at /swagger/index.html.
// It is maintained by hand for the core endpoints; run `swag init` to
// rebuild it from every controller annotation.
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
        "/api/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["认证"],
                "summary": "用户登录",
                "parameters": [
                    {
                        "description": "登录信息",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/controller.LoginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/activities/{id}/submit": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["练习"],
                "summary": "提交练习",
                "parameters": [
                    {"type": "integer", "description": "练习ID", "name": "id", "in": "path", "required": true},
                    {
                        "description": "代码",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/service.CodeRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/util.Response"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/aurabot/ask": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["AuraBot"],
                "summary": "向 AuraBot 提问",
                "parameters": [
                    {
                        "description": "问题与上下文",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/service.AskRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "429": {"description": "配额已用完", "schema": {"$ref": "#/definitions/util.Response"}},
                    "502": {"description": "助手暂不可用", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/analytics/dashboard": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["学习分析"],
                "summary": "学习分析看板",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        }
    },
    "definitions": {
        "controller.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "service.AskRequest": {
            "type": "object",
            "required": ["question"],
            "properties": {
                "feedback": {"type": "string"},
                "html": {"type": "string"},
                "instructions": {"type": "string"},
                "question": {"type": "string"},
                "sessionId": {"type": "string"}
            }
        },
        "service.CodeRequest": {
            "type": "object",
            "properties": {
                "code": {"type": "string"}
            }
        },
        "util.Response": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "data": {},
                "message": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "AuraEdu 后端 API",
	Description:      "AuraEdu HTML 学习平台的后端服务。",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
