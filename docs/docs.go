// Package docs содержит описание HTTP API в формате Swagger 2.0 для /docs.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Проверка состояния",
                "responses": {
                    "200": {"description": "Сервис работает", "schema": {"$ref": "#/definitions/response.Response"}},
                    "503": {"description": "База данных недоступна", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/login": {
            "post": {
                "description": "Проверяет email и пароль, возвращает токен доступа.",
                "consumes": ["application/json", "application/x-www-form-urlencoded", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Вход пользователя",
                "parameters": [
                    {"description": "Учетные данные пользователя", "name": "request", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/forms.LoginForm"}}
                ],
                "responses": {
                    "200": {"description": "Успешная авторизация", "schema": {
                        "allOf": [
                            {"$ref": "#/definitions/response.Response"},
                            {"type": "object", "properties": {"data": {"$ref": "#/definitions/models.AccessToken"}}}
                        ]}},
                    "400": {"description": "Некорректное тело запроса", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "401": {"description": "Неверные учетные данные", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "422": {"description": "Ошибка валидации", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "500": {"description": "Внутренняя ошибка сервера", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Возвращает пользователя, которому выдан токен доступа.",
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Текущий пользователь",
                "responses": {
                    "200": {"description": "Профиль пользователя", "schema": {
                        "allOf": [
                            {"$ref": "#/definitions/response.Response"},
                            {"type": "object", "properties": {"data": {"$ref": "#/definitions/models.UserProfile"}}}
                        ]}},
                    "401": {"description": "Токен отсутствует, истек или неверен", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/register": {
            "post": {
                "description": "Создает учетную запись. Форма перенаправляется на /login, JSON получает пользователя.",
                "consumes": ["application/json", "application/x-www-form-urlencoded", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Регистрация пользователя",
                "parameters": [
                    {"description": "Данные нового пользователя", "name": "request", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/forms.RegisterForm"}}
                ],
                "responses": {
                    "201": {"description": "Пользователь создан", "schema": {
                        "allOf": [
                            {"$ref": "#/definitions/response.Response"},
                            {"type": "object", "properties": {"data": {"$ref": "#/definitions/models.UserProfile"}}}
                        ]}},
                    "302": {"description": "Перенаправление на /login"},
                    "400": {"description": "Некорректное тело запроса", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "409": {"description": "Пользователь уже существует", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "422": {"description": "Ошибка валидации", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "500": {"description": "Внутренняя ошибка сервера", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/token": {
            "post": {
                "description": "Обменивает username (email) и password на токен доступа.",
                "consumes": ["application/x-www-form-urlencoded", "multipart/form-data", "application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Выдача токена (OAuth2 password grant)",
                "parameters": [
                    {"description": "Учетные данные", "name": "request", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/forms.TokenForm"}}
                ],
                "responses": {
                    "200": {"description": "Токен выдан", "schema": {"$ref": "#/definitions/models.AccessToken"}},
                    "401": {"description": "Неверные учетные данные", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "500": {"description": "Внутренняя ошибка сервера", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "forms.LoginForm": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "forms.RegisterForm": {
            "type": "object",
            "required": ["email", "firstname", "lastname", "password"],
            "properties": {
                "email": {"type": "string"},
                "firstname": {"type": "string"},
                "lastname": {"type": "string"},
                "password": {"type": "string", "maxLength": 72, "minLength": 5}
            }
        },
        "forms.TokenForm": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "client_id": {"type": "string"},
                "client_secret": {"type": "string"},
                "grant_type": {"type": "string"},
                "password": {"type": "string"},
                "scope": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "models.AccessToken": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "token_type": {"type": "string"}
            }
        },
        "models.UserProfile": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "firstname": {"type": "string"},
                "lastname": {"type": "string"},
                "registered_at": {"type": "string"},
                "uuid": {"type": "string"}
            }
        },
        "response.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "invalid request body"},
                "errors": {"type": "array", "items": {"type": "string"}, "example": ["User already exists!"]},
                "status": {"type": "string", "example": "Error"}
            }
        },
        "response.Response": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"type": "string"},
                "errors": {"type": "array", "items": {"type": "string"}},
                "status": {"type": "string"}
            }
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

// SwaggerInfo содержит метаданные API, подставляемые в шаблон.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Akiba Auth API",
	Description:      "Регистрация пользователей и выдача токенов доступа",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
