// Package docs registra la documentación OpenAPI de la API.
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
        "/api/warehouses": {
            "get": {
                "tags": [
                    "warehouses"
                ],
                "summary": "Listar almacenes",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.WarehouseResponse"
                            }
                        }
                    },
                    "500": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/stock/upload": {
            "post": {
                "tags": [
                    "stock"
                ],
                "summary": "Cargar archivo de stock",
                "description": "CSV simple (sku,descripcion,stock) o reporte de valuación. Si no se indica almacén se toma el código del encabezado del reporte de valuación.",
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "file",
                        "description": "Archivo CSV",
                        "name": "file",
                        "in": "formData",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "ID del almacén",
                        "name": "almacenId",
                        "in": "formData"
                    },
                    {
                        "type": "string",
                        "description": "Código del almacén (ej. 0001-AGV)",
                        "name": "codigo",
                        "in": "formData"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.IngestResult"
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "413": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/stock": {
            "get": {
                "tags": [
                    "stock"
                ],
                "summary": "Stock por almacén",
                "description": "Una fila por producto con la cantidad en cada almacén, total y alerta.",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "default": 0,
                        "description": "Offset",
                        "name": "offset",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Página (desde 1); alternativa a offset",
                        "name": "page",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "default": 50,
                        "description": "Límite",
                        "name": "limit",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Busca en SKU y descripción",
                        "name": "search",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.StockPageResponse"
                        }
                    },
                    "500": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/stock/replenishment": {
            "get": {
                "tags": [
                    "stock"
                ],
                "summary": "Lista de resurtido",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.ReplenishmentSuggestionDTO"
                            }
                        }
                    },
                    "500": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/stock/replenishment.pdf": {
            "get": {
                "tags": [
                    "stock"
                ],
                "summary": "Lista de resurtido en PDF",
                "produces": [
                    "application/pdf"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "500": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/products": {
            "post": {
                "tags": [
                    "products"
                ],
                "summary": "Crear producto",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Datos del producto",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.CreateProductRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.ProductResponse"
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/products/{id}": {
            "get": {
                "tags": [
                    "products"
                ],
                "summary": "Obtener producto por ID",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID del producto",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ProductResponse"
                        }
                    },
                    "404": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/products/{id}/limits": {
            "put": {
                "tags": [
                    "products"
                ],
                "summary": "Actualizar límites de stock",
                "description": "stockMinimo y stockMaximo son requeridos; stockMaximo debe ser mayor que stockMinimo.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "ID del producto",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Límites",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.UpdateLimitsRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ProductResponse"
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/update-stock-limits": {
            "post": {
                "tags": [
                    "products"
                ],
                "summary": "Actualizar límites de stock (id en el cuerpo)",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "id + límites",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.UpdateLimitsRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ProductResponse"
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                },
                "code": {
                    "type": "string"
                }
            }
        },
        "dto.WarehouseResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "codigo": {
                    "type": "string"
                },
                "nombre": {
                    "type": "string"
                }
            }
        },
        "dto.IngestResult": {
            "type": "object",
            "properties": {
                "runId": {
                    "type": "string"
                },
                "almacenId": {
                    "type": "integer"
                },
                "codigo": {
                    "type": "string"
                },
                "formato": {
                    "type": "string"
                },
                "filas": {
                    "type": "integer"
                },
                "updatedProducts": {
                    "type": "integer"
                },
                "updatedInventory": {
                    "type": "integer"
                },
                "message": {
                    "type": "string"
                },
                "success": {
                    "type": "boolean"
                }
            }
        },
        "dto.PageRequest": {
            "type": "object",
            "properties": {
                "limit": {
                    "type": "integer"
                },
                "offset": {
                    "type": "integer"
                }
            }
        },
        "dto.WarehouseColumn": {
            "type": "object",
            "properties": {
                "almacenId": {
                    "type": "integer"
                },
                "codigo": {
                    "type": "string"
                },
                "nombre": {
                    "type": "string"
                }
            }
        },
        "dto.WarehouseQuantity": {
            "type": "object",
            "properties": {
                "almacenId": {
                    "type": "integer"
                },
                "codigo": {
                    "type": "string"
                },
                "cantidad": {
                    "type": "integer"
                }
            }
        },
        "dto.StockItem": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "sku": {
                    "type": "string"
                },
                "nombre": {
                    "type": "string"
                },
                "descripcion": {
                    "type": "string"
                },
                "stockMinimo": {
                    "type": "integer"
                },
                "stockMaximo": {
                    "type": "integer"
                },
                "tiempoDeResurtido": {
                    "type": "integer"
                },
                "almacenes": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.WarehouseQuantity"
                    }
                },
                "total": {
                    "type": "integer"
                },
                "alerta": {
                    "type": "string",
                    "enum": [
                        "",
                        "at-minimum",
                        "at-maximum"
                    ]
                }
            }
        },
        "dto.StockPageResponse": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.StockItem"
                    }
                },
                "warehouses": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.WarehouseColumn"
                    }
                },
                "hasMore": {
                    "type": "boolean"
                },
                "total": {
                    "type": "integer"
                },
                "page": {
                    "$ref": "#/definitions/dto.PageRequest"
                }
            }
        },
        "dto.ReplenishmentSuggestionDTO": {
            "type": "object",
            "properties": {
                "productId": {
                    "type": "integer"
                },
                "sku": {
                    "type": "string"
                },
                "descripcion": {
                    "type": "string"
                },
                "total": {
                    "type": "integer"
                },
                "stockMinimo": {
                    "type": "integer"
                },
                "stockMaximo": {
                    "type": "integer"
                },
                "sugerido": {
                    "type": "integer"
                },
                "tiempoDeResurtido": {
                    "type": "integer"
                },
                "priority": {
                    "type": "integer"
                }
            }
        },
        "dto.CreateProductRequest": {
            "type": "object",
            "properties": {
                "sku": {
                    "type": "string"
                },
                "nombre": {
                    "type": "string"
                },
                "descripcion": {
                    "type": "string"
                },
                "stockMinimo": {
                    "type": "integer"
                },
                "stockMaximo": {
                    "type": "integer"
                },
                "tiempoDeResurtido": {
                    "type": "integer"
                }
            },
            "required": [
                "sku"
            ]
        },
        "dto.UpdateLimitsRequest": {
            "type": "object",
            "properties": {
                "id": {
                    "description": "número o cadena numérica",
                    "type": "string"
                },
                "stockMinimo": {
                    "description": "número o cadena numérica",
                    "type": "string"
                },
                "stockMaximo": {
                    "description": "número o cadena numérica",
                    "type": "string"
                },
                "tiempoDeResurtido": {
                    "description": "número o cadena numérica",
                    "type": "string"
                }
            }
        },
        "dto.ProductResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "sku": {
                    "type": "string"
                },
                "nombre": {
                    "type": "string"
                },
                "descripcion": {
                    "type": "string"
                },
                "stockMinimo": {
                    "type": "integer"
                },
                "stockMaximo": {
                    "type": "integer"
                },
                "tiempoDeResurtido": {
                    "type": "integer"
                },
                "createdAt": {
                    "type": "string"
                },
                "updatedAt": {
                    "type": "string"
                }
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
	Title:            "Stock Almacenes API",
	Description:      "Conciliación de stock multi-almacén a partir de archivos CSV.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
