// Package docs Food Shop API 的 swagger 文档，与 controller 上的注解保持一致
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
		"/login": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Auth"
				],
				"summary": "管理员/卖家登录",
				"description": "成功后写入会话 Cookie，有效期 24 小时",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "登录信息",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.LoginRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.LoginResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"429": {
						"description": "Too Many Requests",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/logout": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Auth"
				],
				"summary": "登出",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.SuccessResponse"
						}
					}
				}
			}
		},
		"/check-auth": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Auth"
				],
				"summary": "检查登录状态",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.CheckAuthResponse"
						}
					}
				}
			}
		},
		"/admin/sellers": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Admin"
				],
				"summary": "卖家列表",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/dto.AccountInfo"
							}
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Admin"
				],
				"summary": "创建卖家账号",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "卖家信息",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.CreateSellerRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.CreateSellerResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/admin/sellers/{id}": {
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Admin"
				],
				"summary": "删除卖家账号 (幂等)",
				"parameters": [
					{
						"type": "string",
						"description": "卖家ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.SuccessResponse"
						}
					}
				}
			}
		},
		"/admin/products": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Admin"
				],
				"summary": "全部商品 (含已隐藏)",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/model.Product"
							}
						}
					}
				}
			}
		},
		"/admin/products/{id}": {
			"patch": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Admin"
				],
				"summary": "修改商品状态",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "商品ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "active | hidden",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.UpdateStatusRequest"
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
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/admin/invoices": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Admin"
				],
				"summary": "全部订单",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/model.Invoice"
							}
						}
					}
				}
			}
		},
		"/seller/products": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Seller"
				],
				"summary": "当前卖家的商品",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/model.Product"
							}
						}
					}
				}
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Seller"
				],
				"summary": "新建商品",
				"consumes": [
					"multipart/form-data"
				],
				"parameters": [
					{
						"type": "string",
						"description": "名称",
						"name": "name",
						"in": "formData",
						"required": true
					},
					{
						"type": "number",
						"description": "价格",
						"name": "price",
						"in": "formData",
						"required": true
					},
					{
						"type": "string",
						"description": "单位",
						"name": "unit",
						"in": "formData",
						"required": false
					},
					{
						"type": "string",
						"description": "描述",
						"name": "description",
						"in": "formData",
						"required": false
					},
					{
						"type": "integer",
						"description": "缩略图下标",
						"name": "thumbnailIndex",
						"in": "formData",
						"required": false
					},
					{
						"type": "file",
						"description": "图片 (最多 10 张，每张 5MB)",
						"name": "images",
						"in": "formData",
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
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"413": {
						"description": "Request Entity Too Large",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/seller/products/{id}": {
			"put": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Seller"
				],
				"summary": "修改自己的商品",
				"description": "最终图片 = existingImages ++ newImages",
				"consumes": [
					"multipart/form-data"
				],
				"parameters": [
					{
						"type": "string",
						"description": "商品ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "名称",
						"name": "name",
						"in": "formData",
						"required": true
					},
					{
						"type": "number",
						"description": "价格",
						"name": "price",
						"in": "formData",
						"required": true
					},
					{
						"type": "string",
						"description": "单位",
						"name": "unit",
						"in": "formData",
						"required": false
					},
					{
						"type": "string",
						"description": "描述",
						"name": "description",
						"in": "formData",
						"required": false
					},
					{
						"type": "integer",
						"description": "缩略图下标",
						"name": "thumbnailIndex",
						"in": "formData",
						"required": false
					},
					{
						"type": "string",
						"description": "保留的旧图片 (JSON 数组)",
						"name": "existingImages",
						"in": "formData",
						"required": false
					},
					{
						"type": "file",
						"description": "新图片",
						"name": "newImages",
						"in": "formData",
						"required": false
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
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"413": {
						"description": "Request Entity Too Large",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			},
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Seller"
				],
				"summary": "删除自己的商品及其图片",
				"parameters": [
					{
						"type": "string",
						"description": "商品ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.SuccessResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/seller/invoices": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Seller"
				],
				"summary": "当前卖家商品的订单",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/model.Invoice"
							}
						}
					}
				}
			}
		},
		"/products": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Products"
				],
				"summary": "在售商品列表",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/model.Product"
							}
						}
					}
				}
			}
		},
		"/products/{id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Products"
				],
				"summary": "在售商品详情",
				"parameters": [
					{
						"type": "string",
						"description": "商品ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/model.Product"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/orders": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Orders"
				],
				"summary": "顾客下单",
				"description": "订单写入后异步发送邮件给顾客与卖家，邮件失败不影响下单结果",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "订单信息",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.PlaceOrderRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.OrderResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.OrderResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.OrderResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/dto.OrderResponse"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"dto.AccountInfo": {
			"type": "object",
			"properties": {
				"createdAt": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"id": {
					"type": "string"
				},
				"role": {
					"$ref": "#/definitions/model.Role"
				},
				"username": {
					"type": "string"
				}
			}
		},
		"dto.CheckAuthResponse": {
			"type": "object",
			"properties": {
				"authenticated": {
					"type": "boolean"
				},
				"user": {
					"$ref": "#/definitions/dto.SessionUser"
				}
			}
		},
		"dto.CreateSellerRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string",
					"maxLength": 100
				},
				"username": {
					"type": "string",
					"maxLength": 50
				}
			},
			"required": [
				"email",
				"password",
				"username"
			]
		},
		"dto.CreateSellerResponse": {
			"type": "object",
			"properties": {
				"seller": {
					"$ref": "#/definitions/dto.AccountInfo"
				},
				"success": {
					"type": "boolean"
				}
			}
		},
		"dto.ErrorResponse": {
			"type": "object",
			"properties": {
				"error": {
					"type": "string"
				}
			}
		},
		"dto.LoginRequest": {
			"type": "object",
			"properties": {
				"password": {
					"type": "string"
				},
				"username": {
					"type": "string"
				}
			}
		},
		"dto.LoginResponse": {
			"type": "object",
			"properties": {
				"role": {
					"$ref": "#/definitions/model.Role"
				},
				"success": {
					"type": "boolean"
				},
				"username": {
					"type": "string"
				}
			}
		},
		"dto.OrderResponse": {
			"type": "object",
			"properties": {
				"error": {
					"type": "string"
				},
				"invoice": {
					"$ref": "#/definitions/model.Invoice"
				},
				"success": {
					"type": "boolean"
				}
			}
		},
		"dto.PlaceOrderRequest": {
			"type": "object",
			"properties": {
				"customerEmail": {
					"type": "string"
				},
				"customerName": {
					"type": "string"
				},
				"productId": {
					"type": "string"
				},
				"quantity": {
					"type": "integer"
				}
			}
		},
		"dto.ProductResponse": {
			"type": "object",
			"properties": {
				"product": {
					"$ref": "#/definitions/model.Product"
				},
				"success": {
					"type": "boolean"
				}
			}
		},
		"dto.SessionUser": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"id": {
					"type": "string"
				},
				"role": {
					"$ref": "#/definitions/model.Role"
				},
				"username": {
					"type": "string"
				}
			}
		},
		"dto.SuccessResponse": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				}
			}
		},
		"dto.UpdateStatusRequest": {
			"type": "object",
			"properties": {
				"status": {
					"$ref": "#/definitions/model.ProductStatus"
				}
			},
			"required": [
				"status"
			]
		},
		"model.Invoice": {
			"type": "object",
			"properties": {
				"createdAt": {
					"type": "string"
				},
				"customerEmail": {
					"type": "string"
				},
				"customerName": {
					"type": "string"
				},
				"id": {
					"type": "string"
				},
				"productId": {
					"type": "string"
				},
				"productName": {
					"type": "string"
				},
				"productPrice": {
					"type": "number"
				},
				"productUnit": {
					"type": "string"
				},
				"quantity": {
					"type": "integer"
				},
				"sellerEmail": {
					"type": "string"
				},
				"sellerId": {
					"type": "string"
				},
				"total": {
					"type": "number"
				}
			}
		},
		"model.Product": {
			"type": "object",
			"properties": {
				"createdAt": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"id": {
					"type": "string"
				},
				"images": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"name": {
					"type": "string"
				},
				"price": {
					"type": "number"
				},
				"sellerEmail": {
					"type": "string"
				},
				"sellerId": {
					"type": "string"
				},
				"status": {
					"$ref": "#/definitions/model.ProductStatus"
				},
				"thumbnail": {
					"type": "string"
				},
				"unit": {
					"type": "string"
				},
				"updatedAt": {
					"type": "string"
				}
			}
		},
		"model.ProductStatus": {
			"type": "string",
			"enum": [
				"active",
				"hidden"
			],
			"x-enum-varnames": [
				"ProductStatusActive",
				"ProductStatusHidden"
			]
		},
		"model.Role": {
			"type": "string",
			"enum": [
				"admin",
				"seller"
			],
			"x-enum-varnames": [
				"RoleAdmin",
				"RoleSeller"
			]
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Food Shop API",
	Description:      "食品商城后端：卖家上架商品，顾客下单，管理员管理卖家与商品",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
