package router

import (
	"fmt"
	"net/http"
)

func registerSwaggerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	mux.HandleFunc("/swagger/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	})

	mux.HandleFunc("/swagger/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	})
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Bank Ledger Service API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {
    "title": "Bank Ledger Service API",
    "version": "1.0.0"
  },
  "paths": {
    "/transactions": {
      "post": {
        "summary": "Perform a transfer, credit or debit",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "parameters": [
          {
            "name": "X-Customer-Id",
            "in": "header",
            "required": true,
            "schema": {"type": "string"}
          }
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["transactionType", "transactionAmount", "senderAccountNumber"],
                "properties": {
                  "transactionType": {"type": "string", "enum": ["TRANSFER", "CREDIT", "DEBIT"]},
                  "transactionAmount": {"type": "string", "example": "30.00"},
                  "senderAccountNumber": {"type": "string", "pattern": "^[0-9]{10}$"},
                  "receiverAccountNumber": {"type": "string", "pattern": "^[0-9]{10}$"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Transaction applied"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "403": {"description": "Account not owned by customer"},
          "404": {"description": "Account not found"},
          "409": {"description": "Transaction aborted"},
          "422": {"description": "Inactive account or insufficient funds"}
        }
      },
      "get": {
        "summary": "List the customer's transactions",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "parameters": [
          {
            "name": "X-Customer-Id",
            "in": "header",
            "required": true,
            "schema": {"type": "string"}
          },
          {
            "name": "page",
            "in": "query",
            "schema": {"type": "integer", "default": 0}
          },
          {
            "name": "size",
            "in": "query",
            "schema": {"type": "integer", "default": 10}
          }
        ],
        "responses": {
          "200": {"description": "Transactions fetched"},
          "401": {"description": "Unauthorized"}
        }
      }
    },
    "/login": {
      "post": {
        "summary": "Validate customer credentials",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["email", "password"],
                "properties": {
                  "email": {"type": "string"},
                  "password": {"type": "string"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Login successful"},
          "401": {"description": "Invalid credentials"},
          "404": {"description": "Customer not found"}
        }
      }
    },
    "/update-profile": {
      "put": {
        "summary": "Update customer profile and optionally rotate the password",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "parameters": [
          {
            "name": "X-Customer-Id",
            "in": "header",
            "required": true,
            "schema": {"type": "string"}
          }
        ],
        "responses": {
          "200": {"description": "Profile updated"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Customer not found"}
        }
      }
    },
    "/admin/customers": {
      "post": {
        "summary": "Register a customer",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "responses": {
          "201": {"description": "Customer created"},
          "400": {"description": "Validation error"},
          "409": {"description": "Email already registered"}
        }
      }
    },
    "/admin/accounts": {
      "post": {
        "summary": "Open an account for a customer",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "responses": {
          "201": {"description": "Account created"},
          "400": {"description": "Validation error"},
          "404": {"description": "Customer or bank not found"}
        }
      }
    },
    "/admin/banks": {
      "post": {
        "summary": "Register a bank",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "responses": {
          "201": {"description": "Bank created"},
          "400": {"description": "Validation error"}
        }
      },
      "get": {
        "summary": "List registered banks",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "responses": {
          "200": {"description": "Banks fetched"}
        }
      }
    },
    "/admin/deactivate-customer": {
      "post": {
        "summary": "Deactivate all accounts of a customer",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "responses": {
          "200": {"description": "Accounts deactivated"},
          "400": {"description": "No accounts found"},
          "404": {"description": "Customer not found"}
        }
      }
    },
    "/admin/transactions": {
      "get": {
        "summary": "List all transactions across accounts",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "parameters": [
          {
            "name": "page",
            "in": "query",
            "schema": {"type": "integer", "default": 0}
          },
          {
            "name": "size",
            "in": "query",
            "schema": {"type": "integer", "default": 10}
          }
        ],
        "responses": {
          "200": {"description": "Transactions fetched"}
        }
      }
    }
  },
  "components": {
    "securitySchemes": {
      "BasicAuth": {
        "type": "http",
        "scheme": "basic"
      }
    }
  }
}`
