package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Portal API",
        "description": "Storefront, quiz platform and job board",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {
            "name": "Authentication"
        },
        {
            "name": "Users"
        },
        {
            "name": "Admin"
        },
        {
            "name": "Products"
        },
        {
            "name": "Orders"
        },
        {
            "name": "Quizzes"
        },
        {
            "name": "Jobs"
        },
        {
            "name": "Applications"
        },
        {
            "name": "Files"
        },
        {
            "name": "Health"
        }
    ],
    "paths": {
        "/health": {
            "get": {"tags": ["Health"], "summary": "Liveness and database readiness", "responses": {"200": {"description": "OK"}, "503": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/api/auth/register": {
            "post": {"tags": ["Authentication"], "summary": "Create an account", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/AuthResponse"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "429": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/api/auth/login": {
            "post": {"tags": ["Authentication"], "summary": "Authenticate user", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/AuthResponse"}}, "401": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "429": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/api/auth/me": {
            "get": {"tags": ["Authentication"], "summary": "Current user", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/User"}}, "401": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/api/auth/profile": {
            "put": {"tags": ["Users"], "summary": "Update own profile (multipart)", "parameters": [{"name": "name", "in": "formData", "type": "string"}, {"name": "bio", "in": "formData", "type": "string"}, {"name": "skills", "in": "formData", "type": "string"}, {"name": "companyName", "in": "formData", "type": "string"}, {"name": "companyDescription", "in": "formData", "type": "string"}, {"name": "profilePhoto", "in": "formData", "type": "file"}, {"name": "resume", "in": "formData", "type": "file"}, {"name": "companyLogo", "in": "formData", "type": "file"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/User"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/api/admin/users": {
            "get": {"tags": ["Admin"], "summary": "List users", "parameters": [{"name": "role", "in": "query", "type": "string"}, {"name": "search", "in": "query", "type": "string"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/User"}}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/api/admin/users/{id}/role": {
            "put": {"tags": ["Admin"], "summary": "Change a user's role", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateRoleRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/User"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/api/admin/stats": {
            "get": {"tags": ["Admin"], "summary": "Storefront statistics", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/AdminStats"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/api/admin/orders/export": {
            "get": {"tags": ["Admin"], "summary": "Export orders as CSV", "parameters": [{"name": "status", "in": "query", "type": "string"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/api/products": {
            "get": {"tags": ["Products"], "summary": "List products", "parameters": [{"name": "category", "in": "query", "type": "string"}, {"name": "search", "in": "query", "type": "string"}, {"name": "sort", "in": "query", "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Product"}}}}},
            "post": {"tags": ["Products"], "summary": "Create product", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateProductRequest"}}], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/Product"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/api/products/{id}": {
            "get": {"tags": ["Products"], "summary": "Get product", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Product"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}},
            "put": {"tags": ["Products"], "summary": "Update product", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateProductRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Product"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}},
            "delete": {"tags": ["Products"], "summary": "Delete product", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/MessageBody"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/api/orders": {
            "get": {"tags": ["Orders"], "summary": "List all orders", "parameters": [{"name": "status", "in": "query", "type": "string"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Order"}}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}},
            "post": {"tags": ["Orders"], "summary": "Place an order", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateOrderRequest"}}], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/Order"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/api/orders/my-orders": {
            "get": {"tags": ["Orders"], "summary": "List own orders", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Order"}}}, "401": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/api/orders/{id}": {
            "get": {"tags": ["Orders"], "summary": "Get order", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Order"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/api/orders/{id}/status": {
            "put": {"tags": ["Orders"], "summary": "Advance order status", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateOrderStatusRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Order"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/api/orders/{id}/cancel": {
            "post": {"tags": ["Orders"], "summary": "Cancel own pending order", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Order"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/api/orders/{id}/invoice": {
            "get": {"tags": ["Orders"], "summary": "Download order invoice (PDF)", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/api/quizzes": {
            "get": {"tags": ["Quizzes"], "summary": "List public quizzes", "parameters": [{"name": "search", "in": "query", "type": "string"}, {"name": "category", "in": "query", "type": "string"}, {"name": "difficulty", "in": "query", "type": "string"}, {"name": "limit", "in": "query", "type": "integer"}], "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Quiz"}}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}},
            "post": {"tags": ["Quizzes"], "summary": "Create quiz", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateQuizRequest"}}], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/Quiz"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/api/quizzes/user/my-quizzes": {
            "get": {"tags": ["Quizzes"], "summary": "List own quizzes with answers", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Quiz"}}}, "401": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/api/quizzes/user/history": {
            "get": {"tags": ["Quizzes"], "summary": "Own submission history", "parameters": [{"name": "limit", "in": "query", "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/QuizResult"}}}, "401": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/api/quizzes/{id}": {
            "get": {"tags": ["Quizzes"], "summary": "Get quiz without answers", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Quiz"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}},
            "put": {"tags": ["Quizzes"], "summary": "Update quiz", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateQuizRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Quiz"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}},
            "delete": {"tags": ["Quizzes"], "summary": "Delete quiz and its results", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/MessageBody"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/api/quizzes/{id}/submit": {
            "post": {"tags": ["Quizzes"], "summary": "Submit answers", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitQuizRequest"}}], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/SubmissionResult"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/api/quizzes/{id}/leaderboard": {
            "get": {"tags": ["Quizzes"], "summary": "Quiz leaderboard", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "limit", "in": "query", "type": "integer"}], "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/LeaderboardEntry"}}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/api/quizzes/{id}/stats": {
            "get": {"tags": ["Quizzes"], "summary": "Quiz statistics", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/QuizStats"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/api/jobs": {
            "get": {"tags": ["Jobs"], "summary": "List active jobs", "parameters": [{"name": "jobType", "in": "query", "type": "string"}, {"name": "location", "in": "query", "type": "string"}, {"name": "search", "in": "query", "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Job"}}}}},
            "post": {"tags": ["Jobs"], "summary": "Post a job", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateJobRequest"}}], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/Job"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/api/jobs/recruiter/my-jobs": {
            "get": {"tags": ["Jobs"], "summary": "List own postings", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Job"}}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/api/jobs/{id}": {
            "get": {"tags": ["Jobs"], "summary": "Get job", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Job"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}},
            "put": {"tags": ["Jobs"], "summary": "Update a posting", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateJobRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Job"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}},
            "delete": {"tags": ["Jobs"], "summary": "Close a posting", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/MessageBody"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/api/applications": {
            "post": {"tags": ["Applications"], "summary": "Apply to a job", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ApplyRequest"}}], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/Application"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/api/applications/my-applications": {
            "get": {"tags": ["Applications"], "summary": "List own applications", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Application"}}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/api/applications/job/{jobId}": {
            "get": {"tags": ["Applications"], "summary": "List applications for a posting", "parameters": [{"name": "jobId", "in": "path", "required": true, "type": "string"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Application"}}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/api/applications/{id}": {
            "get": {"tags": ["Applications"], "summary": "Get application", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Application"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}},
            "delete": {"tags": ["Applications"], "summary": "Withdraw a pending application", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/MessageBody"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/api/applications/{id}/status": {
            "put": {"tags": ["Applications"], "summary": "Accept or reject an application", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateApplicationStatusRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Application"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/api/applications/{id}/resume": {
            "get": {"tags": ["Applications"], "summary": "Signed resume download link", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResumeLink"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/files/{token}": {
            "get": {"tags": ["Files"], "summary": "Stream a signed file", "parameters": [{"name": "token", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        }
    },
    "definitions": {
        "ErrorBody": {
            "type": "object",
            "properties": {"error": {"type": "string"}, "code": {"type": "string"}}
        },
        "MessageBody": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "RegisterRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}, "role": {"type": "string"}}
        },
        "LoginRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "AuthResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}, "user": {"$ref": "#/definitions/User"}}
        },
        "User": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "email": {"type": "string"}, "role": {"type": "string"}, "bio": {"type": "string"}, "skills": {"type": "array", "items": {"type": "string"}}, "resume": {"type": "string"}, "profilePhoto": {"type": "string"}, "companyName": {"type": "string"}, "companyDescription": {"type": "string"}, "companyLogo": {"type": "string"}, "quizzesCreated": {"type": "integer"}, "quizzesTaken": {"type": "integer"}, "createdAt": {"type": "string"}}
        },
        "UpdateRoleRequest": {
            "type": "object",
            "properties": {"role": {"type": "string"}}
        },
        "Product": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "category": {"type": "string"}, "price": {"type": "number"}, "stock": {"type": "integer"}, "description": {"type": "string"}, "image": {"type": "string"}, "createdAt": {"type": "string"}}
        },
        "CreateProductRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "category": {"type": "string"}, "price": {"type": "number"}, "stock": {"type": "integer"}, "description": {"type": "string"}, "image": {"type": "string"}}
        },
        "UpdateProductRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "category": {"type": "string"}, "price": {"type": "number"}, "stock": {"type": "integer"}, "description": {"type": "string"}, "image": {"type": "string"}}
        },
        "OrderItem": {
            "type": "object",
            "properties": {"productId": {"type": "string"}, "name": {"type": "string"}, "price": {"type": "number"}, "quantity": {"type": "integer"}, "image": {"type": "string"}}
        },
        "ShippingInfo": {
            "type": "object",
            "properties": {"firstName": {"type": "string"}, "lastName": {"type": "string"}, "address": {"type": "string"}, "city": {"type": "string"}, "zip": {"type": "string"}, "country": {"type": "string"}}
        },
        "Order": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "userId": {"type": "string"}, "userName": {"type": "string"}, "userEmail": {"type": "string"}, "items": {"type": "array", "items": {"$ref": "#/definitions/OrderItem"}}, "shippingInfo": {"$ref": "#/definitions/ShippingInfo"}, "paymentInfo": {"type": "object", "properties": {"cardLast4": {"type": "string"}, "cardName": {"type": "string"}}}, "total": {"type": "number"}, "status": {"type": "string"}, "createdAt": {"type": "string"}}
        },
        "CreateOrderRequest": {
            "type": "object",
            "properties": {"items": {"type": "array", "items": {"type": "object", "properties": {"productId": {"type": "string"}, "quantity": {"type": "integer"}}}}, "shippingInfo": {"$ref": "#/definitions/ShippingInfo"}, "paymentInfo": {"type": "object", "properties": {"cardNumber": {"type": "string"}, "cardName": {"type": "string"}}}, "total": {"type": "number"}}
        },
        "UpdateOrderStatusRequest": {
            "type": "object",
            "properties": {"status": {"type": "string"}}
        },
        "AdminStats": {
            "type": "object",
            "properties": {"totalUsers": {"type": "integer"}, "totalProducts": {"type": "integer"}, "totalOrders": {"type": "integer"}, "totalRevenue": {"type": "number"}, "ordersByStatus": {"type": "object"}}
        },
        "Question": {
            "type": "object",
            "properties": {"question": {"type": "string"}, "options": {"type": "array", "items": {"type": "string"}}, "correctAnswer": {"type": "integer"}}
        },
        "Quiz": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "title": {"type": "string"}, "description": {"type": "string"}, "createdBy": {"type": "string"}, "creatorName": {"type": "string"}, "questions": {"type": "array", "items": {"$ref": "#/definitions/Question"}}, "timeLimit": {"type": "integer"}, "attempts": {"type": "integer"}, "averageScore": {"type": "number"}, "category": {"type": "string"}, "difficulty": {"type": "string"}, "isPublic": {"type": "boolean"}, "tags": {"type": "array", "items": {"type": "string"}}}
        },
        "CreateQuizRequest": {
            "type": "object",
            "properties": {"title": {"type": "string"}, "description": {"type": "string"}, "questions": {"type": "array", "items": {"$ref": "#/definitions/Question"}}, "timeLimit": {"type": "integer"}, "category": {"type": "string"}, "difficulty": {"type": "string"}, "isPublic": {"type": "boolean"}, "tags": {"type": "array", "items": {"type": "string"}}}
        },
        "UpdateQuizRequest": {
            "type": "object",
            "properties": {"title": {"type": "string"}, "description": {"type": "string"}, "timeLimit": {"type": "integer"}, "category": {"type": "string"}, "difficulty": {"type": "string"}, "isPublic": {"type": "boolean"}, "tags": {"type": "array", "items": {"type": "string"}}}
        },
        "SubmitQuizRequest": {
            "type": "object",
            "properties": {"answers": {"type": "array", "items": {"type": "integer"}}, "timeTaken": {"type": "integer"}}
        },
        "SubmissionResult": {
            "type": "object",
            "properties": {"resultId": {"type": "string"}, "score": {"type": "integer"}, "totalQuestions": {"type": "integer"}, "percentage": {"type": "number"}, "grade": {"type": "string"}, "passed": {"type": "boolean"}, "results": {"type": "array", "items": {"type": "object"}}}
        },
        "QuizResult": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "quizId": {"type": "string"}, "quizTitle": {"type": "string"}, "score": {"type": "integer"}, "totalQuestions": {"type": "integer"}, "percentage": {"type": "number"}, "timeTaken": {"type": "integer"}, "completedAt": {"type": "string"}}
        },
        "LeaderboardEntry": {
            "type": "object",
            "properties": {"username": {"type": "string"}, "score": {"type": "integer"}, "percentage": {"type": "number"}, "timeTaken": {"type": "integer"}, "completedAt": {"type": "string"}}
        },
        "QuizStats": {
            "type": "object",
            "properties": {"totalAttempts": {"type": "integer"}, "averageScore": {"type": "number"}, "highestScore": {"type": "integer"}, "lowestScore": {"type": "integer"}, "passRate": {"type": "number"}}
        },
        "Job": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "title": {"type": "string"}, "description": {"type": "string"}, "requirements": {"type": "string"}, "location": {"type": "string"}, "salary": {"type": "string"}, "jobType": {"type": "string"}, "experienceLevel": {"type": "string"}, "postedBy": {"type": "string"}, "companyName": {"type": "string"}, "companyLogo": {"type": "string"}, "positions": {"type": "integer"}, "deadline": {"type": "string"}, "isActive": {"type": "boolean"}, "applicationCount": {"type": "integer"}}
        },
        "CreateJobRequest": {
            "type": "object",
            "properties": {"title": {"type": "string"}, "description": {"type": "string"}, "requirements": {"type": "string"}, "location": {"type": "string"}, "salary": {"type": "string"}, "jobType": {"type": "string"}, "experienceLevel": {"type": "string"}, "positions": {"type": "integer"}, "deadline": {"type": "string"}}
        },
        "UpdateJobRequest": {
            "type": "object",
            "properties": {"title": {"type": "string"}, "description": {"type": "string"}, "requirements": {"type": "string"}, "location": {"type": "string"}, "salary": {"type": "string"}, "jobType": {"type": "string"}, "experienceLevel": {"type": "string"}, "positions": {"type": "integer"}, "deadline": {"type": "string"}, "isActive": {"type": "boolean"}}
        },
        "ApplyRequest": {
            "type": "object",
            "properties": {"jobId": {"type": "string"}, "coverLetter": {"type": "string"}}
        },
        "UpdateApplicationStatusRequest": {
            "type": "object",
            "properties": {"status": {"type": "string"}}
        },
        "Application": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "jobId": {"type": "string"}, "applicantId": {"type": "string"}, "applicantName": {"type": "string"}, "applicantEmail": {"type": "string"}, "applicantSkills": {"type": "array", "items": {"type": "string"}}, "coverLetter": {"type": "string"}, "status": {"type": "string"}, "jobTitle": {"type": "string"}, "createdAt": {"type": "string"}}
        },
        "ResumeLink": {
            "type": "object",
            "properties": {"url": {"type": "string"}, "expiresAt": {"type": "string"}}
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
