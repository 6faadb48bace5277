package main

// General API documentation for swaggo. Regenerate with `swag init`.
//
// @title           inferd API
// @version         0.1.0
// @description     OpenAI-compatible HTTP API over a local llama.cpp engine.
//
// @BasePath  /
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token. Standard keys for /v1, admin keys for /admin.
//
// @schemes http
