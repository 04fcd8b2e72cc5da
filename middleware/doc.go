// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /ballot", middleware.WithLogging(handler))

Logs request start (method, path, client IP) and completion (status,
duration_ms).

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

The request origin is echoed back with credentials allowed so the
ballot_session cookie reaches the API from the frontend.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, view)
	middleware.ErrorResponse(w, http.StatusBadRequest, "invalid candidate id")
	middleware.ErrorResponseCode(w, http.StatusUnprocessableEntity,
		"council_capacity_exceeded", "voting.maxCouncilSelected")

The code is stable for clients to branch on; the message of ballot rule
errors is the frontend's translation key.

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Handles X-Forwarded-For and X-Real-IP. Used in request logs.
*/
package middleware
