// Package requestid correlates the log lines of one HTTP request.
//
// Middleware assigns every request an ID (reusing a well-formed X-Request-ID
// from the client), and LogAttr lets the logger package stamp it on every
// record written with the request context:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LogAttr))
//	router.Use(requestid.Middleware)
package requestid
