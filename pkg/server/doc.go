// Package server is the HTTP transport for server component trees.
//
// For every route the server asks a RouteFunc for the raw tree, resolves it
// into a client tree and delivers it in one of two forms:
//
//	GET /<route>        HTML document with the encoded tree embedded
//	GET /<route>?jsx    the encoded tree alone, as application/json
//
// POST /<route> hands a JSON payload to the Mutator and answers with an empty
// 200. The browser runtime is served from /client.js and, when enabled,
// Prometheus metrics from /metrics.
//
// Errors carry no body: a missing route maps to 404 and anything else to 500.
//
//	srv := server.New(server.DefaultConfig(), b.Route, b)
//	if err := srv.Run(ctx, ":8080"); err != nil {
//	    log.Fatal(err)
//	}
package server
