// Package config provides configuration parsing for rsc servers.
//
// The configuration is stored in rsc.yaml next to the posts. Every field has
// a default, so a missing file is not an error for callers that check
// Exists first.
//
// # Configuration File Structure
//
//	server:
//	  addr: ":8080"
//	  metrics: true
//	  shutdownTimeout: 10s
//	blog:
//	  author: Jae Doe
//	  postsDir: posts
//	store:
//	  kind: redis
//	  redis:
//	    addr: localhost:6379
//	log:
//	  level: debug
//	  format: json
//	tracing:
//	  endpoint: localhost:4317
//	  insecure: true
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cfg.ApplyEnv()
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
