// Package faqdex provides a Go client for the faqdex FAQ matching service.
//
// The client wraps the service's REST API: asking questions, browsing the
// corpus, reading statistics and managing conversation history.
//
//	client, _ := faqdex.New(
//	    faqdex.WithBaseURL("http://localhost:8080"),
//	    faqdex.WithAPIKey("secret"),
//	)
//	reply, _ := client.Ask(ctx, "what time do you open")
//	fmt.Println(reply.Answer)
//
// Failures reported by the service surface as *APIError; match classes
// of failure with errors.Is against the package sentinels:
//
//	if errors.Is(err, faqdex.ErrCorpusNotReady) { ... }
package faqdex
