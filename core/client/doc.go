// Package client is the Go SDK for the ChatSorter memory API.
//
// A [Client] stores chat messages on the remote service ([Client.AddMessage],
// [Client.Process]), runs semantic search over them ([Client.Search]), reads
// statistics and memory analysis, and checks service health. Two helpers
// turn search results into text for a language model: [Client.GetContext]
// returns a numbered list of memories and [Client.BuildPrompt] stores the
// message, retrieves memories and fills a prompt template.
//
// All scoring, decay and retrieval happen server-side; the client sends one
// HTTP request per call, never retries, and holds no mutable state, so a
// single Client can be shared between goroutines.
//
//	c, err := client.New(os.Getenv("CHATSORTER_API_KEY"))
//	if err != nil {
//	    return err
//	}
//	prompt := c.BuildPrompt(ctx, "user123", "What should I eat?",
//	    client.WithTemplate("{context}User: {message}"))
//
// Failed calls return a [*TransportError] when no response arrived and a
// [*ResponseError] for non-2xx statuses. Only BuildPrompt swallows errors.
package client
