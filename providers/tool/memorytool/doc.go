// Package memorytool exposes the ChatSorter memory service to language
// models as three tools:
//
//   - ChatSorterRemember stores a fact in a conversation's memory. HTML
//     content is converted to Markdown first.
//   - ChatSorterRecall returns the memories relevant to a query as a
//     numbered list.
//   - ChatSorterStats returns the server's statistics for a conversation.
//
// The tools accept any [Memory], which *client.Client satisfies:
//
//	c, _ := client.New(apiKey)
//	catalog := memorytool.NewCatalog(c)
//	out, err := catalog.Call(ctx, "ChatSorterRecall", `{"chat_id":"u1","query":"food"}`)
package memorytool
