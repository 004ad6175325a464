package main

import (
	"fmt"

	"github.com/leofalp/chatsorter/core/client"
	"github.com/leofalp/chatsorter/core/parse"
	"github.com/leofalp/chatsorter/providers/tool/memorytool"
	"github.com/spf13/cobra"
)

func newAddCmd(a *app) *cobra.Command {
	var toolResult string

	cmd := &cobra.Command{
		Use:   "add <chat-id> <message>",
		Short: "Store a message in a conversation's memory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []client.MessageOption
			if toolResult != "" {
				result, err := parse.ParseJSONObject(toolResult)
				if err != nil {
					return fmt.Errorf("--tool-result: %w", err)
				}
				opts = append(opts, client.WithToolResult(result))
			}

			resp, err := a.client.AddMessage(a.requestContext(cmd), args[0], args[1], opts...)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp.Raw)
		},
	}

	cmd.Flags().StringVar(&toolResult, "tool-result", "", "JSON object describing a tool result attached to the message")
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	var (
		noVectorDB bool
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "search <chat-id> <query>",
		Short: "Search a conversation's memories",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client.Search(a.requestContext(cmd), args[0], args[1],
				client.WithVectorDB(!noVectorDB),
				client.WithLimit(limit),
			)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp.Raw)
		},
	}

	cmd.Flags().BoolVar(&noVectorDB, "no-vector-db", false, "Disable vector similarity search")
	cmd.Flags().IntVar(&limit, "limit", 5, "Maximum number of results (the server decides how many it returns)")
	return cmd
}

func newContextCmd(a *app) *cobra.Command {
	var maxResults int

	cmd := &cobra.Command{
		Use:   "context <chat-id> <message>",
		Short: "Print the memories relevant to a message as a numbered list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.client.GetContext(a.requestContext(cmd), args[0], args[1], maxResults)
			if err != nil {
				return err
			}
			if text != "" {
				fmt.Fprintln(cmd.OutOrStdout(), text)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&maxResults, "max-results", 3, "Maximum number of memories")
	return cmd
}

func newPromptCmd(a *app) *cobra.Command {
	var (
		template    string
		maxMemories int
	)

	cmd := &cobra.Command{
		Use:   "prompt <chat-id> <message>",
		Short: "Store a message and print a prompt enriched with related memories",
		Long: `prompt stores the message, searches for related memories and fills
the template. {context} is replaced with the memories and {message} with
the message. Failures of the memory service are logged and the prompt is
built without them.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := a.client.BuildPrompt(a.requestContext(cmd), args[0], args[1],
				client.WithTemplate(template),
				client.WithMaxMemories(maxMemories),
			)
			fmt.Fprintln(cmd.OutOrStdout(), prompt)
			return nil
		},
	}

	cmd.Flags().StringVar(&template, "template", client.DefaultPromptTemplate, "Prompt template with {context} and {message} placeholders")
	cmd.Flags().IntVar(&maxMemories, "max-memories", 3, "Maximum number of memories in the prompt")
	return cmd
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <chat-id>",
		Short: "Print a conversation's memory statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := a.client.GetStats(a.requestContext(cmd), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), stats)
		},
	}
}

func newMemoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "memory <chat-id>",
		Short: "Print the stored memories of a conversation with their decay",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analysis, err := a.client.GetMemoryAnalysis(a.requestContext(cmd), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), analysis)
		},
	}
}

func newHealthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the service is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			health, err := a.client.HealthCheck(a.requestContext(cmd))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), health)
		},
	}
}

func newToolsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Inspect and run the memory tools offered to language models",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Print the tool descriptions as JSON",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return printJSON(cmd.OutOrStdout(), memorytool.NewCatalog(a.client).Descriptions())
			},
		},
		&cobra.Command{
			Use:   "call <tool> <json-arguments>",
			Short: "Run a tool the way a model would",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				out, err := memorytool.NewCatalog(a.client).Call(a.requestContext(cmd), args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			},
		},
	)
	return cmd
}
