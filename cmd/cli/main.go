package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "evenup-cli",
		Short: "EvenUp CLI tool",
		Long:  `A command line interface for interacting with the EvenUp API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the EvenUp API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	groupCmd := &cobra.Command{
		Use:   "group",
		Short: "Group operations",
	}
	groupCmd.AddCommand(groupGetCmd(), groupBalancesCmd(), groupDebtsCmd(), groupConsistencyCmd(), groupAnalyticsCmd())
	rootCmd.AddCommand(groupCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func groupGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <group-id>",
		Short: "Show a group and its members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getAndPrint("/api/v1/groups/" + args[0])
		},
	}
}

func groupBalancesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balances <group-id>",
		Short: "Show each member's net balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getAndPrint("/api/v1/groups/" + args[0] + "/balances")
		},
	}
}

func groupDebtsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "debts <group-id>",
		Short: "Show the simplified payment plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getAndPrint("/api/v1/groups/" + args[0] + "/debts")
		},
	}
}

func groupConsistencyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "consistency <group-id>",
		Short: "Check that the group's balances sum to zero",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := get("/api/v1/groups/" + args[0] + "/balances/consistency")
			if err != nil {
				return err
			}

			var result map[string]any
			if err := json.Unmarshal(body, &result); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			if consistent, ok := result["consistent"].(bool); ok && consistent {
				fmt.Println("Consistency check PASSED")
			} else {
				fmt.Printf("Consistency check FAILED (drift: %v)\n", result["drift"])
			}
			return nil
		},
	}
}

func groupAnalyticsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analytics <group-id>",
		Short: "Show spending analytics for a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getAndPrint("/api/v1/groups/" + args[0] + "/analytics")
		},
	}
}

func get(path string) ([]byte, error) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}
	return body, nil
}

func getAndPrint(path string) error {
	body, err := get(path)
	if err != nil {
		return err
	}

	var result any
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	printJSON(result)
	return nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to render: %v\n", err)
		return
	}
	fmt.Println(string(out))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
