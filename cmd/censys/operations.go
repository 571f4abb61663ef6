package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lexfrei/go-censys/node"
)

func newOperationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "operations",
		Short: "List supported operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "OPERATION\tMETHOD\tPATH\tPARAMETERS")
			for _, d := range node.Operations() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Operation, d.Method, d.Path, formatParams(d.Params))
			}
			return w.Flush()
		},
	}
}

func newDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "Print the node and credential schema as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeJSON(cmd, map[string]any{
				"node":       node.NodeDescription(),
				"credential": node.CredentialType(),
			})
		},
	}
}

func formatParams(params []node.ParamSpec) string {
	if len(params) == 0 {
		return "-"
	}

	parts := make([]string, len(params))
	for i, p := range params {
		switch {
		case p.Required:
			parts[i] = p.Name + "*"
		case p.Default != nil && p.Default != "":
			parts[i] = fmt.Sprintf("%s=%v", p.Name, p.Default)
		default:
			parts[i] = p.Name
		}
	}
	return strings.Join(parts, " ")
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
