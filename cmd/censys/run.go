package main

import (
	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lexfrei/go-censys/node"
	"github.com/lexfrei/go-censys/observability/prommetrics"
)

type runOptions struct {
	itemsFile      string
	paramsFile     string
	params         []string
	continueOnFail bool
	raw            bool
	timeoutMillis  int
	metricsFile    string
}

func newRunCmd(v *viper.Viper) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run <operation>",
		Short: "Run an operation once per input item and print the results as JSON",
		Example: `  censys run searchHosts -p query='services.service_name: HTTP' -p perPage=10
  censys run getHost --items hosts.yaml -p 'ipAddress={{ $json.ip }}' --continue-on-fail
  censys run createTag -p tagName=watchlist -p tagColor=ff6113`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			ops := node.Operations()
			names := make([]string, len(ops))
			for i, d := range ops {
				names[i] = string(d.Operation)
			}
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, v, node.Operation(args[0]), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.itemsFile, "items", "", "JSON/YAML list of input items (- for stdin)")
	flags.StringVar(&opts.paramsFile, "params", "", "JSON/YAML object of parameter values")
	flags.StringArrayVarP(&opts.params, "param", "p", nil, "parameter as name=value, repeatable")
	flags.BoolVar(&opts.continueOnFail, "continue-on-fail", false, "record failed items as error objects instead of aborting")
	flags.BoolVar(&opts.raw, "raw", false, "return the full response instead of its result field")
	flags.IntVar(&opts.timeoutMillis, "timeout", 0, "per-item request timeout in milliseconds (default 30000)")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics in text format to this file")

	return cmd
}

func runOperation(cmd *cobra.Command, v *viper.Viper, op node.Operation, opts *runOptions) error {
	if _, ok := node.Lookup(op); !ok {
		return errors.Wrapf(node.ErrUnknownOperation, "%q (see 'censys operations')", op)
	}

	params, err := loadParams(opts.paramsFile)
	if err != nil {
		return err
	}
	for _, assignment := range opts.params {
		if err := setParam(params, assignment); err != nil {
			return err
		}
	}
	if opts.raw {
		params[node.AdditionalOptionsParam] = withOption(params, "returnRawResponse", true)
	}
	if opts.timeoutMillis > 0 {
		params[node.AdditionalOptionsParam] = withOption(params, "timeout", opts.timeoutMillis)
	}

	inputs, err := loadItems(opts.itemsFile)
	if err != nil {
		return err
	}

	items, err := buildItems(params, inputs)
	if err != nil {
		return err
	}

	cfg, err := nodeConfig(v)
	if err != nil {
		return err
	}
	cfg.ContinueOnFail = opts.continueOnFail

	var registry *prometheus.Registry
	if opts.metricsFile != "" {
		registry = prometheus.NewRegistry()
		recorder, err := prommetrics.New(registry)
		if err != nil {
			return errors.Wrap(err, "failed to create metrics recorder")
		}
		cfg.Metrics = recorder
	}

	n, err := node.New(cfg)
	if err != nil {
		return err
	}

	out, runErr := n.Execute(cmd.Context(), op, items)

	if registry != nil {
		if err := prometheus.WriteToTextfile(opts.metricsFile, registry); err != nil {
			return errors.Wrapf(err, "failed to write metrics to %s", opts.metricsFile)
		}
	}

	if runErr != nil {
		return runErr
	}

	return writeJSON(cmd, out)
}

func withOption(params map[string]any, key string, value any) map[string]any {
	options, ok := params[node.AdditionalOptionsParam].(map[string]any)
	if !ok {
		options = map[string]any{}
	}
	options[key] = value
	return options
}
