// Command censys runs Censys Search API operations over batches of items.
//
// Usage:
//
//	censys operations
//	censys describe
//	censys test
//	censys run getHost -p ipAddress=8.8.8.8 -p atTime=2024-01-01
//	censys run getHost --items hosts.yaml -p 'ipAddress={{ $json.ip }}' --continue-on-fail
//
// Credentials come from --api-id/--api-secret, CENSYS_API_ID/CENSYS_API_SECRET
// or the config file (censys.yml in the working directory or ~/.config/censys).
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
