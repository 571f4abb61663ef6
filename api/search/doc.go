// Package search provides a Go client for the Censys Search API v2.
//
// The Search API gives access to Censys host and certificate data and to
// the team's tags. Requests are authenticated with HTTP Basic auth using
// the API ID and secret from https://search.censys.io/account/api.
//
// Responses are returned as generic JSON objects (Object). Most v2
// endpoints wrap their payload as {"code", "status", "result"}; the
// envelope is left intact here.
//
// # Rate Limiting and Retries
//
// Both are disabled by default. Set RateLimitPerMinute to throttle
// requests client-side and MaxRetries to retry 429 and 5xx responses with
// exponential backoff (Retry-After is honoured).
//
// # Example Usage
//
//	client, err := search.New(os.Getenv("CENSYS_API_ID"), os.Getenv("CENSYS_API_SECRET"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	hosts, err := client.SearchHosts(context.Background(), &search.SearchHostsParams{
//	    Query:   "services.service_name: HTTP",
//	    PerPage: 25,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(hosts["result"])
//
// # Generic Requests
//
// Endpoints without a typed method can be reached through Do:
//
//	obj, err := client.Do(ctx, &search.Request{
//	    Method: http.MethodGet,
//	    Path:   search.Path("v2", "experimental", "hosts", ip, "history"),
//	})
package search
