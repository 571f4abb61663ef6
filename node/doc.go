// Package node runs Censys Search API operations over batches of input
// items, the way a workflow automation host runs a node.
//
// The operation set is a static registry: every Operation maps to one
// Descriptor holding its HTTP method, path template and parameters.
// BuildRequest turns one item's parameters into a search.Request without
// touching the network; Node.Execute sends one request per item, in
// order, and returns exactly one output object per item.
//
// # Example Usage
//
//	n, err := node.New(node.Config{
//	    Credentials:    node.Credentials{APIID: id, APISecret: secret},
//	    ContinueOnFail: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := n.Execute(ctx, node.OpGetHost, []node.Item{
//	    {Params: node.Params{"ipAddress": "8.8.8.8", "atTime": "2024-01-01"}},
//	})
//
// # Output
//
// Acknowledgement operations (deleteTag, addHostTag, removeHostTag,
// addCertTag, removeCertTag) yield {"success": true, "message": ...}.
// Others yield the "result" object of the response envelope, or the whole
// response when returnRawResponse is set in additionalOptions or when no
// object-valued "result" exists.
package node
