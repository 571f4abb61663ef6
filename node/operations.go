package node

import "net/http"

// Operation selects the endpoint a node execution calls.
type Operation string

// Operations supported by the Censys node.
const (
	OpSearchHosts           Operation = "searchHosts"
	OpAggregateHosts        Operation = "aggregateHosts"
	OpGetHost               Operation = "getHost"
	OpGetHostNames          Operation = "getHostNames"
	OpGetHostCertificates   Operation = "getHostCertificates"
	OpSearchCertificates    Operation = "searchCertificates"
	OpAggregateCertificates Operation = "aggregateCertificates"
	OpGetCertificate        Operation = "getCertificate"
	OpListTags              Operation = "listTags"
	OpCreateTag             Operation = "createTag"
	OpGetTag                Operation = "getTag"
	OpUpdateTag             Operation = "updateTag"
	OpDeleteTag             Operation = "deleteTag"
	OpGetHostTags           Operation = "getHostTags"
	OpAddHostTag            Operation = "addHostTag"
	OpRemoveHostTag         Operation = "removeHostTag"
	OpGetCertTags           Operation = "getCertTags"
	OpAddCertTag            Operation = "addCertTag"
	OpRemoveCertTag         Operation = "removeCertTag"
	OpGetTagHosts           Operation = "getTagHosts"
	OpGetTagCertificates    Operation = "getTagCertificates"
)

// ParamType is the value type of a parameter.
type ParamType string

// Parameter types.
const (
	TypeString   ParamType = "string"
	TypeNumber   ParamType = "number"
	TypeOptions  ParamType = "options"
	TypeDateTime ParamType = "dateTime"
	TypeBoolean  ParamType = "boolean"
)

// Location says where a parameter travels in the request.
type Location string

// Parameter locations.
const (
	InPath  Location = "path"
	InQuery Location = "query"
	InBody  Location = "body"
)

// Option is one allowed value of an options parameter.
type Option struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

// ParamSpec declares one parameter of an operation.
type ParamSpec struct {
	Name        string    `json:"name"`
	DisplayName string    `json:"displayName"`
	Description string    `json:"description,omitempty"`
	Type        ParamType `json:"type"`
	Required    bool      `json:"required,omitempty"`
	Default     any       `json:"default"`
	Location    Location  `json:"location,omitempty"`
	// Key is the wire name. Body keys may be dotted to address nested
	// objects ("metadata.color").
	Key     string   `json:"key,omitempty"`
	Options []Option `json:"options,omitempty"`
	Min     float64  `json:"min,omitempty"`
	Max     float64  `json:"max,omitempty"`
}

// Descriptor binds an operation to its endpoint and parameters.
type Descriptor struct {
	Operation   Operation
	DisplayName string
	Description string
	Method      string
	// Path is a template such as /v2/hosts/{ipAddress}; every {name}
	// segment is filled from the parameter of that name.
	Path   string
	Params []ParamSpec
	// Ack, when set, replaces the response with {success: true, message: Ack}.
	Ack string
}

var (
	paramQuery = ParamSpec{
		Name: "query", DisplayName: "Query", Type: TypeString, Required: true, Default: "",
		Location: InQuery, Key: "q",
		Description: `Query using Censys Search Language (e.g., "services.service_name: HTTP" for hosts ` +
			`or "parsed.subject.country: US" for certificates)`,
	}
	paramPerPage = ParamSpec{
		Name: "perPage", DisplayName: "Results Per Page", Type: TypeNumber, Default: 50,
		Location: InQuery, Key: "per_page", Min: 1, Max: 100,
		Description: "Maximum number of results per page (1-100)",
	}
	paramVirtualHosts = ParamSpec{
		Name: "virtualHosts", DisplayName: "Virtual Hosts", Type: TypeOptions, Default: "EXCLUDE",
		Location: InQuery, Key: "virtual_hosts",
		Description: "How to handle virtual hosts",
		Options: []Option{
			{Name: "Exclude", Value: "EXCLUDE", Description: "Ignore virtual hosts entries"},
			{Name: "Include", Value: "INCLUDE", Description: "Include virtual hosts in results"},
			{Name: "Only", Value: "ONLY", Description: "Return only virtual hosts"},
		},
	}
	paramHostSort = ParamSpec{
		Name: "sort", DisplayName: "Sort", Type: TypeString, Default: "RELEVANCE",
		Location: InQuery, Key: "sort",
		Description: "Sort order of host results: RELEVANCE, ASCENDING or DESCENDING",
	}
	paramCertSort = ParamSpec{
		Name: "sort", DisplayName: "Sort", Type: TypeString, Default: "",
		Location: InQuery, Key: "sort",
		Description: `Sort fields as comma-separated list (e.g., "parsed.subject.country,-fingerprint_sha256"). ` +
			`Use "-" prefix for descending order.`,
	}
	paramFields = ParamSpec{
		Name: "fields", DisplayName: "Fields", Type: TypeString, Default: "",
		Location: InQuery, Key: "fields",
		Description: `Comma-separated list of fields to return (e.g., "names,parsed.issuer.organization"). ` +
			`For hosts, this is a paid feature.`,
	}
	paramCursor = ParamSpec{
		Name: "cursor", DisplayName: "Cursor", Type: TypeString, Default: "",
		Location: InQuery, Key: "cursor",
		Description: "Cursor token for pagination",
	}
	paramField = ParamSpec{
		Name: "field", DisplayName: "Field", Type: TypeString, Required: true, Default: "",
		Location: InQuery, Key: "field",
		Description: `Field to aggregate on (e.g., "services.port" or "parsed.issuer.organization")`,
	}
	paramNumBuckets = ParamSpec{
		Name: "numBuckets", DisplayName: "Number of Buckets", Type: TypeNumber, Default: 50,
		Location: InQuery, Key: "num_buckets", Min: 1, Max: 1000,
		Description: "Maximum number of buckets for aggregation",
	}
	paramIPAddress = ParamSpec{
		Name: "ipAddress", DisplayName: "IP Address", Type: TypeString, Required: true, Default: "",
		Location: InPath,
		Description: "IP address of the host to query",
	}
	paramAtTime = ParamSpec{
		Name: "atTime", DisplayName: "At Time", Type: TypeDateTime, Default: "",
		Location: InQuery, Key: "at_time",
		Description: "Fetch host data at a specific point in time (requires historical access)",
	}
	paramPerPageNames = ParamSpec{
		Name: "perPageNames", DisplayName: "Results Per Page", Type: TypeNumber, Default: 100,
		Location: InQuery, Key: "per_page", Min: 1, Max: 1000,
		Description: "Maximum number of names per page (1-1000)",
	}
	paramCursorNames = ParamSpec{
		Name: "cursorNames", DisplayName: "Cursor", Type: TypeString, Default: "",
		Location: InQuery, Key: "cursor",
		Description: "Cursor token for pagination",
	}
	paramPerPageCerts = ParamSpec{
		Name: "perPageCerts", DisplayName: "Results Per Page", Type: TypeNumber, Default: 50,
		Location: InQuery, Key: "per_page", Min: 1, Max: 1000,
		Description: "Maximum number of certificates per page (1-1000)",
	}
	paramStartTime = ParamSpec{
		Name: "startTime", DisplayName: "Start Time", Type: TypeDateTime, Default: "",
		Location: InQuery, Key: "start_time",
		Description: "Beginning chronological point for observations",
	}
	paramEndTime = ParamSpec{
		Name: "endTime", DisplayName: "End Time", Type: TypeDateTime, Default: "",
		Location: InQuery, Key: "end_time",
		Description: "Ending chronological point for observations",
	}
	paramCursorCerts = ParamSpec{
		Name: "cursorCerts", DisplayName: "Cursor", Type: TypeString, Default: "",
		Location: InQuery, Key: "cursor",
		Description: "Cursor token for pagination",
	}
	paramFingerprint = ParamSpec{
		Name: "fingerprint", DisplayName: "Certificate Fingerprint", Type: TypeString, Required: true, Default: "",
		Location: InPath,
		Description: "SHA-256 fingerprint of the certificate to retrieve",
	}
	paramCertificateFingerprint = ParamSpec{
		Name: "certificateFingerprint", DisplayName: "Certificate Fingerprint", Type: TypeString, Required: true,
		Default: "", Location: InPath,
		Description: "SHA-256 fingerprint of the certificate",
	}
	paramTagID = ParamSpec{
		Name: "tagId", DisplayName: "Tag ID", Type: TypeString, Required: true, Default: "",
		Location: InPath,
		Description: "Unique identifier of the tag",
	}
	paramTagName = ParamSpec{
		Name: "tagName", DisplayName: "Tag Name", Type: TypeString, Required: true, Default: "",
		Location: InBody, Key: "name",
		Description: "Name for the tag",
	}
	paramTagColor = ParamSpec{
		Name: "tagColor", DisplayName: "Tag Color", Type: TypeString, Default: "",
		Location: InBody, Key: "metadata.color",
		Description: `Color for the tag (hex format without #, e.g., "ff6113")`,
	}
)

var registry = []Descriptor{
	{
		Operation:   OpSearchHosts,
		DisplayName: "Search Hosts",
		Description: "Search for hosts matching specified criteria",
		Method:      http.MethodGet,
		Path:        "/v2/hosts/search",
		Params:      []ParamSpec{paramQuery, paramPerPage, paramVirtualHosts, paramHostSort, paramFields, paramCursor},
	},
	{
		Operation:   OpAggregateHosts,
		DisplayName: "Aggregate Hosts",
		Description: "Aggregate hosts that match a query into buckets",
		Method:      http.MethodGet,
		Path:        "/v2/hosts/aggregate",
		Params:      []ParamSpec{paramQuery, paramField, paramNumBuckets, paramVirtualHosts},
	},
	{
		Operation:   OpGetHost,
		DisplayName: "Get Host Details",
		Description: "Get detailed information about a specific host by IP",
		Method:      http.MethodGet,
		Path:        "/v2/hosts/{ipAddress}",
		Params:      []ParamSpec{paramIPAddress, paramAtTime},
	},
	{
		Operation:   OpGetHostNames,
		DisplayName: "Get Host Names",
		Description: "Get host names for a specific IP address",
		Method:      http.MethodGet,
		Path:        "/v2/hosts/{ipAddress}/names",
		Params:      []ParamSpec{paramIPAddress, paramPerPageNames, paramCursorNames},
	},
	{
		Operation:   OpGetHostCertificates,
		DisplayName: "Get Host Certificates",
		Description: "Get certificates presented by a specific host",
		Method:      http.MethodGet,
		Path:        "/v2/hosts/{ipAddress}/certificates",
		Params:      []ParamSpec{paramIPAddress, paramPerPageCerts, paramStartTime, paramEndTime, paramCursorCerts},
	},
	{
		Operation:   OpSearchCertificates,
		DisplayName: "Search Certificates",
		Description: "Search for certificates matching specified criteria",
		Method:      http.MethodGet,
		Path:        "/v2/certificates/search",
		Params:      []ParamSpec{paramQuery, paramPerPage, paramCertSort, paramFields, paramCursor},
	},
	{
		Operation:   OpAggregateCertificates,
		DisplayName: "Aggregate Certificates",
		Description: "Aggregate certificates that match a query into buckets",
		Method:      http.MethodGet,
		Path:        "/v2/certificates/aggregate",
		Params:      []ParamSpec{paramQuery, paramField, paramNumBuckets},
	},
	{
		Operation:   OpGetCertificate,
		DisplayName: "Get Certificate Details",
		Description: "Get detailed information about a specific certificate by SHA-256 fingerprint",
		Method:      http.MethodGet,
		Path:        "/v2/certificates/{fingerprint}",
		Params:      []ParamSpec{paramFingerprint},
	},
	{
		Operation:   OpListTags,
		DisplayName: "List Tags",
		Description: "Get a list of all tags for the team",
		Method:      http.MethodGet,
		Path:        "/v2/tags",
	},
	{
		Operation:   OpCreateTag,
		DisplayName: "Create Tag",
		Description: "Create a new tag",
		Method:      http.MethodPost,
		Path:        "/v2/tags",
		Params:      []ParamSpec{paramTagName, paramTagColor},
	},
	{
		Operation:   OpGetTag,
		DisplayName: "Get Tag",
		Description: "Get details of a specific tag",
		Method:      http.MethodGet,
		Path:        "/v2/tags/{tagId}",
		Params:      []ParamSpec{paramTagID},
	},
	{
		Operation:   OpUpdateTag,
		DisplayName: "Update Tag",
		Description: "Update an existing tag",
		Method:      http.MethodPut,
		Path:        "/v2/tags/{tagId}",
		Params:      []ParamSpec{paramTagID, paramTagName, paramTagColor},
	},
	{
		Operation:   OpDeleteTag,
		DisplayName: "Delete Tag",
		Description: "Delete a tag",
		Method:      http.MethodDelete,
		Path:        "/v2/tags/{tagId}",
		Params:      []ParamSpec{paramTagID},
		Ack:         "Tag deleted successfully",
	},
	{
		Operation:   OpGetHostTags,
		DisplayName: "Get Host Tags",
		Description: "Get all tags assigned to a specific host",
		Method:      http.MethodGet,
		Path:        "/v2/hosts/{ipAddress}/tags",
		Params:      []ParamSpec{paramIPAddress},
	},
	{
		Operation:   OpAddHostTag,
		DisplayName: "Add Host Tag",
		Description: "Add a tag to a specific host",
		Method:      http.MethodPut,
		Path:        "/v2/hosts/{ipAddress}/tags/{tagId}",
		Params:      []ParamSpec{paramIPAddress, paramTagID},
		Ack:         "Tag added to host successfully",
	},
	{
		Operation:   OpRemoveHostTag,
		DisplayName: "Remove Host Tag",
		Description: "Remove a tag from a specific host",
		Method:      http.MethodDelete,
		Path:        "/v2/hosts/{ipAddress}/tags/{tagId}",
		Params:      []ParamSpec{paramIPAddress, paramTagID},
		Ack:         "Tag removed from host successfully",
	},
	{
		Operation:   OpGetCertTags,
		DisplayName: "Get Certificate Tags",
		Description: "Get all tags assigned to a specific certificate",
		Method:      http.MethodGet,
		Path:        "/v2/certificates/{certificateFingerprint}/tags",
		Params:      []ParamSpec{paramCertificateFingerprint},
	},
	{
		Operation:   OpAddCertTag,
		DisplayName: "Add Certificate Tag",
		Description: "Add a tag to a specific certificate",
		Method:      http.MethodPut,
		Path:        "/v2/certificates/{certificateFingerprint}/tags/{tagId}",
		Params:      []ParamSpec{paramCertificateFingerprint, paramTagID},
		Ack:         "Tag added to certificate successfully",
	},
	{
		Operation:   OpRemoveCertTag,
		DisplayName: "Remove Certificate Tag",
		Description: "Remove a tag from a specific certificate",
		Method:      http.MethodDelete,
		Path:        "/v2/certificates/{certificateFingerprint}/tags/{tagId}",
		Params:      []ParamSpec{paramCertificateFingerprint, paramTagID},
		Ack:         "Tag removed from certificate successfully",
	},
	{
		Operation:   OpGetTagHosts,
		DisplayName: "Get Tag Hosts",
		Description: "Get all hosts assigned to a specific tag",
		Method:      http.MethodGet,
		Path:        "/v2/tags/{tagId}/hosts",
		Params:      []ParamSpec{paramTagID},
	},
	{
		Operation:   OpGetTagCertificates,
		DisplayName: "Get Tag Certificates",
		Description: "Get all certificates assigned to a specific tag",
		Method:      http.MethodGet,
		Path:        "/v2/tags/{tagId}/certificates",
		Params:      []ParamSpec{paramTagID},
	},
}

var registryIndex = func() map[Operation]*Descriptor {
	index := make(map[Operation]*Descriptor, len(registry))
	for i := range registry {
		index[registry[i].Operation] = &registry[i]
	}
	return index
}()

// Lookup returns the descriptor of op.
func Lookup(op Operation) (Descriptor, bool) {
	desc, ok := registryIndex[op]
	if !ok {
		return Descriptor{}, false
	}
	return *desc, true
}

// Operations returns every descriptor in display order.
func Operations() []Descriptor {
	out := make([]Descriptor, len(registry))
	copy(out, registry)
	return out
}

// Param returns the spec of the named parameter.
func (d Descriptor) Param(name string) (ParamSpec, bool) {
	for _, p := range d.Params {
		if p.Name == name {
			return p, true
		}
	}
	return ParamSpec{}, false
}
