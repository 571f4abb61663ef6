package node

import "fmt"

// OperationOption is one entry of the operation selector.
type OperationOption struct {
	Name        string    `json:"name"`
	Value       Operation `json:"value"`
	Description string    `json:"description"`
}

// ParameterDescription is a parameter together with the operations that
// show it.
type ParameterDescription struct {
	ParamSpec
	ShowFor []Operation `json:"showFor"`
}

// Description is the node schema presented by a host.
type Description struct {
	Name              string                 `json:"name"`
	DisplayName       string                 `json:"displayName"`
	Description       string                 `json:"description"`
	Version           int                    `json:"version"`
	Credentials       []string               `json:"credentials"`
	DefaultOperation  Operation              `json:"defaultOperation"`
	Operations        []OperationOption      `json:"operations"`
	Parameters        []ParameterDescription `json:"parameters"`
	AdditionalOptions []ParamSpec            `json:"additionalOptions"`
}

// NodeDescription builds the node schema from the operation registry.
//
// Parameters shared by several operations appear once with every such
// operation listed in ShowFor. Two specs with the same name but a
// different default (sort for hosts and certificates) stay separate.
//
//nolint:revive // Description is the schema type
func NodeDescription() Description {
	desc := Description{
		Name:             "censys",
		DisplayName:      "Censys",
		Description:      "Interact with Censys Internet Search API",
		Version:          1,
		Credentials:      []string{CredentialTypeName},
		DefaultOperation: OpSearchHosts,
	}

	index := make(map[string]int)

	for _, d := range registry {
		desc.Operations = append(desc.Operations, OperationOption{
			Name:        d.DisplayName,
			Value:       d.Operation,
			Description: d.Description,
		})

		for _, p := range d.Params {
			key := fmt.Sprintf("%s\x00%v", p.Name, p.Default)
			if i, ok := index[key]; ok {
				desc.Parameters[i].ShowFor = append(desc.Parameters[i].ShowFor, d.Operation)
				continue
			}
			index[key] = len(desc.Parameters)
			desc.Parameters = append(desc.Parameters, ParameterDescription{
				ParamSpec: p,
				ShowFor:   []Operation{d.Operation},
			})
		}
	}

	desc.AdditionalOptions = additionalOptionSpecs()

	return desc
}

// Visible reports whether the parameter is shown for op.
func (p ParameterDescription) Visible(op Operation) bool {
	for _, o := range p.ShowFor {
		if o == op {
			return true
		}
	}
	return false
}
