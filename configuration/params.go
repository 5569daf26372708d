package configuration

import (
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"cfngen/errors"
)

// ParamsFile is the content of an HCL template parameters file, e.g.
//
//	instances      = 3
//	instance_type  = "t3.small"
//	allow_ssh_from = "1.2.3.4"
type ParamsFile struct {
	Instances    *int    `hcl:"instances,optional"`
	InstanceType *string `hcl:"instance_type,optional"`
	AllowSSHFrom *string `hcl:"allow_ssh_from,optional"`
}

// LoadParamsFile parses and decodes an HCL parameters file. Unknown attributes
// and blocks are rejected.
func LoadParamsFile(path string) (*ParamsFile, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, errors.New(errors.ErrParamsFile, "failed to parse params file",
			map[string]interface{}{
				"path": path,
			}, diags)
	}

	var params ParamsFile
	if diags := gohcl.DecodeBody(file.Body, nil, &params); diags.HasErrors() {
		return nil, errors.New(errors.ErrParamsFile, "failed to decode params file",
			map[string]interface{}{
				"path": path,
			}, diags)
	}

	return &params, nil
}

// Values returns the attributes set in the file keyed by configuration key.
func (p *ParamsFile) Values() map[string]interface{} {
	values := make(map[string]interface{})
	if p.Instances != nil {
		values[keyInstances] = *p.Instances
	}
	if p.InstanceType != nil {
		values[keyInstanceType] = *p.InstanceType
	}
	if p.AllowSSHFrom != nil {
		values[keyAllowSSHFrom] = *p.AllowSSHFrom
	}
	return values
}
