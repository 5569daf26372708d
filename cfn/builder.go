package cfn

import (
	"go.uber.org/zap"

	"cfngen/cfn/models"
)

const (
	// FormatVersion is the only template format version CloudFormation accepts
	FormatVersion = "2010-09-09"

	// DefaultImageID is the machine image baked into generated templates
	DefaultImageID = "ami-b97a12ce"

	// SSHGroupDescription describes the generated security group
	SSHGroupDescription = "Enable SSH access via port 22"
)

// Params are the inputs of a template build.
type Params struct {
	Instances    int
	InstanceType string
	AllowSSHFrom string
	ImageID      string
}

// TemplateBuilder assembles templates. Each builder owns its instance name
// sequence, which Build resets, so builds never affect each other.
type TemplateBuilder struct {
	names  *NameSequence
	logger *zap.Logger
}

// NewTemplateBuilder creates a builder logging through logger.
func NewTemplateBuilder(logger *zap.Logger) *TemplateBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemplateBuilder{
		names:  NewNameSequence(InstanceBaseName),
		logger: logger.With(zap.String("package", "cfn")),
	}
}

// NewInstance creates an instance named from the builder's sequence.
func (b *TemplateBuilder) NewInstance(imageID, instanceType string, groups []*SecurityGroup) *Instance {
	return NewInstance(b.names, imageID, instanceType, groups)
}

// Reset restarts instance naming.
func (b *TemplateBuilder) Reset() {
	b.names.Reset()
}

// Build creates one SSH security group, p.Instances instances sharing it and
// the public address output, then assembles them.
func (b *TemplateBuilder) Build(p Params) *models.Template {
	b.Reset()

	imageID := p.ImageID
	if imageID == "" {
		imageID = DefaultImageID
	}

	rule := NewSSHIngressRule(p.AllowSSHFrom)
	group := NewSecurityGroup(SSHGroupDescription, []IngressRule{rule})

	instances := make([]*Instance, 0, max(p.Instances, 0))
	for n := 0; n < p.Instances; n++ {
		instances = append(instances, b.NewInstance(imageID, p.InstanceType, []*SecurityGroup{group}))
	}

	b.logger.Debug("Template entities created",
		zap.String("operation", "template_build"),
		zap.Int("instances", b.names.Count()),
		zap.String("cidr_ip", rule.CidrIP),
		zap.String("image_id", imageID),
	)

	return b.Assemble(NewPublicAddress(), instances, group)
}

// Assemble produces the template document. Instance names are used as given;
// a later instance with a duplicate name replaces the earlier one.
func (b *TemplateBuilder) Assemble(address PublicAddress, instances []*Instance, group *SecurityGroup) *models.Template {
	resources := make(map[string]models.Resource, len(instances)+1)
	for _, inst := range instances {
		resources[inst.Name()] = inst.Render()
	}
	resources[SecurityGroupLogicalID] = group.Render()

	return &models.Template{
		AWSTemplateFormatVersion: FormatVersion,
		Outputs: map[string]models.Output{
			PublicIPOutputName: address.Render(),
		},
		Resources: resources,
	}
}
