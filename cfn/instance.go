package cfn

import (
	"fmt"

	"cfngen/cfn/models"
)

const (
	// InstanceBaseName is the logical name of the first instance in a template
	InstanceBaseName = "EC2Instance"

	instanceResourceType = "AWS::EC2::Instance"
)

// NameSequence hands out instance logical names for one template build.
// The first name is the bare base, the n-th name (n >= 2) is base+n.
// It is not safe for concurrent use.
type NameSequence struct {
	base  string
	count int
}

// NewNameSequence creates a sequence starting before base.
func NewNameSequence(base string) *NameSequence {
	return &NameSequence{base: base}
}

// Next returns the next logical name.
func (s *NameSequence) Next() string {
	s.count++
	if s.count > 1 {
		return fmt.Sprintf("%s%d", s.base, s.count)
	}
	return s.base
}

// Count returns how many names were handed out since the last reset.
func (s *NameSequence) Count() int {
	return s.count
}

// Reset starts the sequence over.
func (s *NameSequence) Reset() {
	s.count = 0
}

// Instance is a compute node attached to one or more shared security groups.
type Instance struct {
	name           string
	imageID        string
	instanceType   string
	securityGroups []*SecurityGroup
}

// NewInstance creates an instance named by the next value of seq.
func NewInstance(seq *NameSequence, imageID, instanceType string, groups []*SecurityGroup) *Instance {
	attached := make([]*SecurityGroup, len(groups))
	copy(attached, groups)
	return &Instance{
		name:           seq.Next(),
		imageID:        imageID,
		instanceType:   instanceType,
		securityGroups: attached,
	}
}

// Name returns the logical name of the instance.
func (i *Instance) Name() string { return i.name }

// ImageID returns the machine image id.
func (i *Instance) ImageID() string { return i.imageID }

// SetImageID replaces the machine image id.
func (i *Instance) SetImageID(imageID string) { i.imageID = imageID }

// InstanceType returns the instance type.
func (i *Instance) InstanceType() string { return i.instanceType }

// SetInstanceType replaces the instance type.
func (i *Instance) SetInstanceType(instanceType string) { i.instanceType = instanceType }

// SecurityGroups returns the attached groups.
func (i *Instance) SecurityGroups() []*SecurityGroup {
	out := make([]*SecurityGroup, len(i.securityGroups))
	copy(out, i.securityGroups)
	return out
}

// Render converts the instance into its template resource. Every attached
// group is written as a Ref to SecurityGroupLogicalID.
func (i *Instance) Render() models.Resource {
	refs := make([]models.Ref, 0, len(i.securityGroups))
	for range i.securityGroups {
		refs = append(refs, models.Ref{Ref: SecurityGroupLogicalID})
	}

	return models.Resource{
		Properties: models.InstanceProperties{
			ImageId:        i.imageID,
			InstanceType:   i.instanceType,
			SecurityGroups: refs,
		},
		Type: instanceResourceType,
	}
}
