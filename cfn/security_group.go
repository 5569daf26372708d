package cfn

import "cfngen/cfn/models"

const (
	// SecurityGroupLogicalID is the resource key of the one security group in a template
	SecurityGroupLogicalID = "InstanceSecurityGroup"

	securityGroupResourceType = "AWS::EC2::SecurityGroup"
)

// SecurityGroup owns an ordered list of ingress rules.
type SecurityGroup struct {
	Description string
	rules       []IngressRule
}

// NewSecurityGroup creates a group holding a copy of rules.
func NewSecurityGroup(description string, rules []IngressRule) *SecurityGroup {
	owned := make([]IngressRule, len(rules))
	copy(owned, rules)
	return &SecurityGroup{
		Description: description,
		rules:       owned,
	}
}

// AddIngressRule appends a rule after the existing ones.
func (g *SecurityGroup) AddIngressRule(rule IngressRule) {
	g.rules = append(g.rules, rule)
}

// Rules returns the rules in insertion order.
func (g *SecurityGroup) Rules() []IngressRule {
	out := make([]IngressRule, len(g.rules))
	copy(out, g.rules)
	return out
}

// Render converts the group into its template resource.
func (g *SecurityGroup) Render() models.Resource {
	ingress := make([]models.IngressRule, 0, len(g.rules))
	for _, rule := range g.rules {
		ingress = append(ingress, rule.Render())
	}

	return models.Resource{
		Properties: models.SecurityGroupProperties{
			GroupDescription:     g.Description,
			SecurityGroupIngress: ingress,
		},
		Type: securityGroupResourceType,
	}
}
