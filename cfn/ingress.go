package cfn

import (
	"strconv"

	"cfngen/cfn/models"
)

const (
	// WildcardCIDR matches every IPv4 source
	WildcardCIDR = "0.0.0.0/0"

	hostCIDRSuffix    = "/32"
	defaultIPProtocol = "tcp"
	defaultSSHPort    = 22
)

// IngressRule is a single firewall rule of a security group.
type IngressRule struct {
	CidrIP     string
	IPProtocol string
	FromPort   int
	ToPort     int
}

// NormalizeCIDR turns a source address into the CIDR written to the template.
// An empty source means the wildcard, the wildcard is kept as is and anything
// else is treated as a single host.
func NormalizeCIDR(source string) string {
	switch source {
	case "", WildcardCIDR:
		return WildcardCIDR
	default:
		return source + hostCIDRSuffix
	}
}

// NewIngressRule creates a rule for the given source address. The protocol and
// ports are taken as given.
func NewIngressRule(source, protocol string, fromPort, toPort int) IngressRule {
	return IngressRule{
		CidrIP:     NormalizeCIDR(source),
		IPProtocol: protocol,
		FromPort:   fromPort,
		ToPort:     toPort,
	}
}

// NewSSHIngressRule creates a tcp/22 rule for the given source address.
func NewSSHIngressRule(source string) IngressRule {
	return NewIngressRule(source, defaultIPProtocol, defaultSSHPort, defaultSSHPort)
}

// Render converts the rule into its template form.
func (r IngressRule) Render() models.IngressRule {
	return models.IngressRule{
		CidrIp:     r.CidrIP,
		FromPort:   strconv.Itoa(r.FromPort),
		IpProtocol: r.IPProtocol,
		ToPort:     strconv.Itoa(r.ToPort),
	}
}
