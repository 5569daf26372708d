package cfn

import "cfngen/cfn/models"

const (
	// PublicIPOutputName is the key of the public address in the Outputs block
	PublicIPOutputName = "PublicIP"

	publicAddressDescription = "Public IP address of the newly created EC2 instance"
	publicIPAttribute        = "PublicIp"
)

// PublicAddress is the stack output exposing the public IP of the first instance.
type PublicAddress struct {
	Description string
	Resource    string
	Attribute   string
}

// NewPublicAddress always points at InstanceBaseName, whatever the instance count.
func NewPublicAddress() PublicAddress {
	return PublicAddress{
		Description: publicAddressDescription,
		Resource:    InstanceBaseName,
		Attribute:   publicIPAttribute,
	}
}

// Render converts the address into its template output.
func (a PublicAddress) Render() models.Output {
	return models.Output{
		Description: a.Description,
		Value:       models.GetAtt{GetAtt: []string{a.Resource, a.Attribute}},
	}
}
