package models

// Fields of every struct below are declared in alphabetical key order so that
// encoders which follow declaration order emit sorted keys.

// Template is the root of a CloudFormation template document
type Template struct {
	AWSTemplateFormatVersion string              `json:"AWSTemplateFormatVersion" yaml:"AWSTemplateFormatVersion"`
	Outputs                  map[string]Output   `json:"Outputs" yaml:"Outputs"`
	Resources                map[string]Resource `json:"Resources" yaml:"Resources"`
}

// Output is a named stack output
type Output struct {
	Description string `json:"Description" yaml:"Description"`
	Value       GetAtt `json:"Value" yaml:"Value"`
}

// GetAtt is the Fn::GetAtt intrinsic: [logical name, attribute]
type GetAtt struct {
	GetAtt []string `json:"Fn::GetAtt" yaml:"Fn::GetAtt"`
}

// Ref is the Ref intrinsic pointing at another resource by logical name
type Ref struct {
	Ref string `json:"Ref" yaml:"Ref"`
}

// Resource is a single entry of the Resources block
type Resource struct {
	Properties interface{} `json:"Properties" yaml:"Properties"`
	Type       string      `json:"Type" yaml:"Type"`
}

// InstanceProperties holds the properties of an AWS::EC2::Instance
type InstanceProperties struct {
	ImageId        string `json:"ImageId" yaml:"ImageId"`
	InstanceType   string `json:"InstanceType" yaml:"InstanceType"`
	SecurityGroups []Ref  `json:"SecurityGroups" yaml:"SecurityGroups"`
}

// SecurityGroupProperties holds the properties of an AWS::EC2::SecurityGroup
type SecurityGroupProperties struct {
	GroupDescription     string        `json:"GroupDescription" yaml:"GroupDescription"`
	SecurityGroupIngress []IngressRule `json:"SecurityGroupIngress" yaml:"SecurityGroupIngress"`
}

// IngressRule is one SecurityGroupIngress entry. Ports are strings in the template.
type IngressRule struct {
	CidrIp     string `json:"CidrIp" yaml:"CidrIp"`
	FromPort   string `json:"FromPort" yaml:"FromPort"`
	IpProtocol string `json:"IpProtocol" yaml:"IpProtocol"`
	ToPort     string `json:"ToPort" yaml:"ToPort"`
}
