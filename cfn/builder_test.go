package cfn

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"cfngen/cfn/models"
)

func sortedKeys(m map[string]models.Resource) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func TestTemplateBuilder_Build(t *testing.T) {
	tests := []struct {
		name         string
		params       Params
		expectedKeys []string
		expectedCIDR string
	}{
		{
			name:         "single instance",
			params:       Params{Instances: 1, InstanceType: "t2.micro"},
			expectedKeys: []string{"EC2Instance", "InstanceSecurityGroup"},
			expectedCIDR: "0.0.0.0/0",
		},
		{
			name:         "three instances from one host",
			params:       Params{Instances: 3, InstanceType: "t2.micro", AllowSSHFrom: "1.2.3.4"},
			expectedKeys: []string{"EC2Instance", "EC2Instance2", "EC2Instance3", "InstanceSecurityGroup"},
			expectedCIDR: "1.2.3.4/32",
		},
		{
			name:         "zero instances",
			params:       Params{Instances: 0, InstanceType: "t2.micro"},
			expectedKeys: []string{"InstanceSecurityGroup"},
			expectedCIDR: "0.0.0.0/0",
		},
		{
			name:         "negative count behaves like zero",
			params:       Params{Instances: -2, InstanceType: "t2.micro"},
			expectedKeys: []string{"InstanceSecurityGroup"},
			expectedCIDR: "0.0.0.0/0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := NewTemplateBuilder(nil).Build(tt.params)

			assert.Equal(t, "2010-09-09", tpl.AWSTemplateFormatVersion)
			assert.Equal(t, tt.expectedKeys, sortedKeys(tpl.Resources))

			group := tpl.Resources[SecurityGroupLogicalID].Properties.(models.SecurityGroupProperties)
			require.Len(t, group.SecurityGroupIngress, 1)
			assert.Equal(t, tt.expectedCIDR, group.SecurityGroupIngress[0].CidrIp)

			require.Contains(t, tpl.Outputs, PublicIPOutputName)
			assert.Equal(t, []string{"EC2Instance", "PublicIp"}, tpl.Outputs[PublicIPOutputName].Value.GetAtt)
		})
	}
}

func TestTemplateBuilder_BuildLogsInstanceCount(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	b := NewTemplateBuilder(zap.New(core))

	b.Build(Params{Instances: 3, InstanceType: "t2.micro"})
	b.Build(Params{Instances: -1, InstanceType: "t2.micro"})

	entries := logs.FilterMessage("Template entities created").AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, int64(3), entries[0].ContextMap()["instances"])
	assert.Equal(t, int64(0), entries[1].ContextMap()["instances"])
}

func TestTemplateBuilder_BuildDefaultsImage(t *testing.T) {
	b := NewTemplateBuilder(nil)

	tpl := b.Build(Params{Instances: 1, InstanceType: "t2.micro"})
	props := tpl.Resources["EC2Instance"].Properties.(models.InstanceProperties)
	assert.Equal(t, "ami-b97a12ce", props.ImageId)

	tpl = b.Build(Params{Instances: 1, InstanceType: "t2.micro", ImageID: "ami-custom"})
	props = tpl.Resources["EC2Instance"].Properties.(models.InstanceProperties)
	assert.Equal(t, "ami-custom", props.ImageId)
}

func TestTemplateBuilder_BuildsAreIndependent(t *testing.T) {
	b := NewTemplateBuilder(nil)
	params := Params{Instances: 2, InstanceType: "t2.micro"}

	first := b.Build(params)
	second := b.Build(params)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second build differs (-first +second):\n%s", diff)
	}
}

func TestTemplateBuilder_Assemble(t *testing.T) {
	b := NewTemplateBuilder(nil)
	group := NewSecurityGroup(SSHGroupDescription, []IngressRule{NewSSHIngressRule("")})

	t.Run("names continue across NewInstance calls", func(t *testing.T) {
		b.Reset()
		first := b.NewInstance(DefaultImageID, "t2.micro", []*SecurityGroup{group})
		second := b.NewInstance(DefaultImageID, "t2.micro", []*SecurityGroup{group})

		tpl := b.Assemble(NewPublicAddress(), []*Instance{first, second}, group)
		assert.Equal(t, []string{"EC2Instance", "EC2Instance2", "InstanceSecurityGroup"}, sortedKeys(tpl.Resources))
	})

	t.Run("duplicate names keep the last instance", func(t *testing.T) {
		b.Reset()
		first := b.NewInstance("ami-1", "t2.micro", nil)
		b.Reset()
		second := b.NewInstance("ami-2", "t2.micro", nil)

		tpl := b.Assemble(NewPublicAddress(), []*Instance{first, second}, group)
		require.Len(t, tpl.Resources, 2)
		props := tpl.Resources["EC2Instance"].Properties.(models.InstanceProperties)
		assert.Equal(t, "ami-2", props.ImageId)
	})

	t.Run("no instances", func(t *testing.T) {
		tpl := b.Assemble(NewPublicAddress(), nil, group)

		expected := &models.Template{
			AWSTemplateFormatVersion: "2010-09-09",
			Outputs: map[string]models.Output{
				"PublicIP": {
					Description: "Public IP address of the newly created EC2 instance",
					Value:       models.GetAtt{GetAtt: []string{"EC2Instance", "PublicIp"}},
				},
			},
			Resources: map[string]models.Resource{
				"InstanceSecurityGroup": {
					Properties: models.SecurityGroupProperties{
						GroupDescription: "Enable SSH access via port 22",
						SecurityGroupIngress: []models.IngressRule{
							{CidrIp: "0.0.0.0/0", FromPort: "22", IpProtocol: "tcp", ToPort: "22"},
						},
					},
					Type: "AWS::EC2::SecurityGroup",
				},
			},
		}
		if diff := cmp.Diff(expected, tpl); diff != "" {
			t.Errorf("unexpected template (-want +got):\n%s", diff)
		}
	})
}
