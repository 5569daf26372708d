package configuration

import "github.com/spf13/pflag"

// RegisterFlags defines the command-line flags understood by Initialize.
// Defaults shown here are informational; the effective defaults live in Initialize.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.IntP("instances", "i", 1, "Number of EC2 instances to declare")
	fs.StringP("instance-type", "t", "t2.micro", "EC2 instance type")
	fs.StringP("allow-ssh-from", "a", "", "Source address allowed to reach port 22 (empty means anywhere)")
	fs.StringP("output", "o", "", "Output file (default temp.json, or temp.yaml for yaml)")
	fs.StringP("format", "f", "json", "Output format: json or yaml")
	fs.String("params-file", "", "HCL file with instances, instance_type and allow_ssh_from")
	fs.Bool("verify-image", false, "Check through the EC2 API that the image exists before writing")
	fs.String("log-level", "info", "Log level: debug, info, warn or error")
}
