package naming

import "fmt"

func Server(stack string) string {
	return stack
}

func Firewall(stack string) string {
	return stack
}

func SSHKey(stack string) string {
	return stack
}

// GeneratedKeyFile is the file name used for a generated private key.
func GeneratedKeyFile(stack string) string {
	return fmt.Sprintf("%s_id_rsa", stack)
}

// OutputsObject is the object key outputs are published under.
func OutputsObject(stack string) string {
	return fmt.Sprintf("%s/outputs.json", stack)
}
