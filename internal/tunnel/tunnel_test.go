package tunnel

import "testing"

func TestAwsArgsAppendsProfileWhenSet(t *testing.T) {
	m := New(Config{AWSProfile: "staging"})
	args := m.awsArgs("ec2", "describe-instances")
	want := []string{"ec2", "describe-instances", "--profile", "staging"}
	if len(args) != len(want) {
		t.Fatalf("awsArgs = %v, want %v", args, want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Fatalf("awsArgs = %v, want %v", args, want)
		}
	}
}

func TestAwsArgsOmitsProfileWhenUnset(t *testing.T) {
	m := New(Config{})
	args := m.awsArgs("rds", "describe-db-instances")
	if len(args) != 2 {
		t.Fatalf("awsArgs = %v, want no --profile appended", args)
	}
}

func TestFindAvailablePortReturnsOpenPort(t *testing.T) {
	p1, err := findAvailablePort()
	if err != nil {
		t.Fatalf("findAvailablePort: %v", err)
	}
	if p1 <= 0 {
		t.Fatalf("port = %d, want > 0", p1)
	}
}

func TestNewDefaultsRemotePortToPostgres(t *testing.T) {
	m := New(Config{})
	if m.remotePort != 5432 {
		t.Fatalf("remotePort = %d, want 5432", m.remotePort)
	}
}
