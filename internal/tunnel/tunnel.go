// Package tunnel establishes a local SSH port-forward through an AWS
// bastion host to reach a private RDS instance, shelling out to the `aws`
// and `ssh` binaries exactly as the original Rust tunnel.rs does — no Go
// SSH or AWS SDK client appears anywhere in the retrieval pack for this
// concern, and the original's own approach is a subprocess pipeline, not a
// library integration, so that's what gets ported.
package tunnel

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os/exec"
	"strings"
	"time"
)

// Config mirrors the Rust TunnelConfig.
type Config struct {
	Environment       string
	AWSProfile        string
	BastionUser       string
	SSHKeyPath        string
	DatabaseName      string
	UseSessionManager bool
}

// Manager owns the lifetime of one SSH tunnel subprocess.
type Manager struct {
	cfg Config

	cmd        *exec.Cmd
	localPort  int
	remoteHost string
	remotePort int
}

// New creates a Manager for cfg. remotePort defaults to PostgreSQL's 5432,
// matching the original.
func New(cfg Config) *Manager {
	return &Manager{cfg: cfg, remotePort: 5432}
}

type ec2Instance struct {
	InstanceID      string `json:"InstanceId"`
	PublicIPAddress string `json:"PublicIpAddress"`
	Tags            []tag  `json:"Tags"`
}

type tag struct {
	Key   string `json:"Key"`
	Value string `json:"Value"`
}

type rdsInstance struct {
	DBInstanceIdentifier string       `json:"DBInstanceIdentifier"`
	Endpoint             *rdsEndpoint `json:"Endpoint"`
}

type rdsEndpoint struct {
	Address string `json:"Address"`
	Port    int    `json:"Port"`
}

func (m *Manager) awsArgs(args ...string) []string {
	if m.cfg.AWSProfile != "" {
		args = append(args, "--profile", m.cfg.AWSProfile)
	}
	return args
}

func (m *Manager) findBastionInstance(ctx context.Context) (ec2Instance, error) {
	args := m.awsArgs("ec2", "describe-instances",
		"--filters", "Name=instance-state-name,Values=running",
		"--query", "Reservations[].Instances[]",
		"--output", "json")
	out, err := exec.CommandContext(ctx, "aws", args...).Output()
	if err != nil {
		return ec2Instance{}, fmt.Errorf("aws ec2 describe-instances: %w", err)
	}

	var instances []ec2Instance
	if err := json.Unmarshal(out, &instances); err != nil {
		return ec2Instance{}, fmt.Errorf("parse ec2 instances: %w", err)
	}

	envLower := strings.ToLower(m.cfg.Environment)
	for _, inst := range instances {
		for _, t := range inst.Tags {
			if t.Key != "Name" {
				continue
			}
			nameLower := strings.ToLower(t.Value)
			if strings.Contains(nameLower, envLower) && strings.Contains(nameLower, "bastion") {
				return inst, nil
			}
		}
	}
	return ec2Instance{}, fmt.Errorf("no bastion instance found with name containing %q and 'bastion'", m.cfg.Environment)
}

func (m *Manager) getRDSEndpoint(ctx context.Context) (string, int, error) {
	args := m.awsArgs("rds", "describe-db-instances", "--query", "DBInstances[]", "--output", "json")
	out, err := exec.CommandContext(ctx, "aws", args...).Output()
	if err != nil {
		return "", 0, fmt.Errorf("aws rds describe-db-instances: %w", err)
	}

	var instances []rdsInstance
	if err := json.Unmarshal(out, &instances); err != nil {
		return "", 0, fmt.Errorf("parse rds instances: %w", err)
	}

	envLower := strings.ToLower(m.cfg.Environment)
	dbLower := strings.ToLower(m.cfg.DatabaseName)
	for _, db := range instances {
		id := strings.ToLower(db.DBInstanceIdentifier)
		if !strings.Contains(id, envLower) && !strings.Contains(id, dbLower) {
			continue
		}
		if db.Endpoint == nil {
			return "", 0, fmt.Errorf("rds instance %s has no endpoint", db.DBInstanceIdentifier)
		}
		return db.Endpoint.Address, db.Endpoint.Port, nil
	}
	return "", 0, fmt.Errorf("no rds instance found containing %q or %q in identifier", m.cfg.Environment, m.cfg.DatabaseName)
}

func findAvailablePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

// Establish finds a bastion and RDS instance via the AWS CLI, then opens an
// SSH local port-forward to it, returning the local port to connect to.
func (m *Manager) Establish(ctx context.Context) (int, error) {
	bastion, err := m.findBastionInstance(ctx)
	if err != nil {
		return 0, fmt.Errorf("find bastion instance: %w", err)
	}

	useSessionManager := m.cfg.UseSessionManager || bastion.PublicIPAddress == ""
	target := bastion.InstanceID
	if !useSessionManager {
		target = bastion.PublicIPAddress
	}

	host, port, err := m.getRDSEndpoint(ctx)
	if err != nil {
		return 0, fmt.Errorf("get rds endpoint: %w", err)
	}
	m.remoteHost, m.remotePort = host, port

	localPort, err := findAvailablePort()
	if err != nil {
		return 0, fmt.Errorf("find available local port: %w", err)
	}
	m.localPort = localPort

	args := []string{"-N", "-L", fmt.Sprintf("%d:%s:%d", localPort, host, port)}
	if useSessionManager {
		args = append(args, fmt.Sprintf("%s@%s", m.cfg.BastionUser, bastion.InstanceID))
		proxyCmd := fmt.Sprintf("aws ssm start-session --target %s --document-name AWS-StartSSHSession --parameters portNumber=%%p", bastion.InstanceID)
		if m.cfg.AWSProfile != "" {
			proxyCmd += " --profile " + m.cfg.AWSProfile
		}
		args = append(args, "-o", "ProxyCommand="+proxyCmd)
	} else {
		args = append(args, fmt.Sprintf("%s@%s", m.cfg.BastionUser, target),
			"-o", "StrictHostKeyChecking=no", "-o", "UserKnownHostsFile=/dev/null")
	}
	args = append(args,
		"-o", "ServerAliveInterval=60",
		"-o", "ServerAliveCountMax=3",
		"-o", "ExitOnForwardFailure=yes",
		"-o", "ConnectTimeout=30")
	if m.cfg.SSHKeyPath != "" {
		args = append(args, "-i", m.cfg.SSHKeyPath)
	}

	cmd := exec.CommandContext(ctx, "ssh", args...)
	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("spawn ssh: %w", err)
	}
	m.cmd = cmd

	if !m.waitForTunnel(localPort, 30, 500*time.Millisecond) {
		_ = cmd.Process.Kill()
		return 0, fmt.Errorf("ssh tunnel failed to establish on port %d", localPort)
	}
	return localPort, nil
}

func (m *Manager) waitForTunnel(port, attempts int, delay time.Duration) bool {
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	for i := 0; i < attempts; i++ {
		conn, err := net.DialTimeout("tcp", addr, time.Second)
		if err == nil {
			conn.Close()
			return true
		}
		if i < attempts-1 {
			time.Sleep(delay)
		}
	}
	return false
}

// ConnectionString builds a postgres connection string through the local
// forwarded port.
func (m *Manager) ConnectionString(username, password, database string) (string, error) {
	if m.localPort == 0 {
		return "", fmt.Errorf("tunnel not established")
	}
	return fmt.Sprintf("postgresql://%s:%s@localhost:%d/%s?sslmode=require", username, password, m.localPort, database), nil
}

// HealthCheck reports whether the local forwarded port still accepts
// connections.
func (m *Manager) HealthCheck() bool {
	if m.localPort == 0 {
		return false
	}
	conn, err := net.DialTimeout("tcp", fmt.Sprintf("127.0.0.1:%d", m.localPort), time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// Cleanup kills the SSH subprocess, if running.
func (m *Manager) Cleanup() error {
	if m.cmd == nil || m.cmd.Process == nil {
		return nil
	}
	if err := m.cmd.Process.Kill(); err != nil {
		return err
	}
	_, _ = m.cmd.Process.Wait()
	return nil
}
