// Package systemd renders the unit file used to run the monitor as a system service.
package systemd

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"text/template"
)

// UnitName is the service name the unit is installed under.
const UnitName = "cnc-monitor.service"

// UnitConfig describes where the binary and its settings live on the host.
type UnitConfig struct {
	ExecPath        string
	ConfigPath      string
	EnvironmentFile string
	User            string
	WorkingDir      string
}

const unitTemplate = `[Unit]
Description=CNC production monitor
After=network-online.target postgresql.service
Wants=network-online.target

[Service]
Type=simple
User={{.User}}
Group={{.User}}
WorkingDirectory={{.WorkingDir}}
{{- if .EnvironmentFile}}
EnvironmentFile=-{{.EnvironmentFile}}
{{- end}}
ExecStart={{.ExecPath}}{{if .ConfigPath}} -config {{.ConfigPath}}{{end}}
Restart=on-failure
RestartSec=5
KillSignal=SIGTERM
StandardOutput=journal
StandardError=journal

NoNewPrivileges=true
ProtectSystem=strict
ProtectHome=true
PrivateTmp=true

[Install]
WantedBy=multi-user.target
`

var unit = template.Must(template.New("unit").Parse(unitTemplate))

// ErrRelativePath is returned when a unit path is not absolute.
var ErrRelativePath = errors.New("path must be absolute")

// Render produces the unit file content. User defaults to "cnc-monitor" and WorkingDir to
// the directory holding the binary.
func Render(cfg UnitConfig) (string, error) {
	if cfg.User == "" {
		cfg.User = "cnc-monitor"
	}
	if cfg.WorkingDir == "" {
		cfg.WorkingDir = filepath.Dir(cfg.ExecPath)
	}

	for name, path := range map[string]string{
		"exec path":        cfg.ExecPath,
		"config path":      cfg.ConfigPath,
		"environment file": cfg.EnvironmentFile,
		"working dir":      cfg.WorkingDir,
	} {
		if path != "" && !filepath.IsAbs(path) {
			return "", fmt.Errorf("%s %q: %w", name, path, ErrRelativePath)
		}
	}
	if cfg.ExecPath == "" {
		return "", fmt.Errorf("exec path: %w", ErrRelativePath)
	}

	var buf bytes.Buffer
	if err := unit.Execute(&buf, cfg); err != nil {
		return "", fmt.Errorf("failed to render unit: %w", err)
	}
	return buf.String(), nil
}
