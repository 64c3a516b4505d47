package observability

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

type alertRule struct {
	Alert       string            `yaml:"alert"`
	Expr        string            `yaml:"expr"`
	For         string            `yaml:"for"`
	Labels      map[string]string `yaml:"labels"`
	Annotations map[string]string `yaml:"annotations"`
}

type alertGroup struct {
	Name  string      `yaml:"name"`
	Rules []alertRule `yaml:"rules"`
}

type alertSpec struct {
	Groups []alertGroup `yaml:"groups"`
}

func TestApprovalAlertRules(t *testing.T) {
	path := filepath.Join("..", "..", "deploy", "prometheus", "alerts", "approvals.yml")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read alert file: %v", err)
	}

	var spec alertSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		t.Fatalf("failed to unmarshal alert file: %v", err)
	}

	if len(spec.Groups) == 0 {
		t.Fatal("expected at least one alert group")
	}

	var group *alertGroup
	for i := range spec.Groups {
		if spec.Groups[i].Name == "approvals" {
			group = &spec.Groups[i]
			break
		}
	}
	if group == nil {
		t.Fatal("approvals alert group missing")
	}

	expected := map[string]string{
		"HighErrorRate":       "critical",
		"HighLatency":         "warning",
		"ApprovalDenialSpike": "warning",
	}
	found := make(map[string]bool, len(expected))
	for _, rule := range group.Rules {
		severity, ok := expected[rule.Alert]
		if !ok {
			continue
		}
		found[rule.Alert] = true
		if rule.Labels["severity"] != severity {
			t.Errorf("%s: expected severity %s, got %s", rule.Alert, severity, rule.Labels["severity"])
		}
		if rule.Annotations["runbook"] == "" {
			t.Errorf("%s: missing runbook annotation", rule.Alert)
		}
		if rule.Expr == "" {
			t.Errorf("%s: missing expression", rule.Alert)
		}
	}
	for name := range expected {
		if !found[name] {
			t.Errorf("alert %s not defined", name)
		}
	}
}
