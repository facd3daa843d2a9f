package config

import (
	"strings"
	"testing"
)

func TestLookup_Exists(t *testing.T) {
	spec := Lookup("output-format")
	if spec == nil {
		t.Fatal("expected to find key 'output-format', got nil")
	}
	if spec.Name != "output-format" {
		t.Errorf("expected Name %q, got %q", "output-format", spec.Name)
	}
}

func TestLookup_CaseInsensitive(t *testing.T) {
	spec := Lookup("OUTPUT-FORMAT")
	if spec == nil {
		t.Fatal("expected case-insensitive lookup to succeed")
	}
	if spec.Name != "output-format" {
		t.Errorf("expected Name %q, got %q", "output-format", spec.Name)
	}
}

func TestLookup_NotFound(t *testing.T) {
	spec := Lookup("nonexistent-key")
	if spec != nil {
		t.Errorf("expected nil for unknown key, got %+v", spec)
	}
}

func TestKeys_AllHaveGetAndSet(t *testing.T) {
	for _, k := range Keys {
		if k.Get == nil {
			t.Errorf("key %q has nil Get function", k.Name)
		}
		if k.Set == nil {
			t.Errorf("key %q has nil Set function", k.Name)
		}
		if k.Description == "" {
			t.Errorf("key %q has empty Description", k.Name)
		}
	}
}

func TestKeys_GetSetRoundtrip(t *testing.T) {
	for _, k := range Keys {
		cfg := &Config{}
		k.Set(cfg, "test-value")
		got := k.Get(cfg)
		if got != "test-value" {
			t.Errorf("key %q: Set then Get = %q, want %q", k.Name, got, "test-value")
		}
	}
}

func TestKeys_Validate(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		wantErr bool
	}{
		{"output-format", "table", false},
		{"output-format", "json", false},
		{"output-format", "yaml", false},
		{"output-format", "xml", true},
		{"history-retention", "30d", false},
		{"history-retention", "72h", false},
		{"history-retention", "soon", true},
		{"history-retention", "-5d", true},
		{"catalog-path", "/anything/at all.toml", false},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			spec := Lookup(tt.key)
			if spec == nil {
				t.Fatalf("key %q not registered", tt.key)
			}
			if spec.Validate == nil {
				if tt.wantErr {
					t.Fatalf("key %q has no validator but %q should be rejected", tt.key, tt.value)
				}
				return
			}
			err := spec.Validate(tt.value)
			if tt.wantErr && err == nil {
				t.Errorf("expected %q to be rejected for key %q", tt.value, tt.key)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected %q to be accepted for key %q, got %v", tt.value, tt.key, err)
			}
		})
	}
}

func TestKeyNames(t *testing.T) {
	names := KeyNames()
	if len(names) != len(Keys) {
		t.Fatalf("expected %d names, got %d", len(Keys), len(names))
	}
	for i, name := range names {
		if name != Keys[i].Name {
			t.Errorf("index %d: expected %q, got %q", i, Keys[i].Name, name)
		}
	}
}

func TestKeysHelp_ContainsAllKeys(t *testing.T) {
	help := KeysHelp()
	if !strings.Contains(help, "Available keys:") {
		t.Error("expected 'Available keys:' header in help output")
	}
	for _, k := range Keys {
		if !strings.Contains(help, k.Name) {
			t.Errorf("expected key %q in help output", k.Name)
		}
		if !strings.Contains(help, k.Description) {
			t.Errorf("expected description %q in help output", k.Description)
		}
	}
}
