package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/corral-labs/corral/internal/catalog"
)

// writeFile creates path (and parents) with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestScanRegistersNestedTemplates(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "templates", "reports", "aws", "rds", "instances.yaml"),
		"description: RDS instances report\nsteps:\n  - collect\n")

	reg := catalog.New()
	n, err := NewScanner(reg).Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if n != 1 {
		t.Fatalf("registered %d templates, want 1", n)
	}

	entry := reg.Get("template_reports", "aws.rds.instances")
	if entry == nil {
		t.Fatal("template_reports-aws.rds.instances not registered")
	}
	content, ok := entry.Type.(map[string]any)
	if !ok {
		t.Fatalf("entry Type is %T, want map[string]any", entry.Type)
	}
	if content["description"] != "RDS instances report" {
		t.Errorf("description = %v, want parsed YAML content", content["description"])
	}
	if !entry.HasTag("reports") {
		t.Error("entry missing category tag 'reports'")
	}
}

func TestScanCategoryIsPartOfIdentity(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "templates", "reports", "aws", "rds", "instances.yaml"), "kind: report\n")
	writeFile(t, filepath.Join(root, "templates", "services", "aws", "rds", "instances.yaml"), "kind: service\n")

	reg := catalog.New()
	if _, err := NewScanner(reg).Scan(root); err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if reg.Get("template_reports", "aws.rds.instances") == nil {
		t.Error("template_reports entry missing")
	}
	if reg.Get("template_services", "aws.rds.instances") == nil {
		t.Error("template_services entry missing")
	}
	if reg.Len() != 2 {
		t.Errorf("Len = %d, want 2 distinct entries", reg.Len())
	}
}

func TestScanDuplicateKeyFirstWins(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeFile(t, filepath.Join(first, "templates", "reports", "summary.yaml"), "origin: first\n")
	writeFile(t, filepath.Join(second, "templates", "reports", "summary.yaml"), "origin: second\n")

	reg := catalog.New()
	s := NewScanner(reg)
	if _, err := s.ScanAll([]string{first, second}); err != nil {
		t.Fatalf("ScanAll: %v", err)
	}

	result := reg.Find(catalog.FieldEntry, catalog.Query{Name: "summary", Category: "template_reports"})
	if len(result) != 1 {
		t.Fatalf("found %d entries, want exactly 1", len(result))
	}

	entry := result[0].(*catalog.Entry)
	content := entry.Type.(map[string]any)
	if content["origin"] != "first" {
		t.Errorf("origin = %v, want first-seen content to win", content["origin"])
	}
}

func TestScanSkipsMalformedPaths(t *testing.T) {
	root := t.TempDir()
	// File directly under templates/ has no category segment.
	writeFile(t, filepath.Join(root, "templates", "orphan.yaml"), "a: 1\n")

	reg := catalog.New()
	n, err := NewScanner(reg).Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if n != 0 {
		t.Errorf("registered %d templates, want 0", n)
	}
}

func TestScanIgnoresNonYAMLAndOutsideTemplates(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "templates", "reports", "notes.txt"), "not yaml")
	writeFile(t, filepath.Join(root, "config", "reports", "instances.yaml"), "a: 1\n")

	reg := catalog.New()
	n, err := NewScanner(reg).Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if n != 0 {
		t.Errorf("registered %d templates, want 0", n)
	}
}

func TestScanSkipsUnparseableFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "templates", "reports", "bad.yaml"), ": : :\n\t")
	writeFile(t, filepath.Join(root, "templates", "reports", "good.yaml"), "a: 1\n")

	reg := catalog.New()
	n, err := NewScanner(reg).Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if n != 1 {
		t.Errorf("registered %d templates, want 1 (bad file skipped)", n)
	}
	if reg.Get("template_reports", "good") == nil {
		t.Error("good template not registered")
	}
}

func TestScanMissingRoot(t *testing.T) {
	reg := catalog.New()
	n, err := NewScanner(reg).Scan(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("Scan of missing root should not error: %v", err)
	}
	if n != 0 {
		t.Errorf("registered %d templates, want 0", n)
	}
}
