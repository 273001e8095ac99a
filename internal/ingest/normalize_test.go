package ingest

import "testing"

func TestSplitName(t *testing.T) {
	cases := []struct {
		name      string
		input     string
		reference string
		title     string
	}{
		{"chapter with title", "SYSC 3 Systems and Controls", "SYSC 3", "Systems and Controls"},
		{"dotted section", "SYSC 3.1 General requirements", "SYSC 3.1", "General requirements"},
		{"annex marker", "SYSC 4 Annex 1 Detailed guidance", "SYSC 4 Annex 1", "Detailed guidance"},
		{"uppercase after marker", "COBS Schedule G Record keeping", "COBS Schedule G", "Record keeping"},
		{"marker word alone", "FEES Appendix 2 Payment categories", "FEES Appendix 2", "Payment categories"},
		{"code only", "PRIN 2.1", "PRIN 2.1", ""},
		{"no structural tokens", "GLOSSARY Definitions of terms", "GLOSSARY", "Definitions of terms"},
		{"single token", "SYSC", "SYSC", ""},
		{"empty", "", "", ""},
		{"uppercase without marker goes to title", "SUP 10 FCA required functions", "SUP 10", "FCA required functions"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitName(tc.input)
			if got.Reference != tc.reference {
				t.Errorf("SplitName(%q).Reference = %q, want %q", tc.input, got.Reference, tc.reference)
			}
			if got.Title != tc.title {
				t.Errorf("SplitName(%q).Title = %q, want %q", tc.input, got.Title, tc.title)
			}
		})
	}
}

func TestSplitNameReferenceStartsWithCodeToken(t *testing.T) {
	names := []string{
		"SYSC 3 Systems and Controls",
		"COBS 2.1 Acting honestly",
		"PERG 8 Financial promotion",
		"FEES 4 Annex 11 Periodic fees",
	}
	for _, name := range names {
		code := SplitName(name).Reference
		first := name
		if idx := indexSpace(name); idx > 0 {
			first = name[:idx]
		}
		if len(code) < len(first) || code[:len(first)] != first {
			t.Errorf("SplitName(%q).Reference = %q does not start with code token %q", name, code, first)
		}
	}
}

func indexSpace(s string) int {
	for i := range s {
		if s[i] == ' ' {
			return i
		}
	}
	return -1
}

func TestProvisionRef(t *testing.T) {
	cases := []struct {
		label string
		ptype string
		want  string
	}{
		{"3.1", "Guidance", "3.1G"},
		{"3.1", "Rules", "3.1R"},
		{"3.1R", "Rules", "3.1R"},
		{"2.1.1", "Evidential", "2.1.1E"},
		{"1.2", "Direction", "1.2D"},
		{"1", "Principles", "1P"},
		{"4.4", "Commentary", "4.4"},
		{"", "Rules", ""},
	}
	for _, tc := range cases {
		if got := ProvisionRef(tc.label, tc.ptype); got != tc.want {
			t.Errorf("ProvisionRef(%q, %q) = %q, want %q", tc.label, tc.ptype, got, tc.want)
		}
	}
}

func TestProvisionRefIdempotent(t *testing.T) {
	labels := []string{"3.1", "10.2.4", "1", "3.1R", "Annex 1"}
	ptypes := []string{"Rules", "Guidance", "Evidential", "Direction", "Principles", "Unknown"}
	for _, label := range labels {
		for _, ptype := range ptypes {
			once := ProvisionRef(label, ptype)
			twice := ProvisionRef(once, ptype)
			if once != twice {
				t.Errorf("ProvisionRef not idempotent: (%q, %q) -> %q -> %q", label, ptype, once, twice)
			}
		}
	}
}
