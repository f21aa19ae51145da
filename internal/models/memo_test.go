// ABOUTME: Tests for Memo constructor, effective tags and normalization.
// ABOUTME: Covers legacy tag precedence and blank-entry trimming.

package models

import (
	"encoding/json"
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func TestNewMemo(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	m := NewMemo(42, "  Groceries ", "<b>milk</b>", "milk", []string{"Shopping", " "}, now)

	if m.ID != 42 {
		t.Errorf("expected id 42, got %d", m.ID)
	}
	if m.Title != "Groceries" {
		t.Errorf("expected trimmed title, got %q", m.Title)
	}
	if m.CreatedAt != "2024-05-01T09:30:00.000Z" {
		t.Errorf("unexpected CreatedAt %q", m.CreatedAt)
	}
	if m.UpdatedAt != m.CreatedAt {
		t.Error("expected UpdatedAt to equal CreatedAt")
	}
	if len(m.Tags) != 1 || m.Tags[0] != "Shopping" {
		t.Errorf("expected [Shopping], got %v", m.Tags)
	}
}

func TestNewMemoDefaultTitle(t *testing.T) {
	m := NewMemo(1, "   ", "", "body", nil, time.Now())
	if m.Title != DefaultTitle {
		t.Errorf("expected %q, got %q", DefaultTitle, m.Title)
	}
	if m.Tags == nil {
		t.Error("expected non-nil tags")
	}
}

func TestEffectiveTags(t *testing.T) {
	tests := []struct {
		name string
		memo Memo
		want []string
	}{
		{"tags win over legacy tag", Memo{Tags: []string{"a", "b"}, Tag: strPtr("c")}, []string{"a", "b"}},
		{"blank entries dropped", Memo{Tags: []string{" ", "x", ""}}, []string{"x"}},
		{"empty tags still win", Memo{Tags: []string{}, Tag: strPtr("c")}, []string{}},
		{"legacy tag used", Memo{Tag: strPtr(" work ")}, []string{"work"}},
		{"blank legacy tag", Memo{Tag: strPtr("  ")}, []string{}},
		{"nothing", Memo{}, []string{}},
		{"repeats collapse", Memo{Tags: []string{"a", " a", "b"}}, []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.memo.EffectiveTags()
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("expected %v, got %v", tt.want, got)
				}
			}
		})
	}
}

func TestNormalizeLegacyRecord(t *testing.T) {
	var m Memo
	if err := json.Unmarshal([]byte(`{"id":1,"title":"Old","tag":"School"}`), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	m.Normalize()

	if m.Tag != nil {
		t.Error("expected legacy tag to be dropped")
	}
	if len(m.Tags) != 1 || m.Tags[0] != "School" {
		t.Errorf("expected [School], got %v", m.Tags)
	}

	data, err := json.Marshal(&m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]any
	_ = json.Unmarshal(data, &raw)
	if _, ok := raw["tag"]; ok {
		t.Error("expected no tag key after normalization")
	}
}

func TestNullTagsTreatedAsAbsent(t *testing.T) {
	var m Memo
	if err := json.Unmarshal([]byte(`{"id":1,"tags":null,"tag":"Work"}`), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := m.EffectiveTags()
	if len(got) != 1 || got[0] != "Work" {
		t.Errorf("expected [Work], got %v", got)
	}
}

func TestTouch(t *testing.T) {
	m := NewMemo(1, "T", "", "", nil, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	m.Touch(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	if m.UpdatedAt != "2024-01-02T00:00:00.000Z" {
		t.Errorf("unexpected UpdatedAt %q", m.UpdatedAt)
	}
	if m.CreatedAt == m.UpdatedAt {
		t.Error("expected CreatedAt to be unchanged")
	}
}
