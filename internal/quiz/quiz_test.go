package quiz

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		def     Definition
		wantErr bool
	}{
		{
			name: "valid mixed quiz",
			def: Definition{Questions: []Question{
				{ID: "q1", Kind: KindChoice, Options: []string{"a", "b"}, CorrectIndex: 1},
				{ID: "q2", Kind: KindEssay},
			}},
		},
		{
			name: "choice with one option",
			def: Definition{Questions: []Question{
				{ID: "q1", Kind: KindChoice, Options: []string{"a"}, CorrectIndex: 0},
			}},
			wantErr: true,
		},
		{
			name: "correct index out of range",
			def: Definition{Questions: []Question{
				{ID: "q1", Kind: KindChoice, Options: []string{"a", "b"}, CorrectIndex: 2},
			}},
			wantErr: true,
		},
		{
			name: "negative correct index",
			def: Definition{Questions: []Question{
				{ID: "q1", Kind: KindChoice, Options: []string{"a", "b"}, CorrectIndex: -1},
			}},
			wantErr: true,
		},
		{
			name: "essay with options",
			def: Definition{Questions: []Question{
				{ID: "q1", Kind: KindEssay, Options: []string{"a", "b"}},
			}},
			wantErr: true,
		},
		{
			name: "unknown kind",
			def: Definition{Questions: []Question{
				{ID: "q1", Kind: "truefalse"},
			}},
			wantErr: true,
		},
		{
			name: "empty definition is structurally fine",
			def:  Definition{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.def.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrBadDefinition) {
					t.Fatalf("expected ErrBadDefinition, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
