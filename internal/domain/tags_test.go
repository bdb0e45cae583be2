package domain

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestTagsInputUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "array",
			raw:  `["go", "redis"]`,
			want: []string{"go", "redis"},
		},
		{
			name: "comma string",
			raw:  `"go, redis, infra"`,
			want: []string{"go", "redis", "infra"},
		},
		{
			name: "array with padding and empties",
			raw:  `[" go ", "", "go"]`,
			want: []string{"go"},
		},
		{
			name: "string with trailing comma",
			raw:  `"a,b,"`,
			want: []string{"a", "b"},
		},
		{
			name: "null",
			raw:  `null`,
			want: []string{},
		},
		{
			name: "unexpected shape",
			raw:  `42`,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in TagsInput
			if err := json.Unmarshal([]byte(tt.raw), &in); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.raw, err)
			}
			got := in.Normalize()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeNeverNil(t *testing.T) {
	var in TagsInput
	if in.Normalize() == nil {
		t.Error("Normalize() returned nil, want empty slice")
	}
}
