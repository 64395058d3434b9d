package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectKeyLookupArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"tskr"},
			want: []string{"tskr"},
		},
		{
			name: "direct task key first token",
			in:   []string{"tskr", "T-01"},
			want: []string{"tskr", "show", "T-01"},
		},
		{
			name: "template key",
			in:   []string{"tskr", "R-D-02"},
			want: []string{"tskr", "show", "R-D-02"},
		},
		{
			name: "lowercase key",
			in:   []string{"tskr", "m-3"},
			want: []string{"tskr", "show", "m-3"},
		},
		{
			name: "direct task key after value flag",
			in:   []string{"tskr", "--db", "./tmp-test.db", "T-01"},
			want: []string{"tskr", "--db", "./tmp-test.db", "show", "T-01"},
		},
		{
			name: "direct task key after equals flag",
			in:   []string{"tskr", "--db=./tmp-test.db", "T-01"},
			want: []string{"tskr", "--db=./tmp-test.db", "show", "T-01"},
		},
		{
			name: "direct task key after bool flag",
			in:   []string{"tskr", "--pretty", "T-01"},
			want: []string{"tskr", "--pretty", "show", "T-01"},
		},
		{
			name: "direct task key after double dash",
			in:   []string{"tskr", "--db", "./tmp-test.db", "--", "T-01"},
			want: []string{"tskr", "--db", "./tmp-test.db", "--", "show", "T-01"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"tskr", "show", "T-01"},
			want: []string{"tskr", "show", "T-01"},
		},
		{
			name: "unknown command not rewritten",
			in:   []string{"tskr", "wat"},
			want: []string{"tskr", "wat"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectKeyLookupArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteDirectKeyLookupArgs:\n got: %#v\nwant: %#v", got, tt.want)
			}
		})
	}
}
