package config

import (
	"reflect"
	"testing"
)

func TestSplitFileList(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"single", "activity.xlsx", []string{"activity.xlsx"}},
		{"comma separated", "a.xlsx,b.xlsx", []string{"a.xlsx", "b.xlsx"}},
		{
			// Export names contain spaces; commas must be the only separator.
			"paths with spaces",
			"Item_Activity_Report.xlsx, Item_Activity_Report (1).xlsx",
			[]string{"Item_Activity_Report.xlsx", "Item_Activity_Report (1).xlsx"},
		},
		{"blank entries dropped", ",a.xlsx,, ,b.xlsx,", []string{"a.xlsx", "b.xlsx"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := splitFileList(tc.raw)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("splitFileList(%q) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}
