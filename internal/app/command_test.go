package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name            string
		list, read, del bool
		args            []string
		want            Command
	}{
		{"no flags", false, false, false, nil, CommandAdd},
		{"list", true, false, false, nil, CommandList},
		{"read", false, true, false, nil, CommandRead},
		{"delete", false, false, true, nil, CommandDelete},
		{"two flags", true, true, false, nil, CommandUnknown},
		{"all flags", true, true, true, nil, CommandUnknown},
		{"positional", false, false, false, []string{"hello"}, CommandUnknown},
		{"flag and positional", true, false, false, []string{"x"}, CommandUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCommand(tt.list, tt.read, tt.del, tt.args))
		})
	}
}
