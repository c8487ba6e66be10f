package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "separate flag and value",
			args:         []string{"-a", "http://localhost:8080", "-x", "nope"},
			allowedFlags: []string{"-a"},
			want:         []string{"-a", "http://localhost:8080"},
		},
		{
			name:         "combined flag=value",
			args:         []string{"--config=conf.json", "--other=skip"},
			allowedFlags: []string{"--config"},
			want:         []string{"--config=conf.json"},
		},
		{
			name:         "flag without value followed by another flag",
			args:         []string{"-v", "-a", "addr"},
			allowedFlags: []string{"-v", "-a"},
			want:         []string{"-v", "-a", "addr"},
		},
		{
			name:         "nothing allowed",
			args:         []string{"-a", "addr"},
			allowedFlags: []string{"-b"},
			want:         []string{},
		},
		{
			name:         "empty args",
			args:         nil,
			allowedFlags: []string{"-a"},
			want:         []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterArgs(tc.args, tc.allowedFlags)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cli", "-c", "settings.json", "-a", "addr"}
	assert.Equal(t, "settings.json", JsonConfigFlags())

	os.Args = []string{"cli", "--config=other.json"}
	assert.Equal(t, "other.json", JsonConfigFlags())

	os.Args = []string{"cli", "-a", "addr"}
	assert.Equal(t, "", JsonConfigFlags())
}
