package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCredentials(t *testing.T) {
	tests := []struct {
		name string
		args []string
		user string
		pass string
	}{
		{name: "none", args: nil, user: "", pass: ""},
		{name: "user only", args: []string{"svc-user"}, user: "svc-user", pass: ""},
		{name: "user and pass", args: []string{"svc-user", "s3cret"}, user: "svc-user", pass: "s3cret"},
		{name: "extras ignored", args: []string{"svc-user", "s3cret", "junk"}, user: "svc-user", pass: "s3cret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, pass := credentials(tt.args)
			require.Equal(t, tt.user, user)
			require.Equal(t, tt.pass, pass)
		})
	}
}
