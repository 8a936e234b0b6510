package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rohits-web03/chainvault/internal/share"
)

func TestPromptConfirmer(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "y\n", want: true},
		{input: "YES\n", want: true},
		{input: "n\n", want: false},
		{input: "\n", want: false},
		{input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			c := promptConfirmer(strings.NewReader(tt.input), &out)
			assert.Equal(t, tt.want, c.Confirm(context.Background(), share.PromptRevoke))
			assert.Contains(t, out.String(), share.PromptRevoke)
		})
	}
}

func TestYesSkipsPrompt(t *testing.T) {
	opts := &Options{Yes: true}
	var out bytes.Buffer

	assert.True(t, opts.confirmer(strings.NewReader(""), &out).Confirm(context.Background(), share.PromptRevoke))
	assert.Empty(t, out.String())
}
