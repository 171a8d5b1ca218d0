// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/inkpost/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Crème Brûlée!  ", "creme-brulee"},
		{"Go 1.24 -- released", "go-1-24-released"},
		{"Tiếng Việt có dấu", "tieng-viet-co-dau"},
		{"***", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.in))
		})
	}
}

func TestFrom_Truncates(t *testing.T) {
	long := strings.Repeat("word ", 40)
	got := slug.From(long)

	assert.LessOrEqual(t, len(got), slug.MaxLength)
	assert.False(t, strings.HasSuffix(got, "-"))
	assert.True(t, strings.HasPrefix(got, "word-word"))
}
