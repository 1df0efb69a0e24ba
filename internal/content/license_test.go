package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripLicenseHeaders(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{
			name: "strips multi-line license headers",
			code: "/*\n * Copyright 2023\n * Some license text\n */\nfunction test() {\n  console.log('Hello');\n}",
			want: "function test() {\n  console.log('Hello');\n}",
		},
		{
			name: "strips single-line license headers",
			code: "// Copyright 2023\n// Some license text\nfunction test() {\n  console.log('Hello');\n}",
			want: "function test() {\n  console.log('Hello');\n}",
		},
		{
			name: "consecutive line comments before code",
			code: "// Copyright\n// text\ncode();",
			want: "code();",
		},
		{
			name: "does not modify code without license headers",
			code: "function test() {\n  console.log('Hello');\n}",
			want: "function test() {\n  console.log('Hello');\n}",
		},
		{
			name: "block comment closed on the first line",
			code: "/* MIT */\npackage main",
			want: "package main",
		},
		{
			name: "unterminated block comment is kept",
			code: "/* open\nstill open",
			want: "/* open\nstill open",
		},
		{
			name: "file made only of line comments becomes empty",
			code: "// one\n// two",
			want: "",
		},
		{
			name: "comment later in file is kept",
			code: "x := 1\n// Copyright",
			want: "x := 1\n// Copyright",
		},
		{
			name: "empty input",
			code: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripLicenseHeaders(tt.code))
		})
	}
}
