package logx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"notion-config-tool/pkg/logx"
)

func TestSensitiveDataMaskerMask(t *testing.T) {
	rq := require.New(t)

	masker := logx.NewSensitiveDataMasker()

	testCases := []struct {
		name   string
		input  []byte
		output []byte
	}{
		{
			name:   "Password",
			input:  []byte(`{"hello":"world","password":"abc123"}`),
			output: []byte(`{"hello":"world","password":"[MASKED]"}`),
		},
		{
			name:   "Password capital letter",
			input:  []byte(`{"hello":"world","Password":"abc123"}`),
			output: []byte(`{"hello":"world","Password":"[MASKED]"}`),
		},
		{
			name:   "Bearer header",
			input:  []byte("POST /v1/databases/x/query HTTP/1.1\r\nAuthorization: Bearer secret_abc\r\nNotion-Version: 2022-06-28\r\n"),
			output: []byte("POST /v1/databases/x/query HTTP/1.1\r\nAuthorization: Bearer [MASKED]\r\nNotion-Version: 2022-06-28\r\n"),
		},
		{
			name:   "Integration token in text",
			input:  []byte(`token is ntn_0123456789abcdefghijKLMN here`),
			output: []byte(`token is [MASKED] here`),
		},
		{
			name:   "Notion person fields",
			input:  []byte(`{"person": {"email": "john@doe.com"}, "phone_number": "+100", "name": "John"}`),
			output: []byte(`{"person": {"email": "[MASKED]"}, "phone_number": "[MASKED]", "name": "John"}`),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			output := masker.Mask(tc.input)

			rq.Equal(tc.output, output, "%s vs %s", tc.output, output)
		})
	}
}
