package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreviewRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     PreviewRequest
		wantErr bool
	}{
		{
			name: "complete",
			req: PreviewRequest{
				Host:          HostConfig{JavaExecutable: "/jdk/bin/java"},
				PreviewFqName: "app.MainKt.Preview",
			},
		},
		{
			name:    "missing java",
			req:     PreviewRequest{PreviewFqName: "app.MainKt.Preview"},
			wantErr: true,
		},
		{
			name:    "missing target",
			req:     PreviewRequest{Host: HostConfig{JavaExecutable: "/jdk/bin/java"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrIncompleteRequest)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
