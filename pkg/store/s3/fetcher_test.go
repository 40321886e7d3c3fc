package s3

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockS3 struct {
	mock.Mock
}

func (m *mockS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.GetObjectOutput), args.Error(1)
}

func TestParseURI(t *testing.T) {
	tests := []struct {
		uri     string
		bucket  string
		key     string
		wantErr bool
	}{
		{uri: "s3://books/2024/ledger.csv", bucket: "books", key: "2024/ledger.csv"},
		{uri: "s3://books", wantErr: true},
		{uri: "s3:///ledger.csv", wantErr: true},
		{uri: "/tmp/ledger.csv", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			bucket, key, err := ParseURI(tt.uri)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.bucket, bucket)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestFetcher_Fetch(t *testing.T) {
	ctx := context.Background()
	input := &s3.GetObjectInput{Bucket: aws.String("books"), Key: aws.String("ledger.csv")}

	t.Run("reads object", func(t *testing.T) {
		client := new(mockS3)
		client.On("GetObject", ctx, input).Return(&s3.GetObjectOutput{
			Body: io.NopCloser(strings.NewReader("revenue,expense\n1,2\n")),
		}, nil)

		data, err := NewFetcher(client, 0).Fetch(ctx, "s3://books/ledger.csv")
		require.NoError(t, err)
		assert.Equal(t, "revenue,expense\n1,2\n", string(data))
		client.AssertExpectations(t)
	})

	t.Run("object too large", func(t *testing.T) {
		client := new(mockS3)
		client.On("GetObject", ctx, input).Return(&s3.GetObjectOutput{
			Body: io.NopCloser(strings.NewReader(strings.Repeat("x", 11))),
		}, nil)

		_, err := NewFetcher(client, 10).Fetch(ctx, "s3://books/ledger.csv")
		assert.ErrorContains(t, err, "exceeds 10 bytes")
	})

	t.Run("client error", func(t *testing.T) {
		client := new(mockS3)
		client.On("GetObject", ctx, input).Return(nil, fmt.Errorf("access denied"))

		_, err := NewFetcher(client, 0).Fetch(ctx, "s3://books/ledger.csv")
		assert.ErrorContains(t, err, "access denied")
	})
}
