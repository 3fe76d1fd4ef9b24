package uploads

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	f.body, _ = io.ReadAll(params.Body)
	return &s3.PutObjectOutput{}, f.err
}

func TestObjectKey(t *testing.T) {
	key := ObjectKey("social-posts", "social_post", "../my photo.png")
	assert.True(t, strings.HasPrefix(key, "social-posts/social_post_"), key)
	assert.True(t, strings.HasSuffix(key, "_my_photo.png"), key)
	assert.NotEqual(t, key, ObjectKey("social-posts", "social_post", "../my photo.png"))
}

func TestS3StorePut(t *testing.T) {
	api := &fakeS3{}
	store := &S3Store{client: api, bucket: "media", baseURL: "https://cdn.example.com/"}

	url, err := store.Put(context.Background(), "social-posts/a.png", "image/png", []byte("png"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/social-posts/a.png", url)
	assert.Equal(t, "media", *api.input.Bucket)
	assert.Equal(t, "image/png", *api.input.ContentType)
	assert.Equal(t, []byte("png"), api.body)

	api.err = errors.New("denied")
	_, err = store.Put(context.Background(), "k", "", nil)
	assert.ErrorContains(t, err, "put s3://media/k")
}

func TestLocalStorePut(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir, "/uploads")

	url, err := store.Put(context.Background(), "social-posts/b.jpg", "image/jpeg", []byte("jpg"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/social-posts/b.jpg", url)

	data, err := os.ReadFile(filepath.Join(dir, "social-posts", "b.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpg"), data)
}
