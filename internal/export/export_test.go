package export

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	assert.Equal(t, "admin-menu/20260304T050607-table_export.csv", Name("admin/menu", "table_export.csv", at))
	assert.Equal(t, "export/20260304T050607-x.html", Name("", "x.html", at))
}

func TestDirSink(t *testing.T) {
	dir := t.TempDir()
	s := NewDirSink(dir)

	loc, err := s.Put(context.Background(), "menu/a.csv", "text/csv", []byte(`"ID"`))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "menu", "a.csv"), loc)

	raw, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, `"ID"`, string(raw))

	_, err = NewDirSink("").Put(context.Background(), "a.csv", "", nil)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Put(ctx, "b.csv", "", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

type fakeS3 struct {
	in   *s3.PutObjectInput
	body string
	err  error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	raw, _ := io.ReadAll(in.Body)
	f.body = string(raw)
	return &s3.PutObjectOutput{}, f.err
}

func TestS3Sink(t *testing.T) {
	api := new(fakeS3)
	s := NewS3SinkWithAPI(api, "dumps", "portal")

	loc, err := s.Put(context.Background(), "menu/a.csv", "text/csv", []byte("x,y"))
	require.NoError(t, err)
	assert.Equal(t, "s3://dumps/portal/menu/a.csv", loc)
	assert.Equal(t, "dumps", *api.in.Bucket)
	assert.Equal(t, "portal/menu/a.csv", *api.in.Key)
	assert.Equal(t, "text/csv", *api.in.ContentType)
	assert.Equal(t, int64(3), *api.in.ContentLength)
	assert.Equal(t, "x,y", api.body)
}

func TestS3SinkErrors(t *testing.T) {
	api := &fakeS3{err: &smithy.GenericAPIError{Code: "AccessDenied", Message: "nope"}}
	_, err := NewS3SinkWithAPI(api, "dumps", "").Put(context.Background(), "a.csv", "", nil)
	assert.ErrorContains(t, err, "access denied for put object")

	api.err = errors.New("boom")
	_, err = NewS3SinkWithAPI(api, "dumps", "").Put(context.Background(), "a.csv", "", nil)
	assert.ErrorContains(t, err, "put object failed: boom")

	_, err = NewS3Sink(context.Background(), S3Options{})
	assert.Error(t, err)
}
