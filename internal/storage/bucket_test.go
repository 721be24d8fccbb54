package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazadus/go-chapterplay/internal/logger"
)

// mockClient мок для S3 клиента
type mockClient struct {
	pages   [][]*s3.Object
	listErr error
	prefix  string
	deleted []string
}

func (m *mockClient) ListObjectsV2PagesWithContext(ctx aws.Context, input *s3.ListObjectsV2Input, fn func(*s3.ListObjectsV2Output, bool) bool, opts ...request.Option) error {
	if m.listErr != nil {
		return m.listErr
	}
	m.prefix = aws.StringValue(input.Prefix)
	for i, page := range m.pages {
		if !fn(&s3.ListObjectsV2Output{Contents: page}, i == len(m.pages)-1) {
			break
		}
	}
	return nil
}

func (m *mockClient) DeleteObjectWithContext(ctx aws.Context, input *s3.DeleteObjectInput, opts ...request.Option) (*s3.DeleteObjectOutput, error) {
	m.deleted = append(m.deleted, aws.StringValue(input.Key))
	return &s3.DeleteObjectOutput{}, nil
}

// mockUploader мок для S3 uploader
type mockUploader struct {
	key  string
	body string
	err  error
}

func (m *mockUploader) UploadWithContext(ctx aws.Context, input *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.key = aws.StringValue(input.Key)
	body, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	m.body = string(body)
	return &s3manager.UploadOutput{}, nil
}

// mockDownloader отдает содержимое объектов из памяти
type mockDownloader struct {
	content map[string]string
	keys    []string
}

func (m *mockDownloader) DownloadWithContext(ctx aws.Context, w io.WriterAt, input *s3.GetObjectInput, opts ...func(*s3manager.Downloader)) (int64, error) {
	key := aws.StringValue(input.Key)
	m.keys = append(m.keys, key)
	body, ok := m.content[key]
	if !ok {
		return 0, awserr.New(s3.ErrCodeNoSuchKey, "The specified key does not exist.", nil)
	}
	n, err := w.WriteAt([]byte(body), 0)
	return int64(n), err
}

func object(key string, size int64) *s3.Object {
	return &s3.Object{Key: aws.String(key), Size: aws.Int64(size)}
}

func testConfig() Config {
	return Config{
		Region:     "us-east-1",
		Endpoint:   "https://storage.example.com/",
		BucketName: "chapters",
		Prefix:     "audio",
	}
}

func TestNewBucketRequiresName(t *testing.T) {
	_, err := NewBucket(Config{Region: "us-east-1"}, nil)
	assert.ErrorIs(t, err, ErrNoBucket)
}

func TestListStripsPrefixAndSkipsNested(t *testing.T) {
	client := &mockClient{pages: [][]*s3.Object{
		{object("audio/1-01.mp3", 10), object("audio/1-02.mp3", 20)},
		{object("audio/old/2-01.mp3", 5), object("audio/", 0), object("audio/cover.jpg", 3)},
	}}
	b := newBucket(testConfig(), client, nil, nil, logger.NewTestLogger())

	names, err := b.ListNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "audio/", client.prefix)
	assert.Equal(t, []string{"1-01.mp3", "1-02.mp3", "cover.jpg"}, names)
}

func TestListError(t *testing.T) {
	client := &mockClient{listErr: awserr.New("AccessDenied", "Access Denied", nil)}
	b := newBucket(testConfig(), client, nil, nil, logger.NewTestLogger())

	_, err := b.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ошибка получения списка объектов")
}

func TestUploadAndURL(t *testing.T) {
	up := &mockUploader{}
	b := newBucket(testConfig(), &mockClient{}, up, nil, logger.NewTestLogger())

	url, err := b.Upload(context.Background(), strings.NewReader("test content"), "3-07.mp3")
	require.NoError(t, err)
	assert.Equal(t, "audio/3-07.mp3", up.key)
	assert.Equal(t, "test content", up.body)
	assert.Equal(t, "https://storage.example.com/chapters/audio/3-07.mp3", url)
}

func TestUploadError(t *testing.T) {
	up := &mockUploader{err: awserr.New("RequestTimeout", "Request timeout", nil)}
	b := newBucket(testConfig(), &mockClient{}, up, nil, logger.NewTestLogger())

	_, err := b.Upload(context.Background(), strings.NewReader("x"), "1-01.mp3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ошибка загрузки")
}

func TestDelete(t *testing.T) {
	client := &mockClient{}
	b := newBucket(testConfig(), client, nil, nil, logger.NewTestLogger())

	require.NoError(t, b.Delete(context.Background(), "1-01.mp3"))
	assert.Equal(t, []string{"audio/1-01.mp3"}, client.deleted)
}

func TestDownloadSkipsSameSize(t *testing.T) {
	dir := t.TempDir()
	down := &mockDownloader{content: map[string]string{"audio/1-01.mp3": "abcdef"}}
	b := newBucket(testConfig(), &mockClient{}, nil, down, logger.NewTestLogger())

	downloaded, err := b.Download(context.Background(), Object{Name: "1-01.mp3", Size: 6}, dir)
	require.NoError(t, err)
	assert.True(t, downloaded)

	content, err := os.ReadFile(filepath.Join(dir, "1-01.mp3"))
	require.NoError(t, err)
	assert.Equal(t, "abcdef", string(content))

	downloaded, err = b.Download(context.Background(), Object{Name: "1-01.mp3", Size: 6}, dir)
	require.NoError(t, err)
	assert.False(t, downloaded)
	assert.Len(t, down.keys, 1)
}

func TestDownloadFailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	b := newBucket(testConfig(), &mockClient{}, nil, &mockDownloader{}, logger.NewTestLogger())

	_, err := b.Download(context.Background(), Object{Name: "1-01.mp3", Size: 6}, dir)
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSync(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1-02.mp3"), []byte("22"), 0o644))

	client := &mockClient{pages: [][]*s3.Object{{
		object("audio/1-01.mp3", 1),
		object("audio/1-02.mp3", 2),
		object("audio/notes.txt", 4),
		object("audio/1-1.mp3", 1),
	}}}
	down := &mockDownloader{content: map[string]string{"audio/1-01.mp3": "1"}}
	b := newBucket(testConfig(), client, nil, down, logger.NewTestLogger())

	var reported []string
	res, err := Sync(context.Background(), b, dir, func(name string) { reported = append(reported, name) })
	require.NoError(t, err)

	assert.Equal(t, []string{"1-01.mp3"}, res.Downloaded)
	assert.Equal(t, []string{"1-01.mp3"}, reported)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 2, res.Ignored)
}

func TestSyncCancelled(t *testing.T) {
	client := &mockClient{pages: [][]*s3.Object{{object("audio/1-01.mp3", 1)}}}
	b := newBucket(testConfig(), client, nil, &mockDownloader{}, logger.NewTestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Sync(ctx, b, t.TempDir(), nil)
	assert.ErrorIs(t, err, context.Canceled)
}
