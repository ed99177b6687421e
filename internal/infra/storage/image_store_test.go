package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"agriconnect/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob"
	"gocloud.dev/blob/memblob"
)

func newTestStore(t *testing.T, maxBytes int64) (*blobImageStore, *blob.Bucket) {
	t.Helper()

	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	return NewBlobImageStore(bucket, "/static/uploads/", 100, maxBytes).(*blobImageStore), bucket
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := range width {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

func TestSaveResizesAndReencodesPNG(t *testing.T) {
	ctx := context.Background()
	store, bucket := newTestStore(t, 0)

	path, err := store.Save(ctx, "field.PNG", bytes.NewReader(pngBytes(t, 400, 200)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "/static/uploads/"))
	assert.True(t, strings.HasSuffix(path, ".jpg"))

	key := strings.TrimPrefix(path, "/static/uploads/")
	data, err := bucket.ReadAll(ctx, key)
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestSaveKeepsSmallImagesSize(t *testing.T) {
	ctx := context.Background()
	store, bucket := newTestStore(t, 0)

	path, err := store.Save(ctx, "small.png", bytes.NewReader(pngBytes(t, 40, 20)))
	require.NoError(t, err)

	data, err := bucket.ReadAll(ctx, strings.TrimPrefix(path, "/static/uploads/"))
	require.NoError(t, err)
	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
}

func TestSaveStoresGIFRaw(t *testing.T) {
	ctx := context.Background()
	store, bucket := newTestStore(t, 0)
	raw := []byte("GIF89a-not-really")

	path, err := store.Save(ctx, "anim.gif", bytes.NewReader(raw))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".gif"))

	data, err := bucket.ReadAll(ctx, strings.TrimPrefix(path, "/static/uploads/"))
	require.NoError(t, err)
	assert.Equal(t, raw, data)
}

func TestSaveRejects(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, 10)

	_, err := store.Save(ctx, "big.gif", bytes.NewReader(make([]byte, 11)))
	assert.ErrorIs(t, err, service.ErrImageTooLarge)

	_, err = store.Save(ctx, "notes.txt", bytes.NewReader([]byte("hi")))
	assert.ErrorIs(t, err, service.ErrUnsupportedImage)

	_, err = store.Save(ctx, "broken.jpg", bytes.NewReader([]byte("nope")))
	assert.Error(t, err)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store, bucket := newTestStore(t, 0)

	path, err := store.Save(ctx, "a.webp", bytes.NewReader([]byte("RIFF")))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, path))
	exists, err := bucket.Exists(ctx, strings.TrimPrefix(path, "/static/uploads/"))
	require.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, store.Delete(ctx, path), "missing blobs are ignored")
	assert.NoError(t, store.Delete(ctx, ""))
}
