package media

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripDataURI(t *testing.T) {
	assert.Equal(t, "iVBORw0KGgo", stripDataURI("data:image/png;base64,iVBORw0KGgo"))
	assert.Equal(t, "iVBORw0KGgo", stripDataURI("iVBORw0KGgo"))
}

func TestImgbbUploadImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/1/upload", r.URL.Path)
		assert.Equal(t, "key-123", r.URL.Query().Get("key"))
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "aGVsbG8=", r.PostForm.Get("image"))
		assert.Len(t, r.PostForm.Get("name"), 5)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"status":200,"data":{"display_url":"https://i.ibb.co/x/cover.png","delete_url":"https://ibb.co/x/del"}}`))
	}))
	defer srv.Close()

	client := NewImgbbClient(srv.URL, "key-123", 5*time.Second)
	image, err := client.UploadImage(context.Background(), "data:image/png;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "https://i.ibb.co/x/cover.png", image.DisplayURL)
	assert.Equal(t, "https://ibb.co/x/del", image.DeleteURL)
}

func TestImgbbUploadImageFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"status":400,"error":{"message":"Invalid API v1 key."}}`))
	}))
	defer srv.Close()

	client := NewImgbbClient(srv.URL, "bad", 5*time.Second)
	_, err := client.UploadImage(context.Background(), "aGVsbG8=")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid API v1 key.")
}
