package media

import (
	"testing"

	appconfig "github.com/Aniket1026/yoto/config"

	"github.com/stretchr/testify/assert"
)

func TestPublicBaseURL(t *testing.T) {
	c := &appconfig.Configuration{S3_Bucket: "yoto", S3_Region: "ap-south-1"}
	assert.Equal(t, "https://yoto.s3.ap-south-1.amazonaws.com", publicBaseURL(c, ""))
	assert.Equal(t, "http://minio:9000/yoto", publicBaseURL(c, "http://minio:9000"))

	c.S3_PublicBaseURL = "https://cdn.example.com/"
	assert.Equal(t, "https://cdn.example.com", publicBaseURL(c, "http://minio:9000"))
}

func TestKeyFromURL(t *testing.T) {
	s := &S3Store{publicBaseURL: "https://cdn.example.com"}

	key, ok := s.KeyFromURL(s.PublicURL("video/abc.mp4"))
	assert.True(t, ok)
	assert.Equal(t, "video/abc.mp4", key)

	_, ok = s.KeyFromURL("https://other.example.com/video/abc.mp4")
	assert.False(t, ok)
	_, ok = s.KeyFromURL("https://cdn.example.com/")
	assert.False(t, ok)
}
