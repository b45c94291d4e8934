package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateKey(t *testing.T) {
	key := GenerateKey("questions", "Diagram.PNG")

	assert.True(t, strings.HasPrefix(key, "questions/"))
	assert.True(t, strings.HasSuffix(key, ".png"))
	assert.Len(t, strings.Split(key, "/"), 5)
	assert.NotEqual(t, key, GenerateKey("questions", "Diagram.PNG"))
}

func TestS3Client_PublicURL(t *testing.T) {
	c := &S3Client{bucket: "gyansetu", cdnURL: "https://cdn.example.com"}
	assert.Equal(t, "https://cdn.example.com/uploads/a%20b.png", c.PublicURL("uploads/a b.png"))

	c = &S3Client{bucket: "gyansetu"}
	assert.Equal(t, "https://gyansetu.s3.amazonaws.com/uploads/x.png", c.PublicURL("uploads/x.png"))

	c = &S3Client{bucket: "gyansetu", basePath: "uploads/"}
	assert.Equal(t, "https://gyansetu.s3.amazonaws.com/uploads/images/1/x.png", c.PublicURL("images/1/x.png"))
}
